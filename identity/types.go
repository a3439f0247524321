// Package identity talks to the generative collaborators: the identity
// generator which turns a company mission into a structured brand identity,
// and the image generator which produces the text-free logo icon. Both are
// consumed over a JSON HTTP contract; transient failures are retried with
// exponential backoff before they surface.
package identity

// IdentityRequest describes the brand to generate. All response strings are
// locale matched to Locale.
type IdentityRequest struct {
	Mission     string `json:"mission"`
	Locale      string `json:"locale"`
	CompanyName string `json:"companyName,omitempty"`
	LogoConcept string `json:"logoConcept,omitempty"`
}

// LogoSpec is the generator's description of the logo to be drawn.
type LogoSpec struct {
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

// PaletteColor is one of the five brand colors.
type PaletteColor struct {
	Hex   string `json:"hex"`
	Name  string `json:"name"`
	Usage string `json:"usage"`
}

// FontPairings names the header and body font families.
type FontPairings struct {
	Header string `json:"header"`
	Body   string `json:"body"`
	Notes  string `json:"notes"`
}

// DesignSystem carries the layout hints used by the collateral templates.
type DesignSystem struct {
	LayoutStyle    string `json:"layoutStyle"`
	TitleAlignment string `json:"titleAlignment"`
	BorderRadius   string `json:"borderRadius"`
	AccentPosition string `json:"accentPosition"`
}

// BrandIdentity is the structured identity returned by the generator.
type BrandIdentity struct {
	CompanyName  string         `json:"companyName"`
	Logo         LogoSpec       `json:"logo"`
	LogoConcepts []string       `json:"logoConcepts"`
	ColorPalette []PaletteColor `json:"colorPalette"`
	FontPairings FontPairings   `json:"fontPairings"`
	DesignSystem DesignSystem   `json:"designSystem"`
}

// iconRequest is the image generator request body.
type iconRequest struct {
	Prompt string   `json:"prompt"`
	Colors []string `json:"colors,omitempty"`
}

// iconResponse carries the generated raster inline as a data URL. An empty
// image field means the generator refused the prompt.
type iconResponse struct {
	Image string `json:"image"`
}
