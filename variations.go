package brandforge

import "errors"

// LogoAsset bundles the externally generated icon with the identity fields
// the layout engine needs. The asset is read-only input: it is never
// mutated by the pipeline.
type LogoAsset struct {
	// IconRef locates the icon raster: a data URL, a remote URL or a file path.
	IconRef      string
	CompanyName  string
	FontFamily   string
	PrimaryColor string
	RTL          bool
}

// VariationSet aggregates the three composited logo rasters, each a PNG
// data URL. The set is complete only once all three members are non-empty.
type VariationSet struct {
	Horizontal string
	Vertical   string
	IconOnly   string
}

// Complete reports whether all three layouts have rendered.
func (v *VariationSet) Complete() bool {
	return v != nil && v.Horizontal != "" && v.Vertical != "" && v.IconOnly != ""
}

// layoutResult travels over the orchestrator's fan-in channel: one message
// per layout, success or failure.
type layoutResult struct {
	layout  Layout
	dataURL string
	err     error
}

// GenerateVariations composites the asset across all three layouts
// concurrently and returns once every layout has reported. The three
// renders share nothing but their read-only inputs, so a failed layout
// never disturbs its siblings: successful members are always populated in
// the returned set, and the failures are joined into the returned error.
// The function returns exactly once, after the last layout completes.
//
// An absent icon reference is a no-op, not an error: there is nothing to
// composite yet.
func (c *Compositor) GenerateVariations(asset LogoAsset) (*VariationSet, error) {
	if asset.IconRef == "" {
		return nil, nil
	}

	layouts := []Layout{Horizontal, Vertical, IconOnly}
	results := make(chan layoutResult, len(layouts))

	for _, layout := range layouts {
		go func(layout Layout) {
			dataURL, err := c.Composite(asset.IconRef, asset.CompanyName,
				asset.FontFamily, asset.PrimaryColor, layout, asset.RTL)
			results <- layoutResult{layout: layout, dataURL: dataURL, err: err}
		}(layout)
	}

	set := &VariationSet{}
	var errs []error

	for range layouts {
		res := <-results
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		switch res.layout {
		case Horizontal:
			set.Horizontal = res.dataURL
		case Vertical:
			set.Vertical = res.dataURL
		case IconOnly:
			set.IconOnly = res.dataURL
		}
	}

	return set, errors.Join(errs...)
}
