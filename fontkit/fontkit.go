// Package fontkit keeps the fonts used for logo text registered, measurable
// and ready before any layout work starts. The registry replaces what would
// otherwise be ambient process-wide state with an injectable value that
// tests can construct and discard freely.
package fontkit

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brandforge/brandforge/utils"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// settleDelay is the fixed wait applied when a font cannot be confirmed
// ready, before falling back to the embedded face. Best effort by contract:
// a missing font never fails the caller.
const settleDelay = 500 * time.Millisecond

// Registry tracks the font families that have already been requested and
// holds their parsed fonts. Register is idempotent: a family is fetched and
// parsed at most once.
type Registry struct {
	mu    sync.Mutex
	fonts map[string]*truetype.Font

	// SourceURL is an optional URL template with a single %s verb which
	// expands to the url-encoded family name, pointing at the raw TTF data.
	SourceURL string

	// Fallback is the face used when a family cannot be loaded. Defaults to
	// the embedded bold Go face, since logo text renders bold.
	Fallback *truetype.Font
}

// NewRegistry creates a registry preloaded with the embedded Go faces under
// the "Go" and "Go Bold" family names.
func NewRegistry() *Registry {
	r := &Registry{fonts: make(map[string]*truetype.Font)}

	regular, err := truetype.Parse(goregular.TTF)
	if err == nil {
		r.fonts["Go"] = regular
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err == nil {
		r.fonts["Go Bold"] = bold
		r.Fallback = bold
	}
	return r
}

// Has reports whether the family has already been registered.
func (r *Registry) Has(family string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.fonts[family]
	return ok
}

// Register parses the raw TTF data and stores it under the family name.
// Registering an already known family is a no-op, keeping the operation
// safe to repeat.
func (r *Registry) Register(family string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fonts[family]; ok {
		return nil
	}

	fnt, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("could not parse the font data for %q: %w", family, err)
	}
	r.fonts[family] = fnt

	return nil
}

// EnsureFontReady returns a usable font for the family, fetching and
// registering it first when a source URL is configured. Failures are
// absorbed: after the settle delay the embedded fallback face is registered
// under the requested family name so later calls resolve immediately.
func (r *Registry) EnsureFontReady(family string) *truetype.Font {
	r.mu.Lock()
	if fnt, ok := r.fonts[family]; ok {
		r.mu.Unlock()
		return fnt
	}
	source := r.SourceURL
	r.mu.Unlock()

	if source != "" {
		uri := fmt.Sprintf(source, strings.ReplaceAll(family, " ", "+"))
		if data, err := utils.FetchFile(uri); err == nil {
			if err := r.Register(family, data); err == nil {
				r.mu.Lock()
				fnt := r.fonts[family]
				r.mu.Unlock()
				return fnt
			}
		}
	}

	time.Sleep(settleDelay)

	r.mu.Lock()
	defer r.mu.Unlock()
	if fnt, ok := r.fonts[family]; ok {
		return fnt
	}
	r.fonts[family] = r.Fallback
	return r.Fallback
}

// Face builds a measurable face for the family at the given point size.
func (r *Registry) Face(family string, size float64) font.Face {
	fnt := r.EnsureFontReady(family)
	return truetype.NewFace(fnt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// MeasureString returns the advance width in pixels of the text rendered
// with the family at the given size.
func (r *Registry) MeasureString(family, text string, size float64) int {
	face := r.Face(family, size)
	defer face.Close()

	return font.MeasureString(face, text).Ceil()
}
