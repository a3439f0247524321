package brandforge

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/brandforge/brandforge/fontkit"
	"github.com/brandforge/brandforge/utils"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Layout identifies one of the three canonical logo compositions.
type Layout string

const (
	Horizontal Layout = "horizontal"
	Vertical   Layout = "vertical"
	IconOnly   Layout = "iconOnly"
)

// Canvas dimensions are fixed per layout.
const (
	horizontalW, horizontalH = 800, 200
	verticalW, verticalH     = 400, 400
	iconOnlyW, iconOnlyH     = 300, 300

	// iconTextGutter separates the icon from the text in the horizontal layout.
	iconTextGutter = 30
	// iconTextGap separates the icon from the text in the vertical layout.
	iconTextGap = 20
)

// defaultFontFamily is used when the asset does not name a font. Logo text
// renders bold, so the embedded bold face is the natural default.
const defaultFontFamily = "Go Bold"

// CompositionError is returned when a single layout fails mid-render.
// The failure is local to that layout; sibling layouts are unaffected.
type CompositionError struct {
	Layout Layout
	Err    error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("could not composite the %s layout: %v", e.Layout, e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }

// CanvasSize returns the fixed pixel dimensions of the layout's canvas.
func (l Layout) CanvasSize() (int, int) {
	switch l {
	case Horizontal:
		return horizontalW, horizontalH
	case Vertical:
		return verticalW, verticalH
	default:
		return iconOnlyW, iconOnlyH
	}
}

// FontSize returns the text point size used by the layout: capped at 48 and
// a quarter of the canvas height for the horizontal layout, capped at 36 and
// 12% of the canvas width for the vertical one. The icon only layout draws
// no text.
func (l Layout) FontSize() float64 {
	switch l {
	case Horizontal:
		return utils.Min(48.0, 0.25*horizontalH)
	case Vertical:
		return utils.Min(36.0, 0.12*verticalW)
	default:
		return 0
	}
}

// LayoutGeometry is the deterministic pixel placement computed for one
// render: where the scaled icon lands and where the text baseline starts.
// It is recomputed on every render and never cached across font or text
// changes.
type LayoutGeometry struct {
	CanvasW, CanvasH int

	// IconRect is the destination box of the scaled icon.
	IconRect image.Rectangle

	// TextX is the x coordinate where drawing of the text starts and
	// Baseline the y coordinate of its baseline. Both are zero when the
	// layout has no text.
	TextX    int
	Baseline int

	FontSize float64
}

// fitDims scales (w, h) proportionally so it fits inside (boxW, boxH).
func fitDims(w, h, boxW, boxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	fw, fh := boxW, h*boxW/w
	if fh > boxH {
		fw, fh = w*boxH/h, boxH
	}
	return fw, fh
}

// Geometry computes the placement for one layout from the icon's natural
// dimensions, the measured text advance width and the face's ascent and
// descent in pixels. The function is pure so the placement rules stay
// verifiable without rendering anything.
//
// Horizontal: the icon is scaled to 70% of the canvas height and forms,
// together with a 30px gutter and the text, one horizontally centered unit.
// In LTR mode the icon sits left of the text; in RTL mode the order is
// mirrored. The text is centered on the canvas middle line.
//
// Vertical: the icon is scaled to half the canvas width and placed at 15%
// of the canvas height; the text is centered 20px below it.
//
// Icon only: the icon is scaled to 80% of the canvas' shorter side and
// centered.
func Geometry(layout Layout, iconW, iconH, textW, ascent, descent int, rtl bool) LayoutGeometry {
	w, h := layout.CanvasSize()
	g := LayoutGeometry{CanvasW: w, CanvasH: h, FontSize: layout.FontSize()}

	switch layout {
	case Horizontal:
		boxH := h * 7 / 10
		fw, fh := fitDims(iconW, iconH, boxH, boxH)
		total := fw + iconTextGutter + textW
		startX := (w - total) / 2
		iconY := (h - fh) / 2

		if rtl {
			g.TextX = startX
			g.IconRect = image.Rect(startX+textW+iconTextGutter, iconY,
				startX+textW+iconTextGutter+fw, iconY+fh)
		} else {
			g.IconRect = image.Rect(startX, iconY, startX+fw, iconY+fh)
			g.TextX = startX + fw + iconTextGutter
		}
		// Middle baseline: the text block is centered on the canvas midline.
		g.Baseline = (h + ascent - descent) / 2

	case Vertical:
		boxW := w / 2
		fw, fh := fitDims(iconW, iconH, boxW, boxW)
		iconX := (w - fw) / 2
		iconY := h * 15 / 100
		g.IconRect = image.Rect(iconX, iconY, iconX+fw, iconY+fh)

		g.TextX = (w - textW) / 2
		// Top anchored baseline below the icon.
		g.Baseline = iconY + fh + iconTextGap + ascent

	default:
		box := utils.Min(w, h) * 8 / 10
		fw, fh := fitDims(iconW, iconH, box, box)
		g.IconRect = image.Rect((w-fw)/2, (h-fh)/2, (w+fw)/2, (h+fh)/2)
	}

	return g
}

// Compositor renders company logos by compositing an icon raster with the
// company name. Every render owns a private canvas; the font registry is
// the only shared state.
type Compositor struct {
	Fonts *fontkit.Registry
}

// NewCompositor creates a compositor backed by a fresh font registry.
func NewCompositor() *Compositor {
	return &Compositor{Fonts: fontkit.NewRegistry()}
}

// Composite renders one logo layout and exports it as a flattened PNG data
// URL. The icon source and the font are loaded together and joined before
// any drawing happens, since measuring text with an unready font would
// place it wrong. The render is reproducible bit for bit for identical
// inputs: no randomness, no wall clock.
func (c *Compositor) Composite(iconSrc, name, family, hexColor string, layout Layout, rtl bool) (string, error) {
	if family == "" {
		family = defaultFontFamily
	}

	// Load the icon and the font in parallel and join both results.
	type decoded struct {
		img *image.NRGBA
		err error
	}
	iconCh := make(chan decoded, 1)
	fontCh := make(chan struct{}, 1)

	go func() {
		img, err := DecodeSource(iconSrc)
		iconCh <- decoded{img: img, err: err}
	}()
	go func() {
		c.Fonts.EnsureFontReady(family)
		fontCh <- struct{}{}
	}()

	icon := <-iconCh
	<-fontCh
	if icon.err != nil {
		return "", &CompositionError{Layout: layout, Err: icon.err}
	}

	return c.render(icon.img, name, family, hexColor, layout, rtl)
}

// render rasterizes the icon and text onto a solid white canvas and encodes
// the result. No partial output is ever exported: any failure surfaces as a
// CompositionError and the canvas is discarded with the call frame.
func (c *Compositor) render(icon *image.NRGBA, name, family, hexColor string, layout Layout, rtl bool) (string, error) {
	if icon == nil || icon.Bounds().Dx() == 0 || icon.Bounds().Dy() == 0 {
		return "", &CompositionError{Layout: layout, Err: fmt.Errorf("empty icon image")}
	}

	var (
		face   font.Face
		textW  int
		ascent int
		desc   int
	)
	if layout != IconOnly && name != "" {
		face = c.Fonts.Face(family, layout.FontSize())
		defer face.Close()

		m := face.Metrics()
		ascent, desc = m.Ascent.Ceil(), m.Descent.Ceil()
		textW = font.MeasureString(face, name).Ceil()
	}

	g := Geometry(layout, icon.Bounds().Dx(), icon.Bounds().Dy(), textW, ascent, desc, rtl)

	canvas := image.NewNRGBA(image.Rect(0, 0, g.CanvasW, g.CanvasH))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	if dx := g.IconRect.Dx(); dx > 0 && g.IconRect.Dy() > 0 {
		scaled := imaging.Resize(icon, dx, g.IconRect.Dy(), imaging.Lanczos)
		draw.Draw(canvas, g.IconRect, scaled, image.Point{}, draw.Over)
	}

	if face != nil {
		d := font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(utils.HexToNRGBA(hexColor)),
			Face: face,
			Dot:  fixed.P(g.TextX, g.Baseline),
		}
		d.DrawString(name)
	}

	out, err := EncodeDataURL(canvas)
	if err != nil {
		return "", &CompositionError{Layout: layout, Err: err}
	}
	return out, nil
}
