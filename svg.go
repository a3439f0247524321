package brandforge

import (
	"bytes"
	"fmt"
	"image"

	svg "github.com/ajstarks/svgo"
)

// BuildSVG wraps the traced path fragments into a self-contained SVG
// document whose viewbox and dimensions match the source raster pixel
// grid. Width and height must be non-negative; no further validation is
// performed. An empty path list is valid and produces a document with no
// path elements.
func BuildSVG(width, height int, paths []PathFragment) (string, error) {
	if width < 0 || height < 0 {
		return "", fmt.Errorf("invalid document dimensions: %dx%d", width, height)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(width, height, 0, 0, width, height)
	canvas.Title("Vectorized logo")
	for _, p := range paths {
		canvas.Path(p.D, fmt.Sprintf("fill=%q", p.Fill))
	}
	canvas.End()

	return buf.String(), nil
}

// Vectorize is the full raster to vector pipeline: threshold the image into
// a binary mask, trace the connected regions and assemble the document.
// The fill color is applied uniformly to every traced region; per-pixel
// color extraction is not attempted.
func Vectorize(src *image.NRGBA, threshold uint8, fill string) (string, error) {
	mask := ToMask(src, threshold)
	paths := TracePaths(mask, fill)
	return BuildSVG(mask.Width, mask.Height, paths)
}
