package brandforge

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/gotranspile/gotrace"
)

// TraceContours vectorizes the image with potrace-style curve fitting
// instead of the run-length strips produced by TracePaths. The output is a
// smooth outline and intentionally does NOT match the blocky canonical
// tracer; callers opt into the different rendering by name.
func TraceContours(src *image.NRGBA, threshold uint8) (string, error) {
	mask := ToMask(src, threshold)

	gray := image.NewGray(image.Rect(0, 0, mask.Width, mask.Height))
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.Cells[y][x] {
				gray.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}

	bm := gotrace.BitmapFromGray(gray, nil)
	paths, err := gotrace.Trace(bm, nil)
	if err != nil {
		return "", fmt.Errorf("could not trace the image contours: %w", err)
	}

	var buf bytes.Buffer
	if err := gotrace.Render("svg", nil, &buf, paths, mask.Width, mask.Height); err != nil {
		return "", fmt.Errorf("could not render the traced contours: %w", err)
	}
	return buf.String(), nil
}
