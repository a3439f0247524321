package brandforge

import "image"

// DefaultThreshold is the luminance cutoff below which an opaque pixel is
// treated as ink.
const DefaultThreshold uint8 = 128

// alphaFloor is the opacity cutoff; pixels at or below it are background
// regardless of their color.
const alphaFloor uint8 = 128

// Mask is a binary foreground map derived from a raster image. Its
// dimensions always equal the dimensions of the source image.
type Mask struct {
	Width  int
	Height int
	Cells  [][]bool
}

// ToMask thresholds the image into a binary foreground mask. A cell is
// foreground when the pixel's alpha exceeds the opacity floor and its
// perceptual luminance (0.299*R + 0.587*G + 0.114*B) is below threshold.
// An empty image yields an empty mask, not an error.
func ToMask(src *image.NRGBA, threshold uint8) *Mask {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	cells := make([][]bool, height)

	for y := 0; y < height; y++ {
		cells[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			i := src.PixOffset(x, y)
			r, g, b, a := src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]

			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			cells[y][x] = a > alphaFloor && lum < float64(threshold)
		}
	}

	return &Mask{Width: width, Height: height, Cells: cells}
}

// At reports whether the cell at (x, y) is foreground. Out of bounds
// coordinates are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Cells[y][x]
}
