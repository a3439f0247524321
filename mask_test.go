package brandforge

import (
	"image"
	"image/color"
	"testing"
)

const imgWidth = 10
const imgHeight = 10

func TestMask_Dimensions(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	mask := ToMask(img, DefaultThreshold)

	if mask.Width != imgWidth || mask.Height != imgHeight {
		t.Errorf("Mask dimensions expected to be %vx%v. Got %vx%v",
			imgWidth, imgHeight, mask.Width, mask.Height)
	}
	if len(mask.Cells) != imgHeight {
		t.Errorf("Mask row count expected to be %v. Got %v", imgHeight, len(mask.Cells))
	}
	for y := range mask.Cells {
		if len(mask.Cells[y]) != imgWidth {
			t.Errorf("Mask row %v length expected to be %v. Got %v", y, imgWidth, len(mask.Cells[y]))
		}
	}
}

func TestMask_Thresholding(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	img.SetNRGBA(0, 0, color.NRGBA{A: 0xff})                            // opaque black: ink
	img.SetNRGBA(1, 0, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) // opaque white: background
	img.SetNRGBA(2, 0, color.NRGBA{A: 0x10})                            // transparent black: background
	img.SetNRGBA(3, 0, color.NRGBA{R: 127, G: 127, B: 127, A: 0xff})    // dark gray: ink at 128

	mask := ToMask(img, DefaultThreshold)

	if !mask.At(0, 0) {
		t.Errorf("Opaque black pixel expected to be foreground")
	}
	if mask.At(1, 0) {
		t.Errorf("Opaque white pixel expected to be background")
	}
	if mask.At(2, 0) {
		t.Errorf("Transparent pixel expected to be background")
	}
	if !mask.At(3, 0) {
		t.Errorf("Gray pixel with luminance 127 expected to be foreground at threshold 128")
	}
}

func TestMask_LuminanceWeights(t *testing.T) {
	// Pure green (luminance 149.7) stays background at threshold 128 while
	// pure blue (luminance 29.1) is ink. The split only holds under the
	// 0.299/0.587/0.114 perceptual weighting.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{G: 0xff, A: 0xff})
	img.SetNRGBA(1, 0, color.NRGBA{B: 0xff, A: 0xff})

	mask := ToMask(img, DefaultThreshold)

	if mask.At(0, 0) {
		t.Errorf("Pure green expected to be background under perceptual weighting")
	}
	if !mask.At(1, 0) {
		t.Errorf("Pure blue expected to be foreground under perceptual weighting")
	}
}

func TestMask_EmptyImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	mask := ToMask(img, DefaultThreshold)

	if mask.Width != 0 || mask.Height != 0 {
		t.Errorf("Empty image expected to produce an empty mask. Got %vx%v", mask.Width, mask.Height)
	}
}

func TestMask_OutOfBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	mask := ToMask(img, DefaultThreshold)

	if mask.At(-1, 0) || mask.At(0, -1) || mask.At(imgWidth, 0) || mask.At(0, imgHeight) {
		t.Errorf("Out of bounds cells expected to be background")
	}
}
