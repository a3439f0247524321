package brandforge

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/brandforge/brandforge/utils"
	_ "golang.org/x/image/bmp"
)

// DecodeError is returned when a source image cannot be loaded or decoded.
// The decode is attempted exactly once; retrying the whole pipeline is the
// caller's decision.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode the source image %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

const dataURLMarker = ";base64,"

// DecodeImage decodes a raster image (PNG, JPEG, GIF or BMP) into an NRGBA
// image with the min-point translated to (0, 0).
func DecodeImage(r io.Reader) (*image.NRGBA, error) {
	img, err := decode(r)
	if err != nil {
		return nil, &DecodeError{Source: "reader", Err: err}
	}
	return img, nil
}

// decode is the single decode attempt behind every source flavor.
func decode(r io.Reader) (*image.NRGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return imgToNRGBA(src), nil
}

// DecodeDataURL decodes a base64 encoded image data URL.
func DecodeDataURL(s string) (*image.NRGBA, error) {
	idx := strings.Index(s, dataURLMarker)
	if idx < 0 {
		return nil, &DecodeError{Source: "data URL", Err: fmt.Errorf("missing %q marker", dataURLMarker)}
	}
	raw, err := base64.StdEncoding.DecodeString(s[idx+len(dataURLMarker):])
	if err != nil {
		return nil, &DecodeError{Source: "data URL", Err: err}
	}
	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &DecodeError{Source: "data URL", Err: err}
	}
	return img, nil
}

// DecodeSource loads an image from a data URL, a remote URL or a local file,
// whichever the source string designates.
func DecodeSource(src string) (*image.NRGBA, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return DecodeDataURL(src)
	case utils.IsValidUrl(src):
		data, err := utils.FetchImage(src)
		if err != nil {
			return nil, &DecodeError{Source: src, Err: err}
		}
		img, err := decode(bytes.NewReader(data))
		if err != nil {
			return nil, &DecodeError{Source: src, Err: err}
		}
		return img, nil
	default:
		file, err := os.Open(src)
		if err != nil {
			return nil, &DecodeError{Source: src, Err: err}
		}
		defer file.Close()

		img, err := decode(file)
		if err != nil {
			return nil, &DecodeError{Source: src, Err: err}
		}
		return img, nil
	}
}

// EncodeDataURL exports the image as a flattened PNG data URL.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("could not encode the image: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := srcBounds.Dx() * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}
