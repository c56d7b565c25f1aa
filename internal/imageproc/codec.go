package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Registers WebP with image.Decode.

	"github.com/backmassage/mediaprep/internal/config"
)

// ErrUnsupportedFormat is returned by Encode for a target format the codec
// cannot produce.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Codec is the image transform surface used by the pipeline.
type Codec interface {
	Decode(data []byte) (image.Image, error)
	Resize(img image.Image, width, height int) image.Image
	Encode(img image.Image, format config.ImageFormat, quality int) ([]byte, error)
}

// Native is the production Codec.
type Native struct{}

// Decode reads any registered raster format. EXIF orientation is applied so
// the reported dimensions match what a browser displays.
func (Native) Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Resize scales img to exactly width x height with a Lanczos filter.
// Callers compute the target with planner.FitWithin.
func (Native) Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Encode serializes img in format at quality (1-100). PNG ignores quality.
func (Native) Encode(img image.Image, format config.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case config.FormatWebP:
		err = webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)})
	case config.FormatJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case config.FormatPNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Dimensions returns the pixel size of img.
func Dimensions(img image.Image) (width, height int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
