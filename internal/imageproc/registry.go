package imageproc

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"

	"github.com/backmassage/mediaprep/internal/config"
)

// heicSample is a real iPhone-style HEIC (hvc1 grid) decoded at start-up to
// prove the HEIC path works in this build.
//
//go:embed samples/sample.heic
var heicSample []byte

// decoders maps each readable input extension to the decoder that handles
// it. HEIC/HEIF go through the codec's pre-decode step; the rest through
// Codec.Decode.
var decoders = map[string]string{
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".png":  "png",
	".gif":  "gif",
	".webp": "webp",
	".heic": "heic",
	".heif": "heic",
}

// PreDecoder is implemented by codecs that supply their own HEIC step.
type PreDecoder interface {
	PreDecode(data []byte) ([]byte, error)
}

// PreDecode runs c's HEIC step, falling back to PreDecodeHEIC when c has
// none.
func PreDecode(c Codec, data []byte) ([]byte, error) {
	if pd, ok := c.(PreDecoder); ok {
		return pd.PreDecode(data)
	}
	return PreDecodeHEIC(data)
}

// sampleSize is the side of the square images built by SelfTest and the
// decoder samples.
const sampleSize = 16

func gradientSample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, sampleSize, sampleSize))
	for y := 0; y < sampleSize; y++ {
		for x := 0; x < sampleSize; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	return img
}

// sampleFile returns a small file in the named decoder's format.
func sampleFile(name string) ([]byte, error) {
	if name == "heic" {
		return heicSample, nil
	}
	src := gradientSample()
	var buf bytes.Buffer
	var err error
	switch name {
	case "jpeg":
		err = jpeg.Encode(&buf, src, &jpeg.Options{Quality: 90})
	case "png":
		err = png.Encode(&buf, src)
	case "gif":
		err = gif.Encode(&buf, src, nil)
	case "webp":
		err = webp.Encode(&buf, src, &webp.Options{Lossless: true})
	default:
		return nil, fmt.Errorf("no sample for decoder %q", name)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CheckDecoder decodes a built-in sample of ext's format through c and
// returns the decoder name. An extension without a decoder, or a decoder
// that fails on its sample, is an error.
func CheckDecoder(c Codec, ext string) (string, error) {
	name, ok := decoders[ext]
	if !ok {
		return "", fmt.Errorf("no decoder registered for %s", ext)
	}
	data, err := sampleFile(name)
	if err != nil {
		return name, err
	}
	if name == "heic" {
		if data, err = PreDecode(c, data); err != nil {
			return name, err
		}
	}
	img, err := c.Decode(data)
	if err != nil {
		return name, fmt.Errorf("decode %s sample: %w", name, err)
	}
	if w, h := Dimensions(img); w == 0 || h == 0 {
		return name, fmt.Errorf("decode %s sample: empty image", name)
	}
	return name, nil
}

// SelfTest encodes a small gradient with c in format and decodes the result
// back, proving the encoder is linked and produces readable output.
func SelfTest(c Codec, format config.ImageFormat, quality int) error {
	data, err := c.Encode(gradientSample(), format, quality)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("encode %s: empty output", format)
	}
	img, err := c.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s output: %w", format, err)
	}
	if w, h := Dimensions(img); w != sampleSize || h != sampleSize {
		return fmt.Errorf("%s round trip changed size to %dx%d", format, w, h)
	}
	return nil
}
