package imageproc

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"testing"

	xwebp "golang.org/x/image/webp"

	"github.com/backmassage/mediaprep/internal/config"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	return img
}

func encodeFixture(t *testing.T, kind string, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch kind {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	}
	if err != nil {
		t.Fatalf("encode %s fixture: %v", kind, err)
	}
	return buf.Bytes()
}

func TestNative_Decode(t *testing.T) {
	for _, kind := range []string{"png", "jpeg", "gif"} {
		t.Run(kind, func(t *testing.T) {
			img, err := Native{}.Decode(encodeFixture(t, kind, gradient(80, 60)))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if w, h := Dimensions(img); w != 80 || h != 60 {
				t.Errorf("dimensions = %dx%d, want 80x60", w, h)
			}
		})
	}
}

func TestNative_DecodeGarbage(t *testing.T) {
	if _, err := (Native{}).Decode([]byte("definitely not an image")); err == nil {
		t.Error("expected decode error")
	}
}

func TestNative_Resize(t *testing.T) {
	out := Native{}.Resize(gradient(400, 300), 144, 108)
	if w, h := Dimensions(out); w != 144 || h != 108 {
		t.Errorf("Resize = %dx%d, want 144x108", w, h)
	}
}

func TestNative_EncodeWebP(t *testing.T) {
	data, err := Native{}.Encode(gradient(64, 48), config.FormatWebP, 85)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := xwebp.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not WebP: %v", err)
	}
	if w, h := Dimensions(img); w != 64 || h != 48 {
		t.Errorf("WebP dimensions = %dx%d", w, h)
	}
}

func TestNative_EncodeFormats(t *testing.T) {
	tests := []struct {
		format  config.ImageFormat
		wantCfg string
	}{
		{config.FormatJPEG, "jpeg"},
		{config.FormatPNG, "png"},
		{config.FormatWebP, "webp"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			data, err := Native{}.Encode(gradient(20, 10), tt.format, 80)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("DecodeConfig: %v", err)
			}
			if name != tt.wantCfg || cfg.Width != 20 || cfg.Height != 10 {
				t.Errorf("got %s %dx%d", name, cfg.Width, cfg.Height)
			}
		})
	}
}

func TestNative_EncodeUnsupported(t *testing.T) {
	_, err := Native{}.Encode(gradient(4, 4), "avif", 50)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestPreDecodeHEIC_Invalid(t *testing.T) {
	if _, err := PreDecodeHEIC([]byte("not heic")); err == nil {
		t.Error("expected error for non-HEIC bytes")
	}
}

func readCamel(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "camel.heic"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestPreDecodeHEIC_Real(t *testing.T) {
	raster, err := PreDecodeHEIC(readCamel(t))
	if err != nil {
		t.Fatalf("PreDecodeHEIC: %v", err)
	}
	img, err := Native{}.Decode(raster)
	if err != nil {
		t.Fatalf("Decode raster: %v", err)
	}
	if w, h := Dimensions(img); w != 1596 || h != 1064 {
		t.Errorf("dimensions = %dx%d, want 1596x1064", w, h)
	}
}

func TestPreDecodeHEIC_TruncatedKeepsLibraryLogQuiet(t *testing.T) {
	var stray bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&stray)
	t.Cleanup(func() { log.SetOutput(prev) })

	data := readCamel(t)
	_, err := PreDecodeHEIC(data[:4096])
	if err == nil {
		t.Fatal("expected error for truncated HEIC")
	}
	if stray.Len() != 0 {
		t.Errorf("HEIC decoder wrote to the process log: %q", stray.String())
	}
	if log.Writer() != &stray {
		t.Error("process log output was not restored")
	}
}

func TestCheckDecoder(t *testing.T) {
	for _, ext := range config.ImageExtensions {
		t.Run(ext, func(t *testing.T) {
			if _, err := CheckDecoder(Native{}, ext); err != nil {
				t.Errorf("CheckDecoder(%s): %v", ext, err)
			}
		})
	}
	if name, err := CheckDecoder(Native{}, ".heif"); err != nil || name != "heic" {
		t.Errorf("CheckDecoder(.heif) = %q, %v", name, err)
	}
	if _, err := CheckDecoder(Native{}, ".tiff"); err == nil {
		t.Error("expected error for an extension without a decoder")
	}
}

type noHEIC struct{ Native }

func (noHEIC) PreDecode([]byte) ([]byte, error) {
	return nil, errors.New("libheif not linked")
}

func TestCheckDecoder_FailingPreDecode(t *testing.T) {
	if _, err := CheckDecoder(noHEIC{}, ".heic"); err == nil {
		t.Error("expected HEIC check to fail when pre-decode fails")
	}
	if _, err := CheckDecoder(noHEIC{}, ".png"); err != nil {
		t.Errorf("png check should not depend on HEIC: %v", err)
	}
}

func TestSelfTest(t *testing.T) {
	for _, f := range []config.ImageFormat{config.FormatWebP, config.FormatJPEG, config.FormatPNG} {
		if err := SelfTest(Native{}, f, 85); err != nil {
			t.Errorf("SelfTest(%s): %v", f, err)
		}
	}
}

type brokenEncoder struct{ Native }

func (brokenEncoder) Encode(image.Image, config.ImageFormat, int) ([]byte, error) {
	return nil, errors.New("encoder not linked")
}

func TestSelfTest_Failure(t *testing.T) {
	if err := SelfTest(brokenEncoder{}, config.FormatWebP, 85); err == nil {
		t.Error("expected SelfTest to fail with a broken encoder")
	}
}
