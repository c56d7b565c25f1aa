package planner

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/backmassage/mediaprep/internal/config"
	"github.com/backmassage/mediaprep/internal/naming"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		wantW      int
		wantH      int
		wantResize bool
	}{
		{"small image untouched", 800, 600, 800, 600, false},
		{"exactly at ceiling", 1920, 1080, 1920, 1080, false},
		{"4:3 camera photo", 4000, 3000, 1440, 1080, true},
		{"wide panorama", 6000, 1000, 1920, 320, true},
		{"tall portrait", 3024, 4032, 810, 1080, true},
		{"only width too big", 2000, 500, 1920, 480, true},
		{"only height too big", 1000, 2000, 540, 1080, true},
		{"4k 16:9", 3840, 2160, 1920, 1080, true},
		{"extreme strip keeps 1px", 100000, 10, 1920, 1, true},
		{"zero dims", 0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, resize := FitWithin(tt.w, tt.h, 1920, 1080)
			if w != tt.wantW || h != tt.wantH || resize != tt.wantResize {
				t.Errorf("FitWithin(%d, %d) = %dx%d resize=%v, want %dx%d resize=%v",
					tt.w, tt.h, w, h, resize, tt.wantW, tt.wantH, tt.wantResize)
			}
		})
	}
}

func TestFitWithin_Properties(t *testing.T) {
	for w := 1; w <= 8000; w += 397 {
		for h := 1; h <= 6000; h += 311 {
			nw, nh, resize := FitWithin(w, h, 1920, 1080)
			if nw > 1920 || nh > 1080 {
				t.Fatalf("%dx%d -> %dx%d exceeds box", w, h, nw, nh)
			}
			if nw > w || nh > h {
				t.Fatalf("%dx%d -> %dx%d upscaled", w, h, nw, nh)
			}
			if !resize {
				if nw != w || nh != h {
					t.Fatalf("%dx%d changed without resize", w, h)
				}
				continue
			}
			// Aspect ratio preserved up to rounding of the scaled side.
			if nw == 1 || nh == 1 {
				continue
			}
			aspect := float64(w) / float64(h)
			errW := math.Abs(float64(nw) - float64(nh)*aspect)
			errH := math.Abs(float64(nh) - float64(nw)/aspect)
			if errW > 0.5+1e-9 && errH > 0.5+1e-9 {
				t.Fatalf("%dx%d -> %dx%d does not preserve aspect %.4f", w, h, nw, nh, aspect)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(150, QualityMin, QualityMax) != 100 || Clamp(-5, QualityMin, QualityMax) != 1 || Clamp(85, QualityMin, QualityMax) != 85 {
		t.Error("Clamp out of range")
	}
}

func TestNeedsPreDecode(t *testing.T) {
	tests := map[string]bool{
		"IMG_0001.HEIC": true,
		"photo.heif":    true,
		"photo.jpg":     false,
		"heic.png":      false,
	}
	for name, want := range tests {
		if got := NeedsPreDecode(name); got != want {
			t.Errorf("NeedsPreDecode(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestBuildImagePlan(t *testing.T) {
	cfg := config.DefaultImageConfig()
	cfg.OutputDir = "out"
	claims := naming.NewClaims()

	heic := BuildImagePlan(&cfg, filepath.Join("public", "b.heic"), claims)
	if heic.Action != ActionConvert || !heic.PreDecode {
		t.Errorf("heic plan = %+v", heic)
	}
	if heic.OutputPath != filepath.Join("out", "b.webp") {
		t.Errorf("OutputPath = %q", heic.OutputPath)
	}
	if heic.Quality != 85 || heic.MaxWidth != 1920 || heic.MaxHeight != 1080 {
		t.Errorf("encode settings = %+v", heic)
	}

	dup := BuildImagePlan(&cfg, filepath.Join("public", "b.png"), claims)
	if dup.Action != ActionReject || dup.Owner != filepath.Join("public", "b.heic") {
		t.Errorf("duplicate plan = %+v", dup)
	}
}

func TestBuildVideoPlan(t *testing.T) {
	cfg := config.DefaultVideoConfig()
	cfg.OutputDir = "out"
	claims := naming.NewClaims()

	p := BuildVideoPlan(&cfg, filepath.Join("in", "intro.MOV"), claims)
	if p.Action != ActionConvert || p.OutputPath != filepath.Join("out", "intro.mp4") {
		t.Errorf("plan = %+v", p)
	}
	again := BuildVideoPlan(&cfg, filepath.Join("in", "intro.mp4"), claims)
	if again.Action != ActionReject {
		t.Errorf("collision not detected: %+v", again)
	}
	if ActionReject.String() != "reject" || ActionConvert.String() != "convert" {
		t.Error("Action.String")
	}
}
