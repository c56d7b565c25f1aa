// Package config holds runtime configuration for both tools: defaults,
// environment and CLI flag parsing, and validation. Defaults match the
// landing page layout (public/videos -> public/optimized_videos,
// ./public -> ./public/optimized, CRF 28 medium, WebP q85 inside 1920x1080).
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// --- Enum types for validated string fields ---

// Tool identifies which utility a Config belongs to.
type Tool string

const (
	ToolVideo Tool = "videoconv"
	ToolImage Tool = "imageopt"
)

// ImageFormat is the re-encode target for the image optimizer.
type ImageFormat string

const (
	FormatWebP ImageFormat = "webp" // Default.
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
)

// Ext returns the output file extension (with leading dot) for the format.
func (f ImageFormat) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// x264Presets lists the presets accepted by libx264, fastest first.
var x264Presets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow", "placebo",
}

// Video extensions accepted by the video converter (lowercase, with dot).
var VideoExtensions = []string{".mov", ".mp4", ".avi", ".mkv"}

// Image extensions accepted by the image optimizer (lowercase, with dot).
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".heic", ".heif"}

// Config holds all runtime settings. It is populated by [DefaultVideoConfig]
// or [DefaultImageConfig], then by [LoadEnv] and [ParseFlags], before being
// passed (by pointer) to the pipeline.
type Config struct {
	Tool Tool

	// Paths.
	InputDir  string
	OutputDir string

	// Video encoding.
	FFmpegPath    string // Default: "ffmpeg" (resolved on PATH).
	FFprobePath   string // Default: "ffprobe". Optional; stats are skipped when absent.
	VideoCodec    string // Fixed: "libx264".
	AudioCodec    string // Fixed: "aac".
	CRF           int    // Default: 28.
	Preset        string // Default: "medium".
	FastStart     bool   // Fixed: true (-movflags +faststart).
	VideoExt      string // Fixed: ".mp4".
	Workers       int    // Default: runtime.NumCPU(). Bounded video fan-out.
	CreateInput   bool   // Video only: create a missing input dir instead of failing.
	ShowFileStats bool   // Default: true. Log ffprobe source stats per video.

	// Image encoding.
	Format    ImageFormat // Default: "webp".
	Quality   int         // Default: 85.
	MaxWidth  int         // Default: 1920.
	MaxHeight int         // Default: 1080.

	// Behavior.
	FailOnError bool // Exit 1 when any job failed. Default: false (a batch with failures still exits 0).

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional JSON log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

func baseConfig() Config {
	return Config{
		FFmpegPath:    "ffmpeg",
		FFprobePath:   "ffprobe",
		VideoCodec:    "libx264",
		AudioCodec:    "aac",
		CRF:           28,
		Preset:        "medium",
		FastStart:     true,
		VideoExt:      ".mp4",
		Workers:       runtime.NumCPU(),
		ShowFileStats: true,
		Format:        FormatWebP,
		Quality:       85,
		MaxWidth:      1920,
		MaxHeight:     1080,
		ColorMode:     ColorAuto,
	}
}

// DefaultVideoConfig returns the video converter defaults.
func DefaultVideoConfig() Config {
	c := baseConfig()
	c.Tool = ToolVideo
	c.InputDir = filepath.Join("public", "videos")
	c.OutputDir = filepath.Join("public", "optimized_videos")
	c.CreateInput = true
	return c
}

// DefaultImageConfig returns the image optimizer defaults.
func DefaultImageConfig() Config {
	c := baseConfig()
	c.Tool = ToolImage
	c.InputDir = "./public"
	c.OutputDir = "./public/optimized"
	return c
}

// Extensions returns the allow-list for the configured tool.
func (c *Config) Extensions() []string {
	if c.Tool == ToolVideo {
		return VideoExtensions
	}
	return ImageExtensions
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and range fields. When not in CheckOnly mode, it also
// requires that both directory paths are non-empty.
func (c *Config) Validate() error {
	switch c.Tool {
	case ToolVideo, ToolImage:
		// valid
	default:
		return fmt.Errorf("invalid tool %q", c.Tool)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	// Encoder settings are only checked for the tool that uses them, so a
	// shared .env with video keys does not break the image tool.
	if c.Tool == ToolVideo {
		if !validPreset(c.Preset) {
			return fmt.Errorf("invalid preset %q (use one of %s)", c.Preset, strings.Join(x264Presets, ", "))
		}
		if c.CRF < 0 || c.CRF > 51 {
			return fmt.Errorf("CRF must be between 0 and 51 (got %d)", c.CRF)
		}
	} else {
		switch c.Format {
		case FormatWebP, FormatJPEG, FormatPNG:
			// valid
		default:
			return errors.New("invalid format (use 'webp', 'jpeg' or 'png')")
		}
		if c.Quality < 1 || c.Quality > 100 {
			return fmt.Errorf("quality must be between 1 and 100 (got %d)", c.Quality)
		}
		if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
			return fmt.Errorf("max size must be positive (got %dx%d)", c.MaxWidth, c.MaxHeight)
		}
	}
	if c.Workers < 1 {
		c.Workers = 1
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("need both input and output directories")
	}
	return nil
}

func validPreset(p string) bool {
	for _, v := range x264Presets {
		if p == v {
			return true
		}
	}
	return false
}

// ValidatePaths ensures the resolved output directory is not equal to the
// resolved input directory. Unlike a recursive walk, the scanner only lists
// the top level, so an output dir nested inside the input (the default
// ./public -> ./public/optimized layout) is fine. Both arguments must be
// absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	if outputAbs == inputAbs {
		return errors.New("output directory must differ from input directory")
	}
	return nil
}
