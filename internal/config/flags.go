package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into paths, video, image, behavior, display, and utility.
// Negated flags (e.g. --no-stats) are applied after Parse so Config defaults hold unless set.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrShowVersion is returned by [ParseFlags] when --version was given.
// The caller prints the version and exits successfully.
var ErrShowVersion = errors.New("version requested")

// ParseFlags parses args (without the program name) into cfg. On --help it
// prints usage and returns [flag.ErrHelp]; on --version it returns
// [ErrShowVersion]. Any other error means the command line was invalid.
func ParseFlags(cfg *Config, args []string, version string) error {
	fs := flag.NewFlagSet(string(cfg.Tool), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printUsage(os.Stderr, cfg, version) }

	var negated negatedFlags

	definePathFlags(fs, cfg)
	if cfg.Tool == ToolVideo {
		defineVideoFlags(fs, cfg)
	} else {
		defineImageFlags(fs, cfg)
	}
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
		}
		return err
	}

	if negated.showHelp {
		fs.Usage()
		return flag.ErrHelp
	}
	if negated.showVersion {
		return ErrShowVersion
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyNegatedFlags(cfg, &negated)
	cfg.InputDir = NormalizeDirArg(cfg.InputDir)
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	return nil
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	noStats     bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePathFlags registers --in and --out.
func definePathFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.InputDir, "in", cfg.InputDir, "Input directory")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output directory")
}

// defineVideoFlags registers --crf, --preset, --workers, --ffmpeg, --ffprobe.
func defineVideoFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.CRF, "crf", cfg.CRF, "x264 CRF (0-51)")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "x264 preset (e.g. medium, slow)")
	fs.StringVar(&cfg.Preset, "p", cfg.Preset, "Same as --preset")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent ffmpeg processes")
	fs.IntVar(&cfg.Workers, "j", cfg.Workers, "Same as --workers")
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "ffmpeg binary")
	fs.StringVar(&cfg.FFprobePath, "ffprobe", cfg.FFprobePath, "ffprobe binary (optional)")
}

// defineImageFlags registers --quality, --max-width, --max-height, --format.
func defineImageFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "Encoder quality (1-100)")
	fs.IntVar(&cfg.Quality, "q", cfg.Quality, "Same as --quality")
	fs.IntVar(&cfg.MaxWidth, "max-width", cfg.MaxWidth, "Maximum output width")
	fs.IntVar(&cfg.MaxHeight, "max-height", cfg.MaxHeight, "Maximum output height")
	fs.Var(&formatValue{&cfg.Format}, "format", "Output format: webp | jpeg | png")
}

// defineBehaviorFlags registers --fail-on-error, plus --no-stats for the
// video tool (per-file source stats come from ffprobe).
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.FailOnError, "fail-on-error", false, "Exit 1 when any file failed")
	if cfg.Tool == ToolVideo {
		fs.BoolVar(&n.noStats, "no-stats", false, "Hide per-file source stats")
	}
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append JSON logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noStats {
		cfg.ShowFileStats = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text to w. Column-aligned for readability.
func printUsage(w io.Writer, cfg *Config, version string) {
	const col1 = 28
	type line struct{ flags, desc string }

	var lines []line
	if cfg.Tool == ToolVideo {
		lines = append(lines,
			line{"", "videoconv v" + version + " - batch H.264/AAC MP4 transcoder"},
			line{"", ""},
			line{"  videoconv [OPTIONS]", ""},
			line{"", ""},
			line{"Paths", ""},
			line{"  --in <dir>", "Input directory (default: " + cfg.InputDir + ")"},
			line{"  --out <dir>", "Output directory (default: " + cfg.OutputDir + ")"},
			line{"", ""},
			line{"Encoding", ""},
			line{"  --crf <value>", fmt.Sprintf("x264 CRF (default: %d)", cfg.CRF)},
			line{"  -p, --preset <name>", "x264 preset (default: " + cfg.Preset + ")"},
			line{"  -j, --workers <n>", fmt.Sprintf("Concurrent ffmpeg processes (default: %d)", cfg.Workers)},
			line{"  --ffmpeg <path>", "ffmpeg binary (default: ffmpeg)"},
			line{"  --ffprobe <path>", "ffprobe binary for source stats (default: ffprobe)"},
			line{"  --no-stats", "Hide per-file source stats"},
		)
	} else {
		lines = append(lines,
			line{"", "imageopt v" + version + " - batch image optimizer"},
			line{"", ""},
			line{"  imageopt [OPTIONS]", ""},
			line{"", ""},
			line{"Paths", ""},
			line{"  --in <dir>", "Input directory (default: " + cfg.InputDir + ")"},
			line{"  --out <dir>", "Output directory (default: " + cfg.OutputDir + ")"},
			line{"", ""},
			line{"Encoding", ""},
			line{"  -q, --quality <1-100>", fmt.Sprintf("Encoder quality (default: %d)", cfg.Quality)},
			line{"  --max-width <px>", fmt.Sprintf("Maximum width (default: %d)", cfg.MaxWidth)},
			line{"  --max-height <px>", fmt.Sprintf("Maximum height (default: %d)", cfg.MaxHeight)},
			line{"  --format <webp|jpeg|png>", "Output format (default: " + string(cfg.Format) + ")"},
		)
	}
	lines = append(lines,
		line{"", ""},
		line{"Behavior & display", ""},
		line{"  --fail-on-error", "Exit 1 when any file failed"},
		line{"  --color", "Force colored logs"},
		line{"  --no-color", "Disable colored logs"},
		line{"  -v, --verbose", "Verbose output"},
		line{"", ""},
		line{"Utility", ""},
		line{"  -l, --log <path>", "Append JSON logs to file"},
		line{"  -c, --check", "System diagnostics and exit"},
		line{"  -V, --version", "Print version and exit"},
		line{"  -h, --help", "Show this help and exit"},
		line{"", ""},
		line{"", "Environment: " + EnvPrefix + "* variables and a .env file override defaults; flags win."},
	)

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types with flag.Var.

type formatValue struct{ p *ImageFormat }

func (f *formatValue) String() string {
	if f.p == nil {
		return ""
	}
	return string(*f.p)
}

func (f *formatValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "webp":
		*f.p = FormatWebP
	case "jpeg", "jpg":
		*f.p = FormatJPEG
	case "png":
		*f.p = FormatPNG
	default:
		return fmt.Errorf("invalid format %q (use 'webp', 'jpeg' or 'png')", s)
	}
	return nil
}

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}

func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
