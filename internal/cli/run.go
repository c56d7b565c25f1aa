// Package cli is the shared entrypoint behind the videoconv and imageopt
// commands: configuration, logging, pre-flight checks, signal handling and
// the pipeline run, with the process exit code as the result.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/mediaprep/internal/check"
	"github.com/backmassage/mediaprep/internal/config"
	"github.com/backmassage/mediaprep/internal/display"
	"github.com/backmassage/mediaprep/internal/ffmpeg"
	"github.com/backmassage/mediaprep/internal/imageproc"
	"github.com/backmassage/mediaprep/internal/logging"
	"github.com/backmassage/mediaprep/internal/pipeline"
)

// DotEnvFile is read from the working directory before flags are parsed.
const DotEnvFile = ".env"

// Build identifies the binary; values are injected via -ldflags.
type Build struct {
	Version string
	Commit  string
}

// newCodec builds the image codec used by the check, pre-flight and
// pipeline phases. Tests replace it.
var newCodec = func() imageproc.Codec { return imageproc.Native{} }

var titles = map[config.Tool]string{
	config.ToolVideo: "MEDIAPREP VIDEO CONVERTER",
	config.ToolImage: "MEDIAPREP IMAGE OPTIMIZER",
}

// Run executes tool with args (without the program name) and returns the
// process exit code.
func Run(tool config.Tool, args []string, build Build, stdout, stderr io.Writer) int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr.
	cfg := config.DefaultImageConfig()
	if tool == config.ToolVideo {
		cfg = config.DefaultVideoConfig()
	}
	if err := config.LoadEnv(&cfg, DotEnvFile); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", tool, err)
		return 1
	}
	switch err := config.ParseFlags(&cfg, args, build.Version); {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, config.ErrShowVersion):
		fmt.Fprintf(stdout, "%s %s (%s)\n", tool, build.Version, build.Commit)
		return 0
	case err != nil:
		fmt.Fprintf(stderr, "%s: %v\n", tool, err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", tool, err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", tool, err)
		return 1
	}
	defer log.Close()
	log.SetOutput(stdout, stderr)

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner(stdout, titles[tool])
	if cfg.LogFile != "" {
		log.Debug(cfg.Verbose, "Run %s logging to %s", log.RunID(), cfg.LogFile)
	}

	codec := newCodec()
	if cfg.CheckOnly {
		if err := check.RunCheck(&cfg, codec, log); err != nil {
			return 1
		}
		return 0
	}

	// Fail fast, before any directory is listed, if a required capability
	// is unavailable.
	if tool == config.ToolVideo {
		err = check.CheckVideoDeps(&cfg)
	} else {
		err = check.CheckImageDeps(&cfg, codec)
	}
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	inputAbs, err := resolvePath(cfg.InputDir)
	if err != nil {
		log.Error("Cannot resolve input path: %s", cfg.InputDir)
		return 1
	}
	outputAbs, err := resolvePath(cfg.OutputDir)
	if err != nil {
		log.Error("Cannot resolve output path: %s", cfg.OutputDir)
		return 1
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("%s v%s", tool, build.Version)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.OutputDir)

	// Phase 3: Signal handling. SIGINT/SIGTERM cancels the run context;
	// running ffmpeg processes are killed and unstarted jobs are recorded
	// as failed.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping…")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Phase 4: Run pipeline.
	var summary *pipeline.RunSummary
	if tool == config.ToolVideo {
		ex := ffmpeg.CommandExecutor{}
		if cfg.Verbose {
			ex.Tee = stderr
		}
		summary, err = pipeline.RunVideos(ctx, &cfg, log, ex)
	} else {
		summary, err = pipeline.RunImages(ctx, &cfg, log, codec)
	}
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	if cfg.FailOnError && summary.HasFailures() {
		return 1
	}
	return 0
}

// resolvePath returns the absolute, symlink-resolved path. Paths that do
// not exist yet are returned absolute and cleaned.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
