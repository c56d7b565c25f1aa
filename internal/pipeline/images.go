package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/mediaprep/internal/config"
	"github.com/backmassage/mediaprep/internal/display"
	"github.com/backmassage/mediaprep/internal/imageproc"
	"github.com/backmassage/mediaprep/internal/logging"
	"github.com/backmassage/mediaprep/internal/naming"
	"github.com/backmassage/mediaprep/internal/planner"
)

// RunImages optimizes every image in cfg.InputDir one at a time and
// reports the summary. A missing input directory is fatal. When ctx is
// cancelled the loop stops before the next file and the remaining files are
// recorded as failed.
func RunImages(ctx context.Context, cfg *config.Config, log *logging.Logger, codec imageproc.Codec) (*RunSummary, error) {
	summary := NewRunSummary(cfg.Tool, log.RunID())

	// Discover before creating the output directory: the default output
	// lives inside the input, and creating it would mask a missing input.
	files, err := Discover(cfg.InputDir, cfg.Extensions())
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	log.Info("Output directory: %s", cfg.OutputDir)
	if len(files) == 0 {
		log.Warn("No images found in %s", cfg.InputDir)
		return summary, nil
	}

	log.Info("Found %d images to process:", len(files))
	for _, f := range files {
		log.Info("  - %s", f.Name)
	}

	claims := naming.NewClaims()
	for _, file := range files {
		plan := planner.BuildImagePlan(cfg, file.Path, claims)
		if err := ctx.Err(); err != nil {
			job := NewJob(file, plan.OutputPath)
			_ = job.Abort()
			summary.Add(job.result(fmt.Errorf("not started: %w", err), time.Now()))
			continue
		}
		summary.Add(optimizeImage(log, codec, file, plan))
	}

	LogSummary(cfg, log, summary)
	return summary, nil
}

// optimizeImage runs the read, decode, resize, encode and write steps for
// one file. Any step failure becomes a failed Result naming the step.
func optimizeImage(log *logging.Logger, codec imageproc.Codec, file MediaFile, plan *planner.ImagePlan) Result {
	start := time.Now()
	job := NewJob(file, plan.OutputPath)
	log.Info("Processing: %s", file.Name)

	fail := func(step string, err error) Result {
		err = fmt.Errorf("%s: %w", step, err)
		if job.State() == StatePending {
			_ = job.Abort()
		} else {
			_ = job.Finish(err)
		}
		log.Error("  %s: %v", file.Name, err)
		return job.result(err, start)
	}

	if plan.Action == planner.ActionReject {
		return fail("plan", fmt.Errorf("%w: %s is written by %s", ErrOutputCollision,
			filepath.Base(plan.OutputPath), filepath.Base(plan.Owner)))
	}
	_ = job.Start()

	// --- Read ---
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return fail("read", err)
	}
	if plan.PreDecode {
		log.Info("  Converting from HEIC...")
		if data, err = imageproc.PreDecode(codec, data); err != nil {
			return fail("heic pre-decode", err)
		}
	}

	// --- Decode ---
	img, err := codec.Decode(data)
	if err != nil {
		return fail("decode", err)
	}
	w, h := imageproc.Dimensions(img)
	log.Info("  Original: %dx%d", w, h)

	// --- Resize ---
	if nw, nh, resize := planner.FitWithin(w, h, plan.MaxWidth, plan.MaxHeight); resize {
		img = codec.Resize(img, nw, nh)
		log.Info("  Resizing to %dx%d (max %dx%d)", nw, nh, plan.MaxWidth, plan.MaxHeight)
	}
	ow, oh := imageproc.Dimensions(img)

	// --- Encode ---
	out, err := codec.Encode(img, plan.Format, plan.Quality)
	if err != nil {
		return fail("encode", err)
	}

	// --- Write ---
	if err := os.WriteFile(plan.OutputPath, out, 0o644); err != nil {
		os.Remove(plan.OutputPath)
		return fail("write", err)
	}

	// --- Stats ---
	inInfo, err := os.Stat(file.Path)
	if err != nil {
		return fail("stat input", err)
	}
	outInfo, err := os.Stat(plan.OutputPath)
	if err != nil {
		return fail("stat output", err)
	}

	_ = job.Finish(nil)
	r := job.result(nil, start)
	r.InputBytes = inInfo.Size()
	r.OutputBytes = outInfo.Size()
	r.Width, r.Height = w, h
	r.OutWidth, r.OutHeight = ow, oh

	log.Success("  Saved: %s", r.Output)
	log.Info("  Size: %s -> %s (%s)",
		display.FormatBytes(r.InputBytes),
		display.FormatBytes(r.OutputBytes),
		display.FormatSavings(r.Savings()))
	return r
}
