package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/mediaprep/internal/config"
	"github.com/backmassage/mediaprep/internal/display"
	"github.com/backmassage/mediaprep/internal/ffmpeg"
	"github.com/backmassage/mediaprep/internal/logging"
	"github.com/backmassage/mediaprep/internal/naming"
	"github.com/backmassage/mediaprep/internal/planner"
	"github.com/backmassage/mediaprep/internal/probe"
)

// RunVideos converts every video in cfg.InputDir to MP4 using at most
// cfg.Workers concurrent ffmpeg processes, waits for all of them, and
// reports the summary. A missing input directory is created (when
// cfg.CreateInput is set) and yields an empty summary. The returned error
// is non-nil only for failures that prevent the batch from running.
func RunVideos(ctx context.Context, cfg *config.Config, log *logging.Logger, ex ffmpeg.Executor) (*RunSummary, error) {
	summary := NewRunSummary(cfg.Tool, log.RunID())

	files, err := Discover(cfg.InputDir, cfg.Extensions())
	if errors.Is(err, ErrInputMissing) && cfg.CreateInput {
		if err := os.MkdirAll(cfg.InputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create input directory: %w", err)
		}
		log.Warn("Created %s; place your videos there and run again", cfg.InputDir)
		return summary, nil
	}
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		log.Warn("No videos found in %s", cfg.InputDir)
		return summary, nil
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	log.Info("Found %d videos, converting with up to %d workers", len(files), cfg.Workers)
	log.Info("Encoding: %s CRF %d (%s), audio %s", cfg.VideoCodec, cfg.CRF, cfg.Preset, cfg.AudioCodec)

	withStats := cfg.ShowFileStats
	if withStats {
		if _, err := exec.LookPath(cfg.FFprobePath); err != nil {
			log.Debug(cfg.Verbose, "ffprobe not found, per-file stats disabled")
			withStats = false
		}
	}

	// Plans are built up front in sorted order so collision ownership does
	// not depend on worker scheduling.
	claims := naming.NewClaims()
	plans := make([]*planner.VideoPlan, len(files))
	for i := range files {
		plans[i] = planner.BuildVideoPlan(cfg, files[i].Path, claims)
	}

	results := make([]Result, len(files))
	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i := range files {
		i := i
		g.Go(func() error {
			results[i] = convertVideo(ctx, cfg, log, ex, files[i], plans[i], withStats)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		summary.Add(r)
	}
	LogSummary(cfg, log, summary)
	return summary, nil
}

// convertVideo runs one job to completion and logs its outcome.
func convertVideo(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	ex ffmpeg.Executor,
	file MediaFile,
	plan *planner.VideoPlan,
	withStats bool,
) Result {
	start := time.Now()
	job := NewJob(file, plan.OutputPath)

	if plan.Action == planner.ActionReject {
		_ = job.Abort()
		err := fmt.Errorf("%w: %s is written by %s", ErrOutputCollision,
			filepath.Base(plan.OutputPath), filepath.Base(plan.Owner))
		log.Error("%s: %v", file.Name, err)
		return job.result(err, start)
	}
	if err := ctx.Err(); err != nil {
		_ = job.Abort()
		return job.result(fmt.Errorf("not started: %w", err), start)
	}

	_ = job.Start()
	log.Info("Processing: %s -> %s", file.Name, filepath.Base(plan.OutputPath))

	if withStats {
		logVideoStats(ctx, cfg, log, file)
	}

	res := ex.Execute(ctx, ffmpeg.Build(cfg, plan))
	if res.Err != nil {
		os.Remove(plan.OutputPath)
		err := fmt.Errorf("encode: %w", res.Err)
		_ = job.Finish(err)
		log.Error("%s: %v", file.Name, res.Err)
		for _, l := range ffmpeg.Tail(res.Stderr, 10) {
			log.Debug(cfg.Verbose, "  %s", l)
		}
		return job.result(err, start)
	}

	out, err := os.Stat(plan.OutputPath)
	if err != nil {
		err = fmt.Errorf("stat output: %w", err)
		_ = job.Finish(err)
		log.Error("%s: %v", file.Name, err)
		return job.result(err, start)
	}

	_ = job.Finish(nil)
	r := job.result(nil, start)
	r.InputBytes = file.Size
	r.OutputBytes = out.Size()
	log.Success("Finished: %s in %s (%s -> %s, %s)",
		r.Output,
		display.FormatDuration(r.Elapsed.Seconds()),
		display.FormatBytes(r.InputBytes),
		display.FormatBytes(r.OutputBytes),
		display.FormatSavings(r.Savings()))
	return r
}

func logVideoStats(ctx context.Context, cfg *config.Config, log *logging.Logger, file MediaFile) {
	pr, err := probe.Probe(ctx, cfg.FFprobePath, file.Path)
	if err != nil {
		log.Debug(cfg.Verbose, "  Cannot probe %s: %v", file.Name, err)
		return
	}
	audio := pr.AudioCodec
	if audio == "" {
		audio = "no audio"
	}
	log.Info("  %s: %s | %s | %s | %s | %s",
		file.Name,
		pr.Resolution(),
		pr.VideoCodec(),
		audio,
		display.FormatDuration(pr.Format.Duration),
		display.FormatBitrateLabel(pr.VideoBitRate()/1000))
}
