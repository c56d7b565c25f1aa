package ffmpeg

import (
	"strconv"

	"github.com/backmassage/mediaprep/internal/config"
	"github.com/backmassage/mediaprep/internal/planner"
)

// Build constructs the complete ffmpeg argument slice for a video plan,
// starting with the binary itself:
//
//	ffmpeg -hide_banner -nostdin -y -loglevel error -i <in>
//	       -vcodec libx264 -crf 28 -preset medium -acodec aac
//	       -movflags +faststart <out>
func Build(cfg *config.Config, plan *planner.VideoPlan) []string {
	args := make([]string, 0, 24)

	// --- Preamble ---
	args = append(args, cfg.FFmpegPath, "-hide_banner", "-nostdin", "-y")
	if cfg.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Input ---
	args = append(args, "-i", plan.InputPath)

	// --- Codecs ---
	args = append(args,
		"-vcodec", cfg.VideoCodec,
		"-crf", strconv.Itoa(cfg.CRF),
		"-preset", cfg.Preset,
		"-acodec", cfg.AudioCodec,
	)

	// --- Container opts ---
	if cfg.FastStart {
		args = append(args, "-movflags", "+faststart")
	}

	// --- Output ---
	return append(args, plan.OutputPath)
}
