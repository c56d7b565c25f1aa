package pipeline

import (
	"github.com/backmassage/mediaprep/internal/config"
	"github.com/backmassage/mediaprep/internal/display"
	"github.com/backmassage/mediaprep/internal/logging"
)

// LogSummary prints the end-of-run report shared by both tools.
func LogSummary(cfg *config.Config, log *logging.Logger, s *RunSummary) {
	display.PrintSection(log.Writer(), "SUMMARY")
	log.Info("Summary: %d processed, %d succeeded, %d failed", s.Total(), len(s.Succeeded), len(s.Failed))

	if len(s.Succeeded) > 0 {
		log.Success("Succeeded: %d", len(s.Succeeded))
		for i := range s.Succeeded {
			r := &s.Succeeded[i]
			log.Info("  - %s (%s)", r.Output, display.FormatSavings(r.Savings()))
		}
	}
	if len(s.Failed) > 0 {
		log.Error("Failed: %d", len(s.Failed))
		for i := range s.Failed {
			r := &s.Failed[i]
			log.Error("  - %s: %v", r.File.Name, r.Err)
		}
	}

	saved := s.SpaceSaved()
	switch {
	case len(s.Succeeded) == 0:
		// Nothing written.
	case saved >= 0:
		log.Success("Total space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(s.TotalInputBytes),
			display.FormatBytes(s.TotalOutputBytes))
	default:
		log.Warn("Total space saved: %s (overall output is larger)",
			display.FormatBytesWithSign(saved))
	}

	log.Info("Outputs saved in: %s", cfg.OutputDir)
	if cfg.Tool == config.ToolImage {
		log.Info("Update the HTML to reference images from %s/", cfg.OutputDir)
	}
}
