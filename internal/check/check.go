// Package check provides system diagnostics (--check mode) and the
// pre-flight capability checks each tool runs before touching any file.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/backmassage/mediaprep/internal/config"
	"github.com/backmassage/mediaprep/internal/imageproc"
)

// Sentinel errors returned by the pre-flight checks.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found")
	ErrDecoderMissing = errors.New("input format cannot be decoded")
	ErrEncodeSelfTest = errors.New("encoder self-test failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// CheckVideoDeps verifies the configured ffmpeg binary can be found.
// ffprobe is optional and not checked here.
func CheckVideoDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFfmpegNotFound, cfg.FFmpegPath)
	}
	return nil
}

// CheckImageDeps decodes a built-in sample for every allow-listed
// extension (HEIC included) and round-trips a small image through the
// target encoder. The first failure is returned.
func CheckImageDeps(cfg *config.Config, codec imageproc.Codec) error {
	for _, ext := range cfg.Extensions() {
		if _, err := imageproc.CheckDecoder(codec, ext); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDecoderMissing, ext, err)
		}
	}
	if err := imageproc.SelfTest(codec, cfg.Format, cfg.Quality); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeSelfTest, err)
	}
	return nil
}

// RunCheck runs the interactive --check flow for cfg.Tool. Unlike the
// pre-flight checks it reports every item and keeps going; the returned
// error is the first failure, if any.
func RunCheck(cfg *config.Config, codec imageproc.Codec, log Logger) error {
	log.Info("=== System Check (%s) ===", cfg.Tool)
	if cfg.Tool == config.ToolVideo {
		return checkVideo(cfg, log)
	}
	return checkImage(cfg, codec, log)
}

func checkVideo(cfg *config.Config, log Logger) error {
	var first error
	if v, err := toolVersion(cfg.FFmpegPath); err != nil {
		log.Error("ffmpeg not found (%s)", cfg.FFmpegPath)
		first = fmt.Errorf("%w: %s", ErrFfmpegNotFound, cfg.FFmpegPath)
	} else {
		log.Success("ffmpeg: %s", v)
		for _, enc := range []string{cfg.VideoCodec, cfg.AudioCodec} {
			if hasEncoder(cfg.FFmpegPath, enc) {
				log.Success("encoder %s available", enc)
			} else {
				log.Warn("encoder %s not listed by ffmpeg", enc)
			}
		}
	}

	if v, err := toolVersion(cfg.FFprobePath); err != nil {
		log.Warn("ffprobe not found (%s); per-file stats will be skipped", cfg.FFprobePath)
	} else {
		log.Success("ffprobe: %s", v)
	}
	return first
}

func checkImage(cfg *config.Config, codec imageproc.Codec, log Logger) error {
	var first error
	for _, ext := range cfg.Extensions() {
		if name, err := imageproc.CheckDecoder(codec, ext); err != nil {
			log.Error("decoder for %s failed: %v", ext, err)
			if first == nil {
				first = fmt.Errorf("%w: %s: %v", ErrDecoderMissing, ext, err)
			}
		} else {
			log.Success("decoder for %s: %s", ext, name)
		}
	}
	if err := imageproc.SelfTest(codec, cfg.Format, cfg.Quality); err != nil {
		log.Error("%s encoder self-test failed: %v", cfg.Format, err)
		if first == nil {
			first = fmt.Errorf("%w: %v", ErrEncodeSelfTest, err)
		}
	} else {
		log.Success("%s encoder works (quality %d)", cfg.Format, cfg.Quality)
	}
	return first
}

// --- internal helpers ---

// toolVersion runs "<bin> -version" and returns the first output line.
func toolVersion(bin string) (string, error) {
	if _, err := exec.LookPath(bin); err != nil {
		return "", err
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		return "", err
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	return firstLine, nil
}

// hasEncoder reports whether "ffmpeg -encoders" lists name.
func hasEncoder(ffmpeg, name string) bool {
	out, err := exec.Command(ffmpeg, "-hide_banner", "-encoders").Output()
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}
