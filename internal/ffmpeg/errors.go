package ffmpeg

import (
	"fmt"
	"regexp"
	"strings"
)

// ExitError describes a failed ffmpeg run.
type ExitError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	msg := Summarize(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.ExitCode < 0 {
		return "ffmpeg failed: " + msg
	}
	return fmt.Sprintf("ffmpeg exited with code %d: %s", e.ExitCode, msg)
}

// Unwrap returns the underlying exec or context error.
func (e *ExitError) Unwrap() error { return e.Err }

// Command returns the command line for display.
func (e *ExitError) Command() string { return strings.Join(e.Args, " ") }

// Known fatal stderr patterns, checked in order. The first match becomes
// the one-line summary; otherwise the last non-empty line is used. Root
// causes come before the generic demuxer error ffmpeg prints after them.
var fatalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)no such file or directory`),
	regexp.MustCompile(`(?i)permission denied`),
	regexp.MustCompile(`(?i)moov atom not found`),
	regexp.MustCompile(`(?i)unknown encoder|encoder .* not found`),
	regexp.MustCompile(`(?i)invalid data found when processing input`),
	regexp.MustCompile(`(?i)no space left on device`),
	regexp.MustCompile(`(?i)conversion failed!?`),
}

// Summarize reduces ffmpeg stderr to the single most useful line.
func Summarize(stderr string) string {
	lines := nonEmptyLines(stderr)
	if len(lines) == 0 {
		return ""
	}
	for _, re := range fatalPatterns {
		for _, l := range lines {
			if re.MatchString(l) {
				return l
			}
		}
	}
	return lines[len(lines)-1]
}

// Tail returns at most n trailing non-empty stderr lines.
func Tail(stderr string, n int) []string {
	lines := nonEmptyLines(stderr)
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		l = strings.TrimSpace(strings.TrimSuffix(l, "\r"))
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
