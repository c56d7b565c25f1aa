package ffmpeg

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/mediaprep/internal/config"
	"github.com/backmassage/mediaprep/internal/planner"
)

func TestBuild_DefaultTemplate(t *testing.T) {
	cfg := config.DefaultVideoConfig()
	plan := &planner.VideoPlan{
		InputPath:  filepath.Join("public", "videos", "hero.mov"),
		OutputPath: filepath.Join("public", "optimized_videos", "hero.mp4"),
	}
	got := strings.Join(Build(&cfg, plan), " ")
	want := "ffmpeg -hide_banner -nostdin -y -loglevel error -i " + plan.InputPath +
		" -vcodec libx264 -crf 28 -preset medium -acodec aac -movflags +faststart " + plan.OutputPath
	if got != want {
		t.Errorf("Build:\n got  %s\n want %s", got, want)
	}
}

func TestBuild_Overrides(t *testing.T) {
	cfg := config.DefaultVideoConfig()
	cfg.FFmpegPath = "/opt/ffmpeg/bin/ffmpeg"
	cfg.CRF = 20
	cfg.Preset = "slow"
	cfg.Verbose = true
	args := Build(&cfg, &planner.VideoPlan{InputPath: "a.mkv", OutputPath: "a.mp4"})

	if args[0] != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("binary = %q", args[0])
	}
	joined := strings.Join(args, " ")
	for _, want := range []string{"-crf 20", "-preset slow", "-loglevel info"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	if args[len(args)-1] != "a.mp4" {
		t.Errorf("output must be last, got %q", args[len(args)-1])
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"empty", "", ""},
		{"last line fallback", "frame=1\nsomething odd happened\n\n", "something odd happened"},
		{
			"known pattern wins over last line",
			"[mov,mp4] moov atom not found\nbroken.mov: Invalid data found when processing input\n",
			"[mov,mp4] moov atom not found",
		},
		{
			"generic demuxer error wins over trailer",
			"broken.mov: Invalid data found when processing input\nConversion failed!\n",
			"broken.mov: Invalid data found when processing input",
		},
		{"missing input", "missing.mov: No such file or directory\r\n", "missing.mov: No such file or directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.stderr); got != tt.want {
				t.Errorf("Summarize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTail(t *testing.T) {
	got := Tail("a\nb\n\nc\nd\n", 2)
	if len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Errorf("Tail = %v", got)
	}
}

func TestExitError(t *testing.T) {
	base := errors.New("exit status 1")
	err := error(&ExitError{Args: []string{"ffmpeg", "-i", "x"}, ExitCode: 1, Stderr: "x: Permission denied\n", Err: base})
	if got := err.Error(); got != "ffmpeg exited with code 1: x: Permission denied" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, base) {
		t.Error("ExitError should unwrap to the exec error")
	}
	var ee *ExitError
	if !errors.As(err, &ee) || ee.Command() != "ffmpeg -i x" {
		t.Error("errors.As / Command")
	}

	noStderr := &ExitError{ExitCode: -1, Err: base}
	if got := noStderr.Error(); got != "ffmpeg failed: exit status 1" {
		t.Errorf("Error() without stderr = %q", got)
	}
}

func TestCommandExecutor_MissingBinary(t *testing.T) {
	res := CommandExecutor{}.Execute(context.Background(), []string{filepath.Join(t.TempDir(), "no-ffmpeg")})
	if res.Err == nil {
		t.Fatal("expected error for missing binary")
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
	var ee *ExitError
	if !errors.As(res.Err, &ee) {
		t.Errorf("error type = %T, want *ExitError", res.Err)
	}
}

func TestCommandExecutor_EmptyArgs(t *testing.T) {
	if res := (CommandExecutor{}).Execute(context.Background(), nil); res.Err == nil {
		t.Error("expected error for empty command")
	}
}

func TestCommandExecutor_NonZeroExit(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	res := CommandExecutor{}.Execute(context.Background(), []string{sh, "-c", "echo 'bad.mov: Invalid data found when processing input' >&2; exit 3"})
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Err == nil || !strings.Contains(res.Err.Error(), "Invalid data found") {
		t.Errorf("Err = %v", res.Err)
	}
}
