package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation. ExitCode is
// -1 when the process could not be started or was killed by a signal.
type ExecResult struct {
	ExitCode int
	Stderr   string
	Err      error
}

// Executor runs one prepared argument vector (binary first).
type Executor interface {
	Execute(ctx context.Context, args []string) ExecResult
}

// CommandExecutor runs ffmpeg as a subprocess. When Tee is set, stderr is
// copied there in real time as well as captured.
type CommandExecutor struct {
	Tee io.Writer
}

// Execute runs args and captures stderr. A non-zero exit, a start failure
// or a cancelled context yields a non-nil Err of type *ExitError.
func (e CommandExecutor) Execute(ctx context.Context, args []string) ExecResult {
	if len(args) == 0 {
		return ExecResult{ExitCode: -1, Err: errors.New("ffmpeg: empty command")}
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if e.Tee != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, e.Tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	res := ExecResult{Stderr: stderrBuf.String()}
	if err == nil {
		return res
	}

	res.ExitCode = -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	res.Err = &ExitError{
		Args:     args,
		ExitCode: res.ExitCode,
		Stderr:   res.Stderr,
		Err:      err,
	}
	return res
}
