// Package logging provides the leveled console logger shared by both tools.
// Console lines are human-oriented and optionally colored; when a log file
// is configured every line is also written there as a JSON record tagged
// with the run ID, so separate runs appending to one file stay distinguishable.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/mediaprep/internal/config"
	"github.com/backmassage/mediaprep/internal/term"
)

// Logger provides leveled, optionally colored logging with an optional
// JSON file sink. All methods are safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	runID  string
	file   *os.File
	sink   *zap.Logger
}

// NewLogger configures terminal colors from cfg and optionally opens
// cfg.LogFile for appending. Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	l := &Logger{
		out:    os.Stdout,
		errOut: os.Stderr,
		runID:  uuid.NewString(),
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)
		l.file = f
		l.sink = zap.New(core).With(
			zap.String("tool", string(cfg.Tool)),
			zap.String("run_id", l.runID),
		)
	}
	return l, nil
}

// SetOutput redirects console output. Used by tests.
func (l *Logger) SetOutput(stdout, stderr io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = stdout
	l.errOut = stderr
}

// Writer returns the console stdout writer, for framed output such as
// banners that should not carry a level prefix.
func (l *Logger) Writer() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out
}

// RunID returns the identifier attached to every file record of this run.
func (l *Logger) RunID() string { return l.runID }

// Close flushes and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	_ = l.sink.Sync()
	err := l.file.Close()
	l.file = nil
	l.sink = nil
	return err
}

func (l *Logger) line(level zapcore.Level, label, color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.out
	if level >= zapcore.ErrorLevel {
		out = l.errOut
	}
	if color != "" && term.Enabled() {
		_, _ = io.WriteString(out, ts+" "+color+"["+label+"]"+term.NC+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, ts+" ["+label+"] "+text+"\n")
	}

	if l.sink != nil && text != "" {
		if ce := l.sink.Check(level, text); ce != nil {
			ce.Write(zap.String("label", label))
		}
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(zapcore.InfoLevel, "INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(zapcore.InfoLevel, "SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(zapcore.WarnLevel, "WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(zapcore.ErrorLevel, "ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line(zapcore.DebugLevel, "DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}
