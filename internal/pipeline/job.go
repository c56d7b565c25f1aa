package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// ErrOutputCollision marks a file whose output path is already owned by an
// earlier input of the same run.
var ErrOutputCollision = errors.New("output path already claimed")

// State is the lifecycle stage of a Job.
type State int

const (
	StatePending State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is Succeeded or Failed.
func (s State) Terminal() bool { return s == StateSucceeded || s == StateFailed }

// ErrIllegalTransition is returned for a state change the lifecycle forbids.
var ErrIllegalTransition = errors.New("illegal job state transition")

// Job pairs one input file with its output path and tracks its state.
// A job is owned by a single goroutine; it is not safe for concurrent use.
type Job struct {
	File   MediaFile
	Output string
	state  State
}

// NewJob returns a pending job.
func NewJob(file MediaFile, output string) *Job {
	return &Job{File: file, Output: output}
}

// State returns the current state.
func (j *Job) State() State { return j.state }

// Start moves a pending job to running.
func (j *Job) Start() error {
	return j.transition(StatePending, StateRunning)
}

// Finish moves a running job to Succeeded (err == nil) or Failed.
func (j *Job) Finish(err error) error {
	if err != nil {
		return j.transition(StateRunning, StateFailed)
	}
	return j.transition(StateRunning, StateSucceeded)
}

// Abort fails a job that never started: rejected at planning time or
// cancelled before a worker picked it up.
func (j *Job) Abort() error {
	return j.transition(StatePending, StateFailed)
}

func (j *Job) transition(from, to State) error {
	if j.state != from {
		return fmt.Errorf("%w: %s -> %s (job is %s)", ErrIllegalTransition, from, to, j.state)
	}
	j.state = to
	return nil
}

// Result is the outcome of one job. Width/Height are the decoded source
// dimensions and OutWidth/OutHeight the written ones (image path only).
type Result struct {
	File        MediaFile
	Output      string // Output file name.
	Err         error
	InputBytes  int64
	OutputBytes int64
	Width       int
	Height      int
	OutWidth    int
	OutHeight   int
	Elapsed     time.Duration
}

// OK reports whether the job succeeded.
func (r *Result) OK() bool { return r.Err == nil }

// Savings returns the size reduction in percent: (1 - out/in) * 100.
// Negative when the output grew; 0 when the input is empty.
func (r *Result) Savings() float64 {
	if r.InputBytes <= 0 {
		return 0
	}
	return (1 - float64(r.OutputBytes)/float64(r.InputBytes)) * 100
}

// result builds the terminal Result for j.
func (j *Job) result(err error, start time.Time) Result {
	return Result{
		File:    j.File,
		Output:  filepath.Base(j.Output),
		Err:     err,
		Elapsed: time.Since(start),
	}
}
