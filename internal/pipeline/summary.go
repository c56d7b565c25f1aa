package pipeline

import "github.com/backmassage/mediaprep/internal/config"

// RunSummary partitions the results of one run into succeeded and failed,
// each in processing order. Byte totals cover succeeded jobs only.
type RunSummary struct {
	RunID            string
	Tool             config.Tool
	Succeeded        []Result
	Failed           []Result
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// NewRunSummary returns an empty summary for tool.
func NewRunSummary(tool config.Tool, runID string) *RunSummary {
	return &RunSummary{RunID: runID, Tool: tool}
}

// Add files r under Succeeded or Failed.
func (s *RunSummary) Add(r Result) {
	if !r.OK() {
		s.Failed = append(s.Failed, r)
		return
	}
	s.Succeeded = append(s.Succeeded, r)
	s.TotalInputBytes += r.InputBytes
	s.TotalOutputBytes += r.OutputBytes
}

// Total returns the number of recorded jobs.
func (s *RunSummary) Total() int { return len(s.Succeeded) + len(s.Failed) }

// HasFailures reports whether any job failed.
func (s *RunSummary) HasFailures() bool { return len(s.Failed) > 0 }

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunSummary) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}
