package planner

import "github.com/backmassage/mediaprep/internal/config"

// Action is the per-file decision.
type Action int

const (
	ActionConvert Action = iota // Run the conversion.
	ActionReject                // Output path owned by an earlier input; fail without running.
)

func (a Action) String() string {
	switch a {
	case ActionConvert:
		return "convert"
	case ActionReject:
		return "reject"
	default:
		return "unknown"
	}
}

// VideoPlan is the complete per-file decision for one video.
type VideoPlan struct {
	Action     Action
	InputPath  string
	OutputPath string
	Owner      string // Input that owns OutputPath when Action == ActionReject.
}

// ImagePlan is the complete per-file decision for one image. The resize
// target is not part of the plan because it depends on the decoded
// dimensions; see [FitWithin].
type ImagePlan struct {
	Action     Action
	InputPath  string
	OutputPath string
	Owner      string

	PreDecode bool // HEIC/HEIF: convert to an intermediate PNG raster first.
	Format    config.ImageFormat
	Quality   int
	MaxWidth  int
	MaxHeight int
}
