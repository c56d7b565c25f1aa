package planner

import (
	"path/filepath"
	"strings"

	"github.com/backmassage/mediaprep/internal/config"
	"github.com/backmassage/mediaprep/internal/naming"
)

// preDecodeExts are the camera formats the main decoder cannot read directly.
var preDecodeExts = map[string]bool{
	".heic": true,
	".heif": true,
}

// NeedsPreDecode reports whether path must go through the HEIC raster step.
func NeedsPreDecode(path string) bool {
	return preDecodeExts[strings.ToLower(filepath.Ext(path))]
}

// BuildVideoPlan resolves the MP4 output path for input and claims it.
func BuildVideoPlan(cfg *config.Config, input string, claims *naming.Claims) *VideoPlan {
	plan := &VideoPlan{
		Action:     ActionConvert,
		InputPath:  input,
		OutputPath: naming.OutputPath(cfg.OutputDir, input, cfg.VideoExt),
	}
	if owner, ok := claims.Claim(input, plan.OutputPath); !ok {
		plan.Action = ActionReject
		plan.Owner = owner
	}
	return plan
}

// BuildImagePlan resolves the output path and encoding settings for input
// and claims the output path.
func BuildImagePlan(cfg *config.Config, input string, claims *naming.Claims) *ImagePlan {
	plan := &ImagePlan{
		Action:     ActionConvert,
		InputPath:  input,
		OutputPath: naming.OutputPath(cfg.OutputDir, input, cfg.Format.Ext()),
		PreDecode:  NeedsPreDecode(input),
		Format:     cfg.Format,
		Quality:    Clamp(cfg.Quality, QualityMin, QualityMax),
		MaxWidth:   cfg.MaxWidth,
		MaxHeight:  cfg.MaxHeight,
	}
	if owner, ok := claims.Claim(input, plan.OutputPath); !ok {
		plan.Action = ActionReject
		plan.Owner = owner
	}
	return plan
}
