// Command imageopt re-encodes every image in a directory to WebP, shrinking
// anything larger than 1920x1080 to fit. HEIC/HEIF photos are supported.
package main

import (
	"os"

	"github.com/backmassage/mediaprep/internal/cli"
	"github.com/backmassage/mediaprep/internal/config"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(cli.Run(config.ToolImage, os.Args[1:], cli.Build{Version: version, Commit: commit}, os.Stdout, os.Stderr))
}
