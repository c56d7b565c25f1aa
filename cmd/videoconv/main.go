// Command videoconv converts every video in a directory to H.264/AAC MP4
// with fast-start metadata, running a bounded number of ffmpeg processes
// in parallel.
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
	os.Exit(cli.Run(config.ToolVideo, os.Args[1:], cli.Build{Version: version, Commit: commit}, os.Stdout, os.Stderr))
}
