// Package ffmpeg builds and executes the transcoding command for one video
// and turns failed runs into typed errors.
//
// The argument template is fixed per run: H.264 video at a constant rate
// factor and preset, AAC audio, fast-start metadata for progressive
// playback, and unconditional overwrite of the output. Execution goes
// through the [Executor] interface so the pipeline can be exercised without
// a real ffmpeg binary.
package ffmpeg
