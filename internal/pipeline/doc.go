// Package pipeline orchestrates file discovery, per-file conversion and
// batch summary reporting for both tools.
//
// [RunVideos] fans jobs out to a bounded pool of ffmpeg processes and joins
// them before reporting; [RunImages] processes files strictly one at a
// time. Both return a [RunSummary] in which every discovered file appears
// exactly once, as succeeded or failed.
package pipeline
