// Package probe inspects a video with a single ffprobe JSON call and
// returns the handful of properties the converter logs before and after
// encoding: resolution, codecs, duration and bitrate.
package probe
