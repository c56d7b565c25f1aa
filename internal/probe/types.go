package probe

import "strconv"

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	FormatName string
	Duration   float64 // Seconds.
	Size       int64
	BitRate    int64
}

// VideoStream holds the properties of the primary video stream.
type VideoStream struct {
	Codec        string
	PixFmt       string
	Width        int
	Height       int
	BitRate      int64
	AvgFrameRate string
}

// ProbeResult is the parsed output of one ffprobe call. PrimaryVideo is the
// first video stream that is not cover art (nil if none); AudioCodec is
// empty when the file has no audio.
type ProbeResult struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
	AudioCodec   string
}

// VideoBitRate returns the primary video stream bitrate in bits/sec,
// falling back to the container bitrate when the stream value is missing.
func (p *ProbeResult) VideoBitRate() int64 {
	if p.PrimaryVideo != nil && p.PrimaryVideo.BitRate > 0 {
		return p.PrimaryVideo.BitRate
	}
	return p.Format.BitRate
}

// Resolution returns "WxH" for the primary video stream, or "unknown".
func (p *ProbeResult) Resolution() string {
	if p.PrimaryVideo == nil || p.PrimaryVideo.Width <= 0 || p.PrimaryVideo.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(p.PrimaryVideo.Width) + "x" + strconv.Itoa(p.PrimaryVideo.Height)
}

// VideoCodec returns the primary video codec name, or "none".
func (p *ProbeResult) VideoCodec() string {
	if p.PrimaryVideo == nil || p.PrimaryVideo.Codec == "" {
		return "none"
	}
	return p.PrimaryVideo.Codec
}
