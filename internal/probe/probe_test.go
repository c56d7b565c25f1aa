package probe

import (
	"context"
	"path/filepath"
	"testing"
)

// iPhone-style MOV: HEVC video, AAC audio, and a cover-art stream listed
// first that must not become the primary video.
const sampleMOV = `{
  "streams": [
    {
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 900,
      "disposition": { "default": 0, "attached_pic": 1 }
    },
    {
      "codec_name": "hevc",
      "codec_type": "video",
      "pix_fmt": "yuv420p10le",
      "width": 1920,
      "height": 1080,
      "bit_rate": "8000000",
      "avg_frame_rate": "30/1",
      "disposition": { "default": 1, "attached_pic": 0 }
    },
    {
      "codec_name": "aac",
      "codec_type": "audio",
      "disposition": { "default": 1 }
    }
  ],
  "format": {
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "12.500000",
    "size": "12500000",
    "bit_rate": "8123456"
  }
}`

// Silent screen recording without a stream-level bitrate.
const sampleNoAudio = `{
  "streams": [
    { "codec_name": "h264", "codec_type": "video", "width": 1280, "height": 720 }
  ],
  "format": { "format_name": "matroska,webm", "duration": "3.0", "bit_rate": "900000" }
}`

func TestParseJSON(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleMOV))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.PrimaryVideo == nil || pr.VideoCodec() != "hevc" {
		t.Fatalf("primary video = %+v, want hevc (cover art skipped)", pr.PrimaryVideo)
	}
	if got := pr.Resolution(); got != "1920x1080" {
		t.Errorf("Resolution = %q", got)
	}
	if pr.AudioCodec != "aac" {
		t.Errorf("AudioCodec = %q", pr.AudioCodec)
	}
	if pr.Format.Duration != 12.5 || pr.Format.Size != 12500000 {
		t.Errorf("format = %+v", pr.Format)
	}
	if got := pr.VideoBitRate(); got != 8000000 {
		t.Errorf("VideoBitRate = %d, want stream bitrate", got)
	}
}

func TestParseJSON_Fallbacks(t *testing.T) {
	pr, err := ParseJSON([]byte(sampleNoAudio))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if pr.AudioCodec != "" {
		t.Errorf("AudioCodec = %q, want empty", pr.AudioCodec)
	}
	if got := pr.VideoBitRate(); got != 900000 {
		t.Errorf("VideoBitRate = %d, want container fallback", got)
	}
}

func TestProbeResult_NoVideo(t *testing.T) {
	pr := &ProbeResult{}
	if pr.Resolution() != "unknown" || pr.VideoCodec() != "none" || pr.VideoBitRate() != 0 {
		t.Errorf("empty result: %s %s %d", pr.Resolution(), pr.VideoCodec(), pr.VideoBitRate())
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestProbe_MissingBinary(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "no-ffprobe")
	if _, err := Probe(context.Background(), bin, "x.mov"); err == nil {
		t.Error("expected error when ffprobe is missing")
	}
}
