package media

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIsVideoExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".mp4", true},
		{".MP4", true},
		{".mkv", true},
		{".mov", true},
		{".avi", true},
		{".flv", true},
		{".webm", true},
		{".mp3", false},
		{".m4a", false},
		{".wav", false},
		{"", false},
		{"mp4", false},
	}
	for _, tt := range tests {
		if got := IsVideoExtension(tt.ext); got != tt.want {
			t.Errorf("IsVideoExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestProbeOutputParsing(t *testing.T) {
	raw := `{
		"format": {"duration": "123.456"},
		"streams": [{"codec_name": "aac"}]
	}`
	var probe probeOutput
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if probe.Format.Duration != "123.456" {
		t.Errorf("duration %q", probe.Format.Duration)
	}
	if len(probe.Streams) != 1 || probe.Streams[0].CodecName != "aac" {
		t.Errorf("streams %+v", probe.Streams)
	}
}

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"123.456", 123*time.Second + 456*time.Millisecond},
		{"0.5", 500 * time.Millisecond},
		{"0", 0},
		{"", 0},
		{"N/A", 0},
		{"-1", 0},
	}
	for _, tt := range tests {
		if got := parseProbeDuration(tt.in); got != tt.want {
			t.Errorf("parseProbeDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
