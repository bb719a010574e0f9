package transcript

import (
	"testing"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{65, "01:05"},
		{3661, "01:01:01"},
		{1.2, "00:01"},  // truncated, not rounded
		{2.5, "00:02"},  // truncated, not rounded
		{59.9, "00:59"},
		{3600, "01:00:00"},
		{7325, "02:02:05"},
		{-5, "00:00"}, // negative clamps to zero
	}

	for _, tt := range tests {
		got := FormatClock(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatSRTTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{61.123, "00:01:01,123"},
		{3661.234, "01:01:01,234"},
		{3661.999, "01:01:01,999"},
		{3600, "01:00:00,000"},
		{0.083, "00:00:00,083"},
		{7200.5, "02:00:00,500"},
		{-1, "00:00:00,000"},
	}

	for _, tt := range tests {
		got := FormatSRTTime(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatSRTTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatVTTTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.000"},
		{3661.234, "01:01:01.234"},
		{0.083, "00:00:00.083"},
	}

	for _, tt := range tests {
		got := FormatVTTTime(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatVTTTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
