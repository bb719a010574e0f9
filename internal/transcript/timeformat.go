package transcript

import "fmt"

// FormatClock converts a second offset into MM:SS, or HH:MM:SS once the
// offset reaches an hour. Fields are truncated, not rounded. Negative input
// clamps to zero.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatSRTTime converts a second offset into the SRT cue time form
// HH:MM:SS,mmm. The hours field is always present.
func FormatSRTTime(seconds float64) string {
	return formatSubtitleTime(seconds, ',')
}

// FormatVTTTime converts a second offset into the WebVTT cue time form
// HH:MM:SS.mmm.
func FormatVTTTime(seconds float64) string {
	return formatSubtitleTime(seconds, '.')
}

func formatSubtitleTime(seconds float64, sep byte) string {
	if seconds < 0 {
		seconds = 0
	}
	// Truncate to whole milliseconds. The epsilon absorbs IEEE-754
	// representation error (well under a microsecond at these magnitudes)
	// so that decimal inputs like 3661.234 land on 234, not 233.
	total := int64(seconds*1000 + 1e-4)
	hours := total / 3600000
	minutes := (total % 3600000) / 60000
	secs := (total % 60000) / 1000
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}
