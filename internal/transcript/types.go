package transcript

import (
	"fmt"
	"strings"
)

// Segment is one time-coded span of recognized speech. Start and End are
// offsets in seconds from the beginning of the recording.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is a normalized transcription result. Segments keep the order the
// backend produced them in; nothing in this package re-sorts them.
type Result struct {
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments,omitempty"`

	// Native holds a subtitle payload the backend rendered itself, when an
	// SRT or VTT response format was negotiated upstream. Render passes it
	// through unmodified instead of re-deriving cues from Segments.
	Native string `json:"-"`
}

// Style selects the output rendering for a transcription result.
type Style string

const (
	StylePlain       Style = "plain"
	StyleTimestamped Style = "timestamped"
	StyleSRT         Style = "srt"
	StyleVTT         Style = "vtt"
)

// ParseStyle converts a CLI flag value into a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StylePlain:
		return StylePlain, nil
	case StyleTimestamped:
		return StyleTimestamped, nil
	case StyleSRT:
		return StyleSRT, nil
	case StyleVTT:
		return StyleVTT, nil
	}
	return "", fmt.Errorf("unknown style %q (valid: plain, timestamped, srt, vtt)", s)
}

// Ext returns the output file extension conventionally used for the style.
func (s Style) Ext() string {
	switch s {
	case StyleSRT:
		return ".srt"
	case StyleVTT:
		return ".vtt"
	}
	return ".txt"
}
