package transcript

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrNoSegments is returned when a timestamp-dependent style is requested
// for a result that carries no segment data. This is a usage error: the
// caller asked for a flat-text response upstream and then for a time-coded
// rendering downstream.
var ErrNoSegments = errors.New("transcript carries no segments")

// RenderOptions tunes locally rendered subtitle cues.
type RenderOptions struct {
	// MaxLineLength wraps cue text into at most two lines at space or
	// punctuation boundaries when > 0. It has no effect on payloads the
	// backend rendered natively.
	MaxLineLength int
}

// Render produces the final text payload for a result in the given style.
// Rendering is a pure function of its inputs: calling it twice with the
// same result and style yields byte-identical output.
func Render(r *Result, style Style, opts RenderOptions) (string, error) {
	switch style {
	case StylePlain:
		return strings.TrimSpace(r.Text), nil
	case StyleTimestamped:
		return renderTimestamped(r)
	case StyleSRT:
		if r.Native != "" {
			return r.Native, nil
		}
		return renderCues(r, FormatSRTTime, "", opts)
	case StyleVTT:
		if r.Native != "" {
			return r.Native, nil
		}
		return renderCues(r, FormatVTTTime, "WEBVTT\n\n", opts)
	}
	return "", fmt.Errorf("unknown style %q", style)
}

func renderTimestamped(r *Result) (string, error) {
	if len(r.Segments) == 0 {
		return "", ErrNoSegments
	}
	lines := make([]string, 0, len(r.Segments))
	for _, seg := range r.Segments {
		lines = append(lines, fmt.Sprintf("[%s -> %s] %s",
			FormatClock(seg.Start), FormatClock(seg.End), strings.TrimSpace(seg.Text)))
	}
	return strings.Join(lines, "\n"), nil
}

func renderCues(r *Result, formatTime func(float64) string, header string, opts RenderOptions) (string, error) {
	if len(r.Segments) == 0 {
		return "", ErrNoSegments
	}

	var sb strings.Builder
	sb.WriteString(header)
	for i, seg := range r.Segments {
		text := strings.TrimSpace(seg.Text)
		if opts.MaxLineLength > 0 {
			text = wrapCueText(text, opts.MaxLineLength)
		}
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n", i+1, formatTime(seg.Start), formatTime(seg.End), text)
		if i < len(r.Segments)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// wrapCueText splits text into a maximum of two lines using
// findWrapPosition for the break point. Text that fits on one line is
// returned unchanged.
func wrapCueText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	pos := findWrapPosition(text, maxLen)
	first := strings.TrimSpace(string(runes[:pos]))
	rest := strings.TrimSpace(string(runes[pos:]))
	if rest == "" {
		return first
	}
	return first + "\n" + rest
}

// findWrapPosition finds the best rune index to break text at or before
// maxLen, preferring a space, then trailing punctuation, then a hard cut.
func findWrapPosition(text string, maxLen int) int {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return len(runes)
	}

	searchEnd := maxLen + 1
	if searchEnd > len(runes) {
		searchEnd = len(runes)
	}

	best := -1
	for i := searchEnd - 1; i > 0; i-- {
		r := runes[i]
		if r == ' ' {
			best = i
			break
		}
		if unicode.IsPunct(r) {
			best = i + 1
			break
		}
	}

	if best <= 0 {
		best = maxLen
	}
	return best
}
