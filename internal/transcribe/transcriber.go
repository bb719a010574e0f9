package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akash518/notegenerator/internal/transcript"
)

// Options are the caller-facing knobs for one orchestrated call. The output
// style is always an explicit argument, never inferred from options.
type Options struct {
	// Language is an ISO-639-1 hint; empty or "auto" auto-detects.
	// Translation ignores it.
	Language string
	// Prompt primes the model's style.
	Prompt string
	// Temperature is the sampling temperature in [0, 1].
	Temperature float64
	// MaxLineLength, when > 0, wraps subtitle cue text into at most two
	// lines. Setting it forces SRT/VTT to be rendered locally from
	// segments instead of passing the backend's native payload through.
	MaxLineLength int
}

// Transcriber composes validation, one backend call, normalization,
// rendering, and the file write. Each operation is a single linear
// pipeline with no retry and no state shared between calls; concurrent
// calls on the same Transcriber are safe.
type Transcriber struct {
	backend Backend
}

// New builds a Transcriber over the given backend.
func New(backend Backend) *Transcriber {
	return &Transcriber{backend: backend}
}

// Backend exposes the underlying backend, mainly for its profile.
func (t *Transcriber) Backend() Backend { return t.backend }

func (o Options) request(format ResponseFormat) Request {
	return Request{
		Language:    o.Language,
		Prompt:      o.Prompt,
		Temperature: o.Temperature,
		Format:      format,
	}
}

// ToText transcribes the file and returns the stripped flat text.
func (t *Transcriber) ToText(ctx context.Context, path string, opts Options) (string, error) {
	asset, err := Validate(path, t.backend.Profile())
	if err != nil {
		return "", err
	}
	res, err := t.backend.Recognize(ctx, asset, opts.request(FormatText))
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", asset.Base(), err)
	}
	return strings.TrimSpace(res.Text), nil
}

// WithTimestamps transcribes the file and returns its time-coded segments
// in backend order. Segments whose optional fields the backend omitted
// arrive zero-valued, never as an error.
func (t *Transcriber) WithTimestamps(ctx context.Context, path string, opts Options) ([]transcript.Segment, error) {
	asset, err := Validate(path, t.backend.Profile())
	if err != nil {
		return nil, err
	}
	res, err := t.backend.Recognize(ctx, asset, opts.request(FormatVerboseJSON))
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", asset.Base(), err)
	}
	return res.Segments, nil
}

// AndSave transcribes the file, renders the result in the given style, and
// writes it to outPath, creating missing parent directories. The write is
// atomic from the caller's point of view: either the full payload lands at
// outPath or no file is written. Returns outPath.
func (t *Transcriber) AndSave(ctx context.Context, path, outPath string, style transcript.Style, opts Options) (string, error) {
	asset, err := Validate(path, t.backend.Profile())
	if err != nil {
		return "", err
	}

	res, err := t.backend.Recognize(ctx, asset, opts.request(formatForStyle(style, opts)))
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", asset.Base(), err)
	}

	payload, err := transcript.Render(res, style, transcript.RenderOptions{MaxLineLength: opts.MaxLineLength})
	if err != nil {
		return "", err
	}

	if err := writeFileAtomic(outPath, payload); err != nil {
		return "", err
	}
	return outPath, nil
}

// Translate transcribes source-language audio into English text. There is
// no language parameter: translation targets English unconditionally.
func (t *Transcriber) Translate(ctx context.Context, path string, opts Options) (string, error) {
	asset, err := Validate(path, t.backend.Profile())
	if err != nil {
		return "", err
	}
	opts.Language = ""
	res, err := t.backend.Translate(ctx, asset, opts.request(FormatText))
	if err != nil {
		return "", fmt.Errorf("translate %s: %w", asset.Base(), err)
	}
	return strings.TrimSpace(res.Text), nil
}

// formatForStyle picks the response shape to negotiate with the backend.
// Subtitle styles request the backend's native rendering unless local cue
// wrapping was asked for, in which case segments are needed.
func formatForStyle(style transcript.Style, opts Options) ResponseFormat {
	switch style {
	case transcript.StyleTimestamped:
		return FormatVerboseJSON
	case transcript.StyleSRT:
		if opts.MaxLineLength > 0 {
			return FormatVerboseJSON
		}
		return FormatSRT
	case transcript.StyleVTT:
		if opts.MaxLineLength > 0 {
			return FormatVerboseJSON
		}
		return FormatVTT
	}
	return FormatText
}

// writeFileAtomic writes content to path via a temp file and rename, so a
// failure mid-write never leaves a partial payload at path.
func writeFileAtomic(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".notegen-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}
	return nil
}
