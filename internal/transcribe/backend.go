package transcribe

import (
	"context"
	"fmt"

	"github.com/akash518/notegenerator/internal/transcript"
)

// ResponseFormat selects the response shape requested from a backend.
type ResponseFormat string

const (
	FormatJSON        ResponseFormat = "json"
	FormatText        ResponseFormat = "text"
	FormatVerboseJSON ResponseFormat = "verbose_json"
	FormatSRT         ResponseFormat = "srt"
	FormatVTT         ResponseFormat = "vtt"
)

// Request enumerates the per-call options a backend accepts. Unknown
// options do not exist by construction; values outside contract are
// rejected by Validate before any request is dispatched.
type Request struct {
	// Language is an ISO-639-1 hint. Empty or "auto" means auto-detect.
	// Ignored by translation calls, which always target English.
	Language string
	// Prompt primes the model's style; it must match the audio language.
	Prompt string
	// Temperature is the sampling temperature in [0, 1].
	Temperature float64
	// Format is the requested response shape. Empty defaults to json.
	Format ResponseFormat
}

// Validate rejects out-of-contract option values.
func (r Request) Validate() error {
	switch r.Format {
	case "", FormatJSON, FormatText, FormatVerboseJSON, FormatSRT, FormatVTT:
	default:
		return fmt.Errorf("unknown response format %q", r.Format)
	}
	if r.Temperature < 0 || r.Temperature > 1 {
		return fmt.Errorf("temperature %.2f outside [0, 1]", r.Temperature)
	}
	return nil
}

// Backend is a pluggable speech-recognition provider. Implementations must
// tolerate responses that omit optional fields: absent segment start/end
// decode to 0.0 and absent text to the empty string, never an error.
type Backend interface {
	Name() string
	Profile() Profile
	Recognize(ctx context.Context, asset AudioAsset, req Request) (*transcript.Result, error)
	Translate(ctx context.Context, asset AudioAsset, req Request) (*transcript.Result, error)
}
