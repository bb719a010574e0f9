package transcribe

import "errors"

// Validation failures surfaced before any backend request is issued. A
// missing input file is reported by wrapping the os.Stat error, so callers
// test it with errors.Is(err, os.ErrNotExist).
var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrFileTooLarge      = errors.New("audio file exceeds size limit")
)
