package transcribe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Profile is the configuration set associated with a recognition backend:
// the file formats it accepts and the upload ceiling it enforces. Profiles
// are data, not behavior; the defaults below can be copied and adjusted
// before a backend is constructed.
type Profile struct {
	Name          string
	Extensions    []string
	MaxFileSizeMB int
}

// Accepts reports whether the profile accepts the extension,
// case-insensitively.
func (p Profile) Accepts(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range p.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// DefaultCloudProfile returns the accepted-format profile for the OpenAI
// audio API. whisper-1 uploads are capped at 25 MB; the newer transcription
// models accept 50 MB.
func DefaultCloudProfile(model string) Profile {
	maxMB := 25
	if model != "" && model != ModelWhisper1 {
		maxMB = 50
	}
	return Profile{
		Name:          "cloud",
		Extensions:    []string{".mp3", ".mp4", ".mpeg", ".mpga", ".m4a", ".wav", ".webm", ".flac"},
		MaxFileSizeMB: maxMB,
	}
}

// DefaultLocalProfile returns the accepted-format profile for the local
// whisper model. It takes .ogg, which the cloud API rejects, and drops the
// MPEG container variants.
func DefaultLocalProfile() Profile {
	return Profile{
		Name:          "local",
		Extensions:    []string{".mp3", ".mp4", ".m4a", ".wav", ".webm", ".flac", ".ogg"},
		MaxFileSizeMB: 50,
	}
}

// AudioAsset identifies a validated candidate input file.
type AudioAsset struct {
	Path string
	Ext  string
	Size int64
}

// Base returns the file name without its directory, for error and log
// context.
func (a AudioAsset) Base() string {
	return filepath.Base(a.Path)
}

// Validate gates a candidate input against a backend profile. It performs
// no mutation: on success the path and size are returned unchanged.
func Validate(path string, profile Profile) (AudioAsset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return AudioAsset{}, fmt.Errorf("audio file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !profile.Accepts(ext) {
		return AudioAsset{}, fmt.Errorf("%w: %s (accepted: %s)",
			ErrUnsupportedFormat, ext, strings.Join(profile.Extensions, " "))
	}

	sizeMB := float64(info.Size()) / (1024 * 1024)
	if sizeMB > float64(profile.MaxFileSizeMB) {
		return AudioAsset{}, fmt.Errorf("%w: %.2f MB exceeds the %d MB ceiling",
			ErrFileTooLarge, sizeMB, profile.MaxFileSizeMB)
	}

	return AudioAsset{Path: path, Ext: ext, Size: info.Size()}, nil
}
