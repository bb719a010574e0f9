package transcribe

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, bytes.Repeat([]byte{'a'}, size), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestValidate_NotFound(t *testing.T) {
	_, err := Validate(filepath.Join(t.TempDir(), "missing.mp3"), DefaultCloudProfile(""))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want wrapped os.ErrNotExist", err)
	}
}

func TestValidate_Extensions(t *testing.T) {
	profile := DefaultCloudProfile("")

	tests := []struct {
		name   string
		wantOK bool
	}{
		{"a.mp3", true},
		{"a.MP3", true}, // extension check is case-insensitive
		{"a.wav", true},
		{"a.flac", true},
		{"a.mpga", true},
		{"a.ogg", false}, // cloud profile rejects ogg
		{"a.txt", false},
		{"a", false},
	}

	for _, tt := range tests {
		path := writeTempFile(t, tt.name, 10)
		_, err := Validate(path, profile)
		if tt.wantOK && err != nil {
			t.Errorf("Validate(%s) = %v, want ok", tt.name, err)
		}
		if !tt.wantOK && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Validate(%s) = %v, want ErrUnsupportedFormat", tt.name, err)
		}
	}
}

func TestValidate_LocalProfileExtensions(t *testing.T) {
	profile := DefaultLocalProfile()

	oggPath := writeTempFile(t, "a.ogg", 10)
	if _, err := Validate(oggPath, profile); err != nil {
		t.Errorf("local profile should accept .ogg, got %v", err)
	}

	mpegPath := writeTempFile(t, "a.mpeg", 10)
	if _, err := Validate(mpegPath, profile); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("local profile should reject .mpeg, got %v", err)
	}
}

func TestValidate_TooLarge(t *testing.T) {
	profile := DefaultCloudProfile("")
	profile.MaxFileSizeMB = 1

	// One byte over the 1 MB ceiling.
	path := writeTempFile(t, "big.mp3", 1<<20+1)
	if _, err := Validate(path, profile); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("got %v, want ErrFileTooLarge", err)
	}

	// Exactly at the ceiling passes.
	path = writeTempFile(t, "exact.mp3", 1<<20)
	if _, err := Validate(path, profile); err != nil {
		t.Errorf("file at the ceiling should pass, got %v", err)
	}
}

func TestValidate_ReturnsAssetUnchanged(t *testing.T) {
	path := writeTempFile(t, "Take One.M4A", 123)
	asset, err := Validate(path, DefaultCloudProfile(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if asset.Path != path {
		t.Errorf("path = %q, want %q", asset.Path, path)
	}
	if asset.Ext != ".m4a" {
		t.Errorf("ext = %q, want %q", asset.Ext, ".m4a")
	}
	if asset.Size != 123 {
		t.Errorf("size = %d, want 123", asset.Size)
	}
}

func TestDefaultCloudProfile_CeilingByModel(t *testing.T) {
	if got := DefaultCloudProfile(ModelWhisper1).MaxFileSizeMB; got != 25 {
		t.Errorf("whisper-1 ceiling = %d, want 25", got)
	}
	if got := DefaultCloudProfile("gpt-4o-transcribe").MaxFileSizeMB; got != 50 {
		t.Errorf("gpt-4o-transcribe ceiling = %d, want 50", got)
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		req     Request
		wantErr bool
	}{
		{Request{}, false},
		{Request{Format: FormatVerboseJSON, Temperature: 0.5}, false},
		{Request{Format: "yaml"}, true},
		{Request{Temperature: 1.5}, true},
		{Request{Temperature: -0.1}, true},
	}

	for _, tt := range tests {
		err := tt.req.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.req, err, tt.wantErr)
		}
	}
}
