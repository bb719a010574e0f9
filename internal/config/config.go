package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the full application configuration. It is built once at
// startup and read-only afterwards.
type Config struct {
	// APIKey authenticates cloud transcription and note generation.
	APIKey string

	// CloudModel is the cloud transcription model.
	CloudModel string
	// LocalModel is the local whisper model size.
	LocalModel string
	// NotesModel is the chat model used for note formatting.
	NotesModel string

	// DownloadsDir receives downloaded YouTube audio.
	DownloadsDir string
	// NotesDir receives generated notes.
	NotesDir string
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		CloudModel:   "whisper-1",
		LocalModel:   "base",
		NotesModel:   "gpt-4o-mini",
		DownloadsDir: "downloads",
		NotesDir:     "notes",
	}
}

// Load builds the configuration from defaults, a .env file in the working
// directory when present, and process environment variables. A missing
// .env file is not an error; a missing API key only matters once a cloud
// call is attempted.
func Load() *Config {
	_ = godotenv.Load()

	cfg := Default()
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_KEY")
	}
	if v := os.Getenv("NOTEGEN_DOWNLOADS_DIR"); v != "" {
		cfg.DownloadsDir = v
	}
	if v := os.Getenv("NOTEGEN_NOTES_DIR"); v != "" {
		cfg.NotesDir = v
	}
	return cfg
}
