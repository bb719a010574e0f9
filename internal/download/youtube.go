// Package download fetches YouTube audio through yt-dlp, transcoded to a
// format the transcription backends accept.
package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var youtubeURLRe = regexp.MustCompile(`^https?://(www\.|m\.)?(youtube\.com/(watch\?v=|shorts/|live/)|youtu\.be/)[\w-]+`)

// IsValidURL reports whether u looks like a YouTube video URL.
func IsValidURL(u string) bool {
	return youtubeURLRe.MatchString(strings.TrimSpace(u))
}

// Available returns true if yt-dlp is on the PATH.
func Available() bool {
	_, err := exec.LookPath("yt-dlp")
	return err == nil
}

// Downloader fetches YouTube audio into OutputDir.
type Downloader struct {
	OutputDir string
}

// DownloadAudio downloads the audio track of a YouTube video as 16 kHz
// mono MP3 and returns the path of the saved file. name, when non-empty,
// overrides the video title as the file name (extension ignored).
func (d *Downloader) DownloadAudio(ctx context.Context, url, name string) (string, error) {
	if !IsValidURL(url) {
		return "", fmt.Errorf("invalid YouTube URL: %s", url)
	}
	if _, err := exec.LookPath("yt-dlp"); err != nil {
		return "", fmt.Errorf("yt-dlp not found (install it with: pip install yt-dlp): %w", err)
	}
	if err := os.MkdirAll(d.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads dir: %w", err)
	}

	template := filepath.Join(d.OutputDir, "%(title)s.%(ext)s")
	if name != "" {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		template = filepath.Join(d.OutputDir, stem+".%(ext)s")
	}

	slog.Info("downloading audio", "url", url)

	// 16 kHz mono matches what the speech models resample to anyway, and
	// keeps the file under the upload ceiling for long videos.
	cmd := exec.CommandContext(ctx, "yt-dlp",
		"-f", "bestaudio/best",
		"-x", "--audio-format", "mp3", "--audio-quality", "192K",
		"--postprocessor-args", "ffmpeg:-ar 16000 -ac 1 -b:a 128k",
		"-o", template,
		"--no-simulate", "--print", "after_move:filepath",
		url,
	)

	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("yt-dlp failed: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("run yt-dlp: %w", err)
	}

	audioPath := lastLine(string(out))
	if audioPath == "" {
		return "", fmt.Errorf("yt-dlp reported no output file")
	}
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("downloaded file missing: %w", err)
	}

	slog.Info("audio downloaded", "path", audioPath)
	return audioPath, nil
}

// CleanupOld removes downloaded .mp3 files older than maxAge from
// OutputDir and reports how many were deleted. A missing directory means
// nothing to clean.
func (d *Downloader) CleanupOld(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(d.OutputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read downloads dir: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".mp3") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(d.OutputDir, e.Name())); err != nil {
				return removed, fmt.Errorf("remove %s: %w", e.Name(), err)
			}
			slog.Debug("removed old download", "file", e.Name())
			removed++
		}
	}
	return removed, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
