package media

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akash518/notegenerator/internal/transcript"
)

// Info describes the audio stream of a media file.
type Info struct {
	Duration time.Duration
	Codec    string
}

// Available returns true if ffmpeg is on the PATH.
func Available() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

// Probe reads the duration and audio codec of a media file with ffprobe.
func Probe(ctx context.Context, path string) (Info, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return Info{}, fmt.Errorf("ffprobe not found: %w", err)
	}

	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name:format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return Info{}, fmt.Errorf("ffprobe JSON parse error: %w", err)
	}

	info := Info{Duration: parseProbeDuration(probe.Format.Duration)}
	if len(probe.Streams) > 0 {
		info.Codec = probe.Streams[0].CodecName
	}
	return info, nil
}

// parseProbeDuration converts ffprobe's decimal-seconds string. Missing or
// malformed durations come back as zero rather than an error; the callers
// only use the value for logging.
func parseProbeDuration(s string) time.Duration {
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil || sec < 0 {
		return 0
	}
	return time.Duration(sec * float64(time.Second))
}

// ExtractAudio copies the audio stream out of a video container into an
// .m4a file in the temp directory and returns its path. The caller removes
// the file when done.
func ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	outputPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s_%s.m4a", base, uuid.NewString()[:8]))

	slog.Info("extracting audio", "input", filepath.Base(videoPath), "output", filepath.Base(outputPath))

	cmd := exec.CommandContext(ctx,
		"ffmpeg", "-i", videoPath,
		"-vn", "-c:a", "copy", "-y",
		outputPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio failed: %w\n%s", err, string(out))
	}
	return outputPath, nil
}

// IsVideoExtension returns true for common video file extensions.
func IsVideoExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mkv", ".mov", ".avi", ".flv", ".webm":
		return true
	}
	return false
}

// LogMediaInfo logs the size, duration, and codec of the input file. A
// probe failure only costs the duration and codec attributes.
func LogMediaInfo(ctx context.Context, path string) {
	stat, err := os.Stat(path)
	if err != nil {
		slog.Warn("cannot stat file", "path", path, "err", err)
		return
	}

	attrs := []any{"size_mb", fmt.Sprintf("%.2f", float64(stat.Size())/(1024*1024))}
	if info, err := Probe(ctx, path); err == nil {
		attrs = append(attrs,
			"duration", transcript.FormatClock(info.Duration.Seconds()),
			"codec", info.Codec)
	}
	slog.Info("media info", attrs...)
}
