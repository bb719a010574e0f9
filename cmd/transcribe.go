package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/akash518/notegenerator/internal/config"
	"github.com/akash518/notegenerator/internal/media"
	"github.com/akash518/notegenerator/internal/transcribe"
	"github.com/akash518/notegenerator/internal/transcript"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <input-file>...",
	Short: "Transcribe audio files to text or subtitles",
	Long: `Transcribe one or more audio files. The output style is plain text,
timestamped text, or SRT/VTT subtitles. Multiple inputs are processed
concurrently with a bounded worker count and an API rate limit.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranscribe,
}

var (
	language    string
	output      string
	styleFlag   string
	backendName string
	model       string
	prompt      string
	temperature float64
	maxSizeMB   int
	wrapLen     int

	maxConcurrent int
	rateLimit     int
)

func init() {
	transcribeCmd.Flags().StringVarP(&language, "language", "l", "auto", "ISO-639-1 language code, or auto")
	transcribeCmd.Flags().StringVarP(&output, "output", "o", "", "output path (single input only; default: <input>.<style-ext>)")
	transcribeCmd.Flags().StringVar(&styleFlag, "style", "plain", "output style: plain, timestamped, srt, vtt")
	transcribeCmd.Flags().StringVar(&backendName, "backend", "cloud", "recognition backend: cloud, local")
	transcribeCmd.Flags().StringVar(&model, "model", "", "model override (cloud: whisper-1, gpt-4o-transcribe; local: tiny..large)")
	transcribeCmd.Flags().StringVar(&prompt, "prompt", "", "priming prompt, must match the audio language")
	transcribeCmd.Flags().Float64Var(&temperature, "temperature", 0, "sampling temperature in [0,1]")
	transcribeCmd.Flags().IntVar(&maxSizeMB, "max-size-mb", 0, "override the backend profile's size ceiling")
	transcribeCmd.Flags().IntVar(&wrapLen, "wrap", 0, "wrap subtitle cue text at this many characters (renders locally)")
	transcribeCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", 3, "max concurrent transcriptions in batch mode")
	transcribeCmd.Flags().IntVar(&rateLimit, "rate-limit", 30, "API requests per minute in batch mode")

	rootCmd.AddCommand(transcribeCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	style, err := transcript.ParseStyle(styleFlag)
	if err != nil {
		return err
	}

	backend, err := buildBackend(cfg, backendName, model, maxSizeMB)
	if err != nil {
		return err
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tr := transcribe.New(backend)

	if len(args) == 1 {
		if cloud, ok := backend.(*transcribe.CloudBackend); ok {
			cloud.Progress = func(read, total int64) {
				pct := 0.0
				if total > 0 {
					pct = math.Min(float64(read)/float64(total)*100, 100)
				}
				slog.Debug("upload progress", "percent", fmt.Sprintf("%.1f%%", pct))
			}
		}
		return transcribeOne(ctx, tr, args[0], output, style)
	}

	if output != "" {
		return fmt.Errorf("--output applies to a single input; remove it for batch mode")
	}

	slog.Info("starting batch transcription",
		"files", len(args),
		"max_concurrent", maxConcurrent,
		"rate_limit_rpm", rateLimit)

	// Rate limiter: tokens per second = RPM / 60.
	limiter := rate.NewLimiter(rate.Limit(float64(rateLimit)/60.0), 1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, input := range args {
		i, input := i, input
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}
			slog.Info("processing file", "file", fmt.Sprintf("%d/%d", i+1, len(args)), "input", filepath.Base(input))
			if err := transcribeOne(gctx, tr, input, "", style); err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(input), err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}

func transcribeOne(ctx context.Context, tr *transcribe.Transcriber, input, outPath string, style transcript.Style) error {
	absPath, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	workingPath := absPath
	ext := filepath.Ext(absPath)
	profile := tr.Backend().Profile()

	// Video containers the profile rejects get their audio track pulled
	// out first, when ffmpeg is around to do it.
	if media.IsVideoExtension(ext) && !profile.Accepts(ext) && media.Available() {
		tempAudio, err := media.ExtractAudio(ctx, absPath)
		if err != nil {
			return fmt.Errorf("extract audio: %w", err)
		}
		defer os.Remove(tempAudio)
		workingPath = tempAudio
	}

	media.LogMediaInfo(ctx, workingPath)

	if outPath == "" {
		outPath = strings.TrimSuffix(absPath, ext) + style.Ext()
	}

	opts := transcribe.Options{
		Language:      language,
		Prompt:        prompt,
		Temperature:   temperature,
		MaxLineLength: wrapLen,
	}

	saved, err := tr.AndSave(ctx, workingPath, outPath, style, opts)
	if err != nil {
		return err
	}

	slog.Info("transcript saved", "path", saved)
	return nil
}
