package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/akash518/notegenerator/internal/config"
	"github.com/akash518/notegenerator/internal/download"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <youtube-url>",
	Short: "Download YouTube audio for transcription",
	Long: `Download the audio track of a YouTube video as 16 kHz mono MP3,
ready to feed into the transcribe command.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

var (
	downloadDir     string
	downloadName    string
	downloadCleanup time.Duration
)

func init() {
	downloadCmd.Flags().StringVar(&downloadDir, "dir", "", "output directory (default: the configured downloads dir)")
	downloadCmd.Flags().StringVar(&downloadName, "name", "", "file name override (default: the video title)")
	downloadCmd.Flags().DurationVar(&downloadCleanup, "cleanup-older-than", 0, "also delete downloads older than this age, e.g. 168h (0 disables)")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	dir := downloadDir
	if dir == "" {
		dir = cfg.DownloadsDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := &download.Downloader{OutputDir: dir}
	path, err := d.DownloadAudio(ctx, args[0], downloadName)
	if err != nil {
		return err
	}

	if downloadCleanup > 0 {
		n, err := d.CleanupOld(downloadCleanup)
		if err != nil {
			slog.Warn("cleanup failed", "err", err)
		} else if n > 0 {
			slog.Info("removed old downloads", "count", n)
		}
	}

	fmt.Println(path)
	return nil
}
