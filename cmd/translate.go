package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/akash518/notegenerator/internal/config"
	"github.com/akash518/notegenerator/internal/transcribe"

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate <input-file>",
	Short: "Translate audio into English text",
	Long: `Translate source-language audio into English text. The translation
endpoint always targets English; there is no language option.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

var (
	translateOutput      string
	translateBackend     string
	translateModel       string
	translatePrompt      string
	translateTemperature float64
)

func init() {
	translateCmd.Flags().StringVarP(&translateOutput, "output", "o", "", "write the translation to this file instead of stdout")
	translateCmd.Flags().StringVar(&translateBackend, "backend", "cloud", "recognition backend: cloud, local")
	translateCmd.Flags().StringVar(&translateModel, "model", "", "model override")
	translateCmd.Flags().StringVar(&translatePrompt, "prompt", "", "priming prompt")
	translateCmd.Flags().Float64Var(&translateTemperature, "temperature", 0, "sampling temperature in [0,1]")

	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	backend, err := buildBackend(cfg, translateBackend, translateModel, 0)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	absPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	text, err := transcribe.New(backend).Translate(ctx, absPath, transcribe.Options{
		Prompt:      translatePrompt,
		Temperature: translateTemperature,
	})
	if err != nil {
		return err
	}

	if translateOutput == "" {
		fmt.Println(text)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(translateOutput), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(translateOutput, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write translation: %w", err)
	}
	slog.Info("translation saved", "path", translateOutput)
	return nil
}
