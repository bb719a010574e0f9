package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/akash518/notegenerator/internal/config"
	"github.com/akash518/notegenerator/internal/notes"
	"github.com/akash518/notegenerator/internal/transcribe"

	"github.com/spf13/cobra"
)

var notesCmd = &cobra.Command{
	Use:   "notes <audio-or-text-file>",
	Short: "Generate formatted notes from a recording or transcript",
	Long: `Generate structured notes from an input file using a note template.
Audio inputs are transcribed first; text inputs are used as-is.
Use --list-templates to see the available templates.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNotes,
}

var (
	notesTemplate     string
	notesInstructions string
	notesOutput       string
	notesBackend      string
	notesModel        string
	notesLanguage     string
	listTemplates     bool
)

func init() {
	notesCmd.Flags().StringVarP(&notesTemplate, "template", "t", "summary", "note template id")
	notesCmd.Flags().StringVar(&notesInstructions, "instructions", "", "additional formatting instructions")
	notesCmd.Flags().StringVarP(&notesOutput, "output", "o", "", "output path (default: <notes-dir>/<input>_<template>.md)")
	notesCmd.Flags().StringVar(&notesBackend, "backend", "cloud", "recognition backend for audio inputs: cloud, local")
	notesCmd.Flags().StringVar(&notesModel, "model", "", "chat model override for note generation")
	notesCmd.Flags().StringVarP(&notesLanguage, "language", "l", "auto", "audio language code, or auto")
	notesCmd.Flags().BoolVar(&listTemplates, "list-templates", false, "list available templates and exit")

	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) error {
	if listTemplates {
		for _, t := range notes.List() {
			fmt.Printf("%s: %s\n    %s\n    Best for: %s\n", t.ID, t.Name, t.Description, t.BestFor)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("an input file is required (or --list-templates)")
	}

	cfg := config.Load()
	if cfg.APIKey == "" {
		return fmt.Errorf("OpenAI API key not set; add OPENAI_API_KEY to your environment or a .env file")
	}

	template, err := notes.Load(notesTemplate)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	absPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	text, err := inputText(ctx, cfg, absPath)
	if err != nil {
		return err
	}

	model := notesModel
	if model == "" {
		model = cfg.NotesModel
	}

	if est := notes.EstimateCost(text, model); est.Known {
		slog.Info("estimated cost",
			"input_tokens", est.InputTokens,
			"usd", fmt.Sprintf("%.4f", est.USD))
	}

	slog.Info("generating notes", "template", notesTemplate, "model", model)
	formatted, err := notes.NewGenerator(cfg.APIKey, model).Generate(ctx, text, template, notesInstructions)
	if err != nil {
		return err
	}

	out := notesOutput
	if out == "" {
		stem := strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
		out = filepath.Join(cfg.NotesDir, fmt.Sprintf("%s_%s.md", stem, notesTemplate))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("create notes dir: %w", err)
	}
	if err := os.WriteFile(out, []byte(formatted), 0o644); err != nil {
		return fmt.Errorf("write notes: %w", err)
	}

	slog.Info("notes saved", "path", out)
	return nil
}

// inputText transcribes audio inputs and reads text inputs directly. The
// input counts as audio when the chosen backend's profile accepts its
// extension.
func inputText(ctx context.Context, cfg *config.Config, path string) (string, error) {
	backend, err := buildBackend(cfg, notesBackend, "", 0)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(path)
	if backend.Profile().Accepts(ext) {
		slog.Info("transcribing audio input", "input", filepath.Base(path))
		return transcribe.New(backend).ToText(ctx, path, transcribe.Options{Language: notesLanguage})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}
