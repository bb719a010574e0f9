package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/akash518/notegenerator/internal/transcript"
)

// LocalBackend runs the whisper CLI as a subprocess, trading API cost for
// local compute. The CLI writes its output file into a temp directory which
// is removed after parsing.
type LocalBackend struct {
	model   string
	binary  string
	profile Profile
}

// NewLocalBackend builds a local backend for the given model size
// (tiny, base, small, medium, large). An empty model selects base.
func NewLocalBackend(model string, profile Profile) *LocalBackend {
	if model == "" {
		model = "base"
	}
	return &LocalBackend{model: model, binary: "whisper", profile: profile}
}

func (b *LocalBackend) Name() string { return "local" }

func (b *LocalBackend) Profile() Profile { return b.profile }

// Available reports whether the whisper CLI is on the PATH.
func (b *LocalBackend) Available() bool {
	_, err := exec.LookPath(b.binary)
	return err == nil
}

func (b *LocalBackend) Recognize(ctx context.Context, asset AudioAsset, req Request) (*transcript.Result, error) {
	return b.run(ctx, asset, req, "transcribe")
}

// Translate runs the model's translate task, which always targets English.
func (b *LocalBackend) Translate(ctx context.Context, asset AudioAsset, req Request) (*transcript.Result, error) {
	req.Language = ""
	return b.run(ctx, asset, req, "translate")
}

// whisperOutput mirrors the JSON file the whisper CLI emits.
type whisperOutput struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (b *LocalBackend) run(ctx context.Context, asset AudioAsset, req Request, task string) (*transcript.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(b.binary); err != nil {
		return nil, fmt.Errorf("whisper CLI not found (install it with: pip install openai-whisper): %w", err)
	}

	outFormat := "json"
	switch req.Format {
	case FormatSRT:
		outFormat = "srt"
	case FormatVTT:
		outFormat = "vtt"
	}

	outDir, err := os.MkdirTemp("", "notegen-whisper-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	args := []string{
		asset.Path,
		"--model", b.model,
		"--task", task,
		"--output_dir", outDir,
		"--output_format", outFormat,
		"--temperature", strconv.FormatFloat(req.Temperature, 'f', -1, 64),
		"--verbose", "False",
	}
	if req.Language != "" && !strings.EqualFold(req.Language, "auto") {
		args = append(args, "--language", req.Language)
	}
	if req.Prompt != "" {
		args = append(args, "--initial_prompt", req.Prompt)
	}

	cmd := exec.CommandContext(ctx, b.binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("whisper run failed: %w\n%s", err, string(out))
	}

	stem := strings.TrimSuffix(asset.Base(), asset.Ext)
	outPath := filepath.Join(outDir, stem+"."+outFormat)
	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	if outFormat != "json" {
		return &transcript.Result{Native: string(data)}, nil
	}

	var parsed whisperOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	res := &transcript.Result{Text: parsed.Text, Language: parsed.Language}
	for _, s := range parsed.Segments {
		res.Segments = append(res.Segments, transcript.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return res, nil
}
