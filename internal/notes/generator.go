// Package notes turns raw transcription text into formatted notes through
// a chat-completions model, guided by one of the embedded templates.
package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.openai.com/v1"

// ErrEmptyTranscription is returned when there is no text to format.
var ErrEmptyTranscription = errors.New("transcription text is empty")

// Generator formats transcriptions into notes.
type Generator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGenerator builds a note generator for the given chat model.
func NewGenerator(apiKey, model string) *Generator {
	return &Generator{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultAPIBase,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate formats the transcription according to the template, with
// optional extra instructions appended to the user message.
func (g *Generator) Generate(ctx context.Context, transcription, template, instructions string) (string, error) {
	if strings.TrimSpace(transcription) == "" {
		return "", ErrEmptyTranscription
	}

	user := "Please format the following transcription according to the instructions provided.\n\nTRANSCRIPTION:\n" + transcription + "\n"
	if instructions != "" {
		user += "\nADDITIONAL INSTRUCTIONS:\n" + instructions
	}

	// Low temperature keeps the formatting consistent across runs.
	payload, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: template},
			{Role: "user", Content: user},
		},
		Temperature: 0.3,
		MaxTokens:   maxCompletionTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("model returned empty response")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
