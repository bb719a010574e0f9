package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/akash518/notegenerator/internal/transcript"
)

const (
	defaultAPIBase = "https://api.openai.com/v1"
	uploadTimeout  = 30 * time.Minute

	// ModelWhisper1 is the classic cloud transcription model.
	ModelWhisper1 = "whisper-1"
)

// ProgressFunc is called with (bytesRead, totalBytes) during upload.
type ProgressFunc func(bytesRead, totalBytes int64)

// progressReader wraps an io.Reader and reports progress.
type progressReader struct {
	reader   io.Reader
	total    int64
	read     int64
	callback ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.read += int64(n)
	if pr.callback != nil {
		pr.callback(pr.read, pr.total)
	}
	return n, err
}

// Close propagates the transport's body close to the underlying pipe
// reader. Without it a server that answers before draining the upload
// leaves the pipe-writer goroutine blocked forever.
func (pr *progressReader) Close() error {
	if c, ok := pr.reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// CloudBackend transcribes and translates audio through the OpenAI audio
// API. It is safe for concurrent use.
type CloudBackend struct {
	apiKey  string
	model   string
	profile Profile
	baseURL string
	client  *http.Client

	// Progress, when set, receives upload progress callbacks.
	Progress ProgressFunc
}

// NewCloudBackend builds a cloud backend for the given model. An empty
// model selects whisper-1.
func NewCloudBackend(apiKey, model string, profile Profile) *CloudBackend {
	if model == "" {
		model = ModelWhisper1
	}
	return &CloudBackend{
		apiKey:  apiKey,
		model:   model,
		profile: profile,
		baseURL: defaultAPIBase,
		client:  &http.Client{Timeout: uploadTimeout},
	}
}

func (c *CloudBackend) Name() string { return "cloud" }

func (c *CloudBackend) Profile() Profile { return c.profile }

// Recognize uploads the asset to the transcriptions endpoint.
func (c *CloudBackend) Recognize(ctx context.Context, asset AudioAsset, req Request) (*transcript.Result, error) {
	return c.call(ctx, c.baseURL+"/audio/transcriptions", asset, req, true)
}

// Translate uploads the asset to the translations endpoint, which produces
// English text regardless of the source language. The language option is
// not forwarded; the endpoint does not accept one.
func (c *CloudBackend) Translate(ctx context.Context, asset AudioAsset, req Request) (*transcript.Result, error) {
	return c.call(ctx, c.baseURL+"/audio/translations", asset, req, false)
}

func (c *CloudBackend) call(ctx context.Context, url string, asset AudioAsset, req Request, withLanguage bool) (*transcript.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	format := req.Format
	if format == "" {
		format = FormatJSON
	}

	f, err := os.Open(asset.Path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	// Build the multipart form body through a pipe so the file streams
	// instead of buffering in memory.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		err := func() error {
			if err := mw.WriteField("model", c.model); err != nil {
				return err
			}
			if err := mw.WriteField("response_format", string(format)); err != nil {
				return err
			}
			if err := mw.WriteField("temperature", strconv.FormatFloat(req.Temperature, 'f', -1, 64)); err != nil {
				return err
			}
			if withLanguage && req.Language != "" && !strings.EqualFold(req.Language, "auto") {
				if err := mw.WriteField("language", req.Language); err != nil {
					return err
				}
			}
			if req.Prompt != "" {
				if err := mw.WriteField("prompt", req.Prompt); err != nil {
					return err
				}
			}

			part, err := mw.CreateFormFile("file", asset.Base())
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, f); err != nil {
				return err
			}
			return mw.Close()
		}()
		if err != nil {
			pw.CloseWithError(err)
		} else {
			pw.Close()
		}
		errCh <- err
	}()

	// Estimate total size: file size + ~1KB form overhead.
	body := &progressReader{
		reader:   pr,
		total:    asset.Size + 1024,
		callback: c.Progress,
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	// The server may answer before it has drained the upload; the
	// transport then closes the body, which surfaces here as ErrClosedPipe
	// rather than a write failure.
	if writeErr := <-errCh; writeErr != nil && !errors.Is(writeErr, io.ErrClosedPipe) {
		return nil, fmt.Errorf("multipart write error: %w", writeErr)
	}

	return decodeResponse(resp.Body, format)
}

// verboseResponse mirrors the verbose_json response shape. Fields the API
// omits decode to their zero values, which is exactly the lenient
// normalization the segment model requires.
type verboseResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func decodeResponse(r io.Reader, format ResponseFormat) (*transcript.Result, error) {
	switch format {
	case FormatJSON:
		var out struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r).Decode(&out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return &transcript.Result{Text: out.Text}, nil

	case FormatVerboseJSON:
		var out verboseResponse
		if err := json.NewDecoder(r).Decode(&out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		res := &transcript.Result{Text: out.Text, Language: out.Language}
		for _, s := range out.Segments {
			res.Segments = append(res.Segments, transcript.Segment{
				Start: s.Start,
				End:   s.End,
				Text:  strings.TrimSpace(s.Text),
			})
		}
		return res, nil

	default:
		// text, srt, vtt: the body is the payload itself.
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if format == FormatSRT || format == FormatVTT {
			return &transcript.Result{Native: string(b)}, nil
		}
		return &transcript.Result{Text: string(b)}, nil
	}
}
