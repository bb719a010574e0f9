package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestBackend points a cloud backend at a stub server.
func newTestBackend(t *testing.T, handler http.HandlerFunc) (*CloudBackend, AudioAsset) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b := NewCloudBackend("test-key", ModelWhisper1, DefaultCloudProfile(ModelWhisper1))
	b.baseURL = srv.URL

	path := writeTempFile(t, "clip.mp3", 64)
	asset, err := Validate(path, b.Profile())
	if err != nil {
		t.Fatalf("validate fixture: %v", err)
	}
	return b, asset
}

func TestCloudBackend_RecognizeVerboseJSON(t *testing.T) {
	var gotPath, gotAuth string
	var form map[string][]string

	b, asset := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		form = r.MultipartForm.Value

		w.Header().Set("Content-Type", "application/json")
		// The second segment omits start and end.
		w.Write([]byte(`{
			"text": "Hello world.",
			"language": "english",
			"segments": [
				{"start": 0.0, "end": 1.2, "text": " Hello "},
				{"text": "world."}
			]
		}`))
	})

	res, err := b.Recognize(context.Background(), asset, Request{
		Language: "en",
		Format:   FormatVerboseJSON,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/audio/transcriptions" {
		t.Errorf("path %q, want /audio/transcriptions", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header %q", gotAuth)
	}
	if got := form["model"]; len(got) != 1 || got[0] != ModelWhisper1 {
		t.Errorf("model field %v", got)
	}
	if got := form["response_format"]; len(got) != 1 || got[0] != "verbose_json" {
		t.Errorf("response_format field %v", got)
	}
	if got := form["language"]; len(got) != 1 || got[0] != "en" {
		t.Errorf("language field %v", got)
	}

	if res.Text != "Hello world." || res.Language != "english" {
		t.Errorf("result %+v", res)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(res.Segments))
	}
	if res.Segments[0].Text != "Hello" {
		t.Errorf("segment text not trimmed: %q", res.Segments[0].Text)
	}
	if res.Segments[1].Start != 0 || res.Segments[1].End != 0 {
		t.Errorf("absent timestamps should decode to zero, got %+v", res.Segments[1])
	}
}

func TestCloudBackend_AutoLanguageOmitted(t *testing.T) {
	var form map[string][]string
	b, asset := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		form = r.MultipartForm.Value
		w.Write([]byte("hello"))
	})

	if _, err := b.Recognize(context.Background(), asset, Request{Language: "auto", Format: FormatText}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := form["language"]; ok {
		t.Errorf("language field sent for auto detection: %v", form["language"])
	}
}

func TestCloudBackend_TextBodyIsPayload(t *testing.T) {
	b, asset := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("raw transcription text\n"))
	})

	res, err := b.Recognize(context.Background(), asset, Request{Format: FormatText})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "raw transcription text\n" {
		t.Errorf("got %q", res.Text)
	}
	if res.Native != "" {
		t.Errorf("text response should not set Native")
	}
}

func TestCloudBackend_SRTBodyIsNative(t *testing.T) {
	const srt = "1\n00:00:00,000 --> 00:00:01,200\nHello\n\n"
	b, asset := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(srt))
	})

	res, err := b.Recognize(context.Background(), asset, Request{Format: FormatSRT})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Native != srt {
		t.Errorf("native payload %q, want %q", res.Native, srt)
	}
	if res.Text != "" {
		t.Errorf("subtitle response should not set Text")
	}
}

func TestCloudBackend_TranslateOmitsLanguage(t *testing.T) {
	var gotPath string
	var form map[string][]string
	b, asset := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		r.ParseMultipartForm(1 << 20)
		form = r.MultipartForm.Value
		w.Write([]byte("English text."))
	})

	res, err := b.Translate(context.Background(), asset, Request{Language: "es", Format: FormatText})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/audio/translations" {
		t.Errorf("path %q, want /audio/translations", gotPath)
	}
	if _, ok := form["language"]; ok {
		t.Errorf("translations endpoint must not receive a language field")
	}
	if res.Text != "English text." {
		t.Errorf("got %q", res.Text)
	}
}

func TestCloudBackend_ErrorStatus(t *testing.T) {
	b, asset := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid file"}}`, http.StatusBadRequest)
	})

	_, err := b.Recognize(context.Background(), asset, Request{Format: FormatText})
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Errorf("error %q does not name the status", err)
	}
	if !strings.Contains(err.Error(), "invalid file") {
		t.Errorf("error %q does not carry the response body", err)
	}
}

func TestCloudBackend_ReturnsWhenServerRejectsWithoutDraining(t *testing.T) {
	// Answer immediately without reading the request body, the way the
	// API rejects an oversize upload mid-stream.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"upload rejected"}}`))
	}))
	t.Cleanup(srv.Close)

	b := NewCloudBackend("test-key", ModelWhisper1, DefaultCloudProfile(ModelWhisper1))
	b.baseURL = srv.URL

	path := writeTempFile(t, "big.mp3", 8<<20)
	asset, err := Validate(path, b.Profile())
	if err != nil {
		t.Fatalf("validate fixture: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := b.Recognize(context.Background(), asset, Request{Format: FormatText})
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "status 400") {
			t.Fatalf("got %v, want the 400 status error", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Recognize did not return after the server rejected the upload")
	}
}

func TestCloudBackend_InvalidRequestRejectedLocally(t *testing.T) {
	called := false
	b, asset := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := b.Recognize(context.Background(), asset, Request{Temperature: 1.5})
	if err == nil {
		t.Fatal("expected error for out-of-range temperature")
	}
	if called {
		t.Error("request sent despite failing local validation")
	}
}
