package stt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newFakeWhisper(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := map[string]any{
			"task":     "transcribe",
			"language": "english",
			"duration": 1.6,
			"text":     "go go to the store",
		}
		if len(r.MultipartForm.Value["timestamp_granularities[]"]) > 0 {
			resp["words"] = []map[string]any{
				{"word": "go", "start": 0.0, "end": 0.2},
				{"word": "go", "start": 0.25, "end": 0.45},
				{"word": "store", "start": 1.2, "end": 1.6},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "utterance.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o600); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestOpenAISTTTranscribe(t *testing.T) {
	srv := newFakeWhisper(t)
	defer srv.Close()

	p := NewOpenAISTT(OpenAISTTConfig{APIKey: "test", BaseURL: srv.URL})
	got, err := p.Transcribe(context.Background(), TranscriptionRequest{FilePath: writeTempAudio(t)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "go go to the store" || got.Duration != 1.6 {
		t.Fatalf("got %+v", got)
	}
}

func TestOpenAISTTTranscribeAligned(t *testing.T) {
	srv := newFakeWhisper(t)
	defer srv.Close()

	p := NewLocalSTT(LocalSTTConfig{BaseURL: srv.URL})
	got, err := p.TranscribeAligned(context.Background(), TranscriptionRequest{FilePath: writeTempAudio(t)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "go go store" {
		t.Errorf("text=%q", got.Text)
	}
	want := "go: 0.00s - 0.20s | go: 0.25s - 0.45s | store: 1.20s - 1.60s"
	if got.Annotation != want {
		t.Errorf("annotation=%q, want %q", got.Annotation, want)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	if got := New("local", OpenAISTTConfig{}, LocalSTTConfig{}).Name(); got != "local-whisper" {
		t.Errorf("name=%q, want local-whisper", got)
	}
	if got := New("openai", OpenAISTTConfig{}, LocalSTTConfig{}).Name(); got != "openai-whisper" {
		t.Errorf("name=%q, want openai-whisper", got)
	}
}
