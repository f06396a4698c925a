package stt

import "context"

// LocalSTTConfig holds configuration for the local whisper.cpp STT backend.
type LocalSTTConfig struct {
	BaseURL string // default: "http://localhost:8178/v1"
	Model   string
}

// LocalSTT wraps OpenAISTT pointing at a local OpenAI-compatible whisper server.
// Start one with: ./server -m models/ggml-base.en.bin --port 8178
type LocalSTT struct {
	*OpenAISTT
}

// NewLocalSTT creates a LocalSTT backed by a local whisper HTTP server.
func NewLocalSTT(cfg LocalSTTConfig) *LocalSTT {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8178/v1"
	}
	return &LocalSTT{
		OpenAISTT: NewOpenAISTT(OpenAISTTConfig{
			BaseURL: baseURL,
			Model:   cfg.Model,
			// No API key needed for local server
		}),
	}
}

func (l *LocalSTT) Name() string { return "local-whisper" }

func (l *LocalSTT) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	return l.OpenAISTT.Transcribe(ctx, req)
}

func (l *LocalSTT) TranscribeAligned(ctx context.Context, req TranscriptionRequest) (*AlignedTranscription, error) {
	return l.OpenAISTT.TranscribeAligned(ctx, req)
}

// New picks a backend by name, "openai" or "local".
func New(backend string, openaiCfg OpenAISTTConfig, localCfg LocalSTTConfig) Backend {
	if backend == "local" {
		return NewLocalSTT(localCfg)
	}
	return NewOpenAISTT(openaiCfg)
}
