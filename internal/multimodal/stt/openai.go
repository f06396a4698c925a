package stt

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
)

// OpenAISTTConfig holds configuration for the OpenAI STT backend.
type OpenAISTTConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.openai.com/v1"
	Model   string // default: "whisper-1"
}

// OpenAISTT transcribes audio using OpenAI's Whisper API (or a compatible endpoint).
type OpenAISTT struct {
	cfg    OpenAISTTConfig
	client *openai.Client
}

// NewOpenAISTT creates an OpenAISTT with sensible defaults applied.
func NewOpenAISTT(cfg OpenAISTTConfig) *OpenAISTT {
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAISTT{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (o *OpenAISTT) Name() string { return "openai-whisper" }

// Transcribe returns the plain transcript of the audio file.
func (o *OpenAISTT) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	resp, err := o.client.CreateTranscription(ctx, o.audioRequest(req, nil))
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}

	return &TranscriptionResponse{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}

// TranscribeAligned asks for word-level timestamps and returns them with
// their annotation form.
func (o *OpenAISTT) TranscribeAligned(ctx context.Context, req TranscriptionRequest) (*AlignedTranscription, error) {
	granularities := []openai.TranscriptionTimestampGranularity{openai.TranscriptionTimestampGranularityWord}
	resp, err := o.client.CreateTranscription(ctx, o.audioRequest(req, granularities))
	if err != nil {
		return nil, fmt.Errorf("aligned transcription request: %w", err)
	}

	words := make([]fluency.TimestampedWord, 0, len(resp.Words))
	for _, w := range resp.Words {
		words = append(words, fluency.TimestampedWord{Text: w.Word, Start: w.Start, End: w.End})
	}
	return NewAlignedTranscription(words, resp.Duration), nil
}

func (o *OpenAISTT) audioRequest(req TranscriptionRequest, granularities []openai.TranscriptionTimestampGranularity) openai.AudioRequest {
	return openai.AudioRequest{
		Model:                  o.cfg.Model,
		FilePath:               req.FilePath,
		Prompt:                 req.Prompt,
		Language:               req.Language,
		Format:                 openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: granularities,
	}
}
