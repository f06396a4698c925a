package stt

import (
	"context"

	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
)

// TranscriptionRequest holds the parameters for audio transcription.
type TranscriptionRequest struct {
	FilePath string `json:"file_path"`
	Language string `json:"language,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
}

// TranscriptionResponse holds the transcription result.
type TranscriptionResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// AlignedTranscription is a transcript whose words carry timing offsets.
// Annotation is the words rendered in "word: 0.00s - 0.20s | ..." form.
type AlignedTranscription struct {
	Text       string                    `json:"text"`
	Words      []fluency.TimestampedWord `json:"words"`
	Annotation string                    `json:"annotation"`
	Duration   float64                   `json:"duration"`
}

// STTProvider is the interface for speech-to-text backends.
type STTProvider interface {
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error)
	Name() string
}

// AlignedTranscriber is a backend that returns word-level timestamps.
type AlignedTranscriber interface {
	TranscribeAligned(ctx context.Context, req TranscriptionRequest) (*AlignedTranscription, error)
	Name() string
}

// Backend serves both the plain and the aligned transcription.
type Backend interface {
	STTProvider
	AlignedTranscriber
}
