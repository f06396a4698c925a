package stt

import (
	"testing"

	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
)

func TestFormatAnnotation(t *testing.T) {
	words := []fluency.TimestampedWord{
		{Text: "go", Start: 0, End: 0.2},
		{Text: "sssstore", Start: 1.2, End: 1.6},
	}
	got := FormatAnnotation(words)
	want := "go: 0.00s - 0.20s | sssstore: 1.20s - 1.60s"
	if got != want {
		t.Fatalf("annotation=%q, want %q", got, want)
	}

	if parsed := fluency.ParseTimestamps(got); len(parsed.Words) != 2 || parsed.Dropped != 0 {
		t.Fatalf("annotation not readable by parser: %+v", parsed)
	}
}

func TestNewAlignedTranscription(t *testing.T) {
	got := NewAlignedTranscription([]fluency.TimestampedWord{
		{Text: " go", Start: 0, End: 0.2},
		{Text: " ", Start: 0.2, End: 0.25},
		{Text: " go", Start: 0.25, End: 0.45},
	}, 1.5)

	if got.Text != "go go" {
		t.Errorf("text=%q, want %q", got.Text, "go go")
	}
	if len(got.Words) != 2 {
		t.Fatalf("words=%d, want 2", len(got.Words))
	}
	if got.Annotation != "go: 0.00s - 0.20s | go: 0.25s - 0.45s" {
		t.Errorf("annotation=%q", got.Annotation)
	}
	if got.Duration != 1.5 {
		t.Errorf("duration=%v, want 1.5", got.Duration)
	}
}
