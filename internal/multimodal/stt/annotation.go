package stt

import (
	"fmt"
	"strings"

	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
)

// FormatAnnotation renders words the way the aligned decoder reports them,
// with two-decimal offsets joined by " | ".
func FormatAnnotation(words []fluency.TimestampedWord) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, fmt.Sprintf("%s: %.2fs - %.2fs", w.Text, w.Start, w.End))
	}
	return strings.Join(parts, fluency.AnnotationSeparator)
}

// NewAlignedTranscription normalises raw words, dropping blanks, and derives
// the plain text and annotation from them.
func NewAlignedTranscription(words []fluency.TimestampedWord, duration float64) *AlignedTranscription {
	clean := make([]fluency.TimestampedWord, 0, len(words))
	texts := make([]string, 0, len(words))
	for _, w := range words {
		w.Text = strings.Join(strings.Fields(w.Text), "")
		if w.Text == "" {
			continue
		}
		clean = append(clean, w)
		texts = append(texts, w.Text)
	}

	return &AlignedTranscription{
		Text:       strings.Join(texts, " "),
		Words:      clean,
		Annotation: FormatAnnotation(clean),
		Duration:   duration,
	}
}
