package fluency

import (
	"errors"
	"strings"
)

// ErrEmptyTranscript is returned when the time-aligned transcript has no
// tokens, which leaves the utterance score undefined.
var ErrEmptyTranscript = errors.New("time-aligned transcript is empty")

// Score normalises signal counts by the token count of text2 into a
// 0-100 difficulty score. The result is not clamped and may exceed 100.
func Score(signals Signals, text2 string) (float64, error) {
	wordCount := len(strings.Fields(text2))
	if wordCount == 0 {
		return 0, ErrEmptyTranscript
	}
	return float64(signals.Total()) / float64(wordCount) * 100, nil
}
