package fluency

import (
	"regexp"
	"strconv"
	"strings"
)

// AnnotationSeparator joins word segments in an aligned transcript annotation.
const AnnotationSeparator = " | "

var segmentPattern = regexp.MustCompile(`^(\S+): (\d+(?:\.\d+)?)s - (\d+(?:\.\d+)?)s$`)

// TimestampedWord is one word of a time-aligned transcript, offsets in seconds.
type TimestampedWord struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// ParseResult holds the words recovered from an annotation and how many
// non-blank segments could not be parsed.
type ParseResult struct {
	Words   []TimestampedWord `json:"words"`
	Dropped int               `json:"dropped"`
}

// ParseTimestamps decodes an annotation of the form
// "go: 0.00s - 0.20s | to: 0.46s - 0.60s" into words in appearance order.
// Malformed segments are skipped and counted; it never fails.
func ParseTimestamps(annotation string) ParseResult {
	res := ParseResult{Words: []TimestampedWord{}}

	for _, seg := range strings.Split(annotation, strings.TrimSpace(AnnotationSeparator)) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		w, ok := parseSegment(seg)
		if !ok {
			res.Dropped++
			continue
		}
		res.Words = append(res.Words, w)
	}

	return res
}

func parseSegment(seg string) (TimestampedWord, bool) {
	m := segmentPattern.FindStringSubmatch(seg)
	if m == nil {
		return TimestampedWord{}, false
	}

	start, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return TimestampedWord{}, false
	}
	end, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return TimestampedWord{}, false
	}
	// an end before its start cannot come from the aligner
	if end < start {
		return TimestampedWord{}, false
	}

	return TimestampedWord{Text: m[1], Start: start, End: end}, true
}
