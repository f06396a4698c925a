package fluency

import "strings"

const (
	// DefaultPauseThreshold is the silence, in seconds, between two words
	// above which a pause is counted.
	DefaultPauseThreshold = 0.2
	// DefaultElongationRun is the number of identical consecutive characters
	// that marks a token as elongated.
	DefaultElongationRun = 3
)

// Signals are the disfluency counts found in one utterance.
type Signals struct {
	Repetitions int `json:"repetitions"`
	Elongations int `json:"elongations"`
	Pauses      int `json:"pauses"`
}

// Total returns the sum of all signal counts.
func (s Signals) Total() int {
	return s.Repetitions + s.Elongations + s.Pauses
}

// Detector scans transcripts for repetitions, elongations and pauses.
type Detector struct {
	PauseThreshold float64
	ElongationRun  int
}

// NewDetector returns a Detector, falling back to defaults for non-positive values.
func NewDetector(pauseThreshold float64, elongationRun int) Detector {
	if pauseThreshold <= 0 {
		pauseThreshold = DefaultPauseThreshold
	}
	if elongationRun <= 1 {
		elongationRun = DefaultElongationRun
	}
	return Detector{PauseThreshold: pauseThreshold, ElongationRun: elongationRun}
}

// Detect runs a default Detector.
func Detect(text1, text2 string, words []TimestampedWord) Signals {
	return NewDetector(DefaultPauseThreshold, DefaultElongationRun).Detect(text1, text2, words)
}

// Detect counts signals. Repetitions and elongations come from text2 only;
// text1 is accepted for callers that carry both transcripts but is not read.
func (d Detector) Detect(_, text2 string, words []TimestampedWord) Signals {
	tokens := strings.Fields(text2)

	return Signals{
		Repetitions: countRepetitions(tokens),
		Elongations: d.countElongations(tokens),
		Pauses:      d.countPauses(words),
	}
}

func countRepetitions(tokens []string) int {
	n := 0
	for i := 1; i < len(tokens); i++ {
		if tokens[i] == tokens[i-1] {
			n++
		}
	}
	return n
}

func (d Detector) countElongations(tokens []string) int {
	n := 0
	for _, tok := range tokens {
		if hasRun(tok, d.ElongationRun) {
			n++
		}
	}
	return n
}

// hasRun reports whether tok contains the same rune at least size times in a row.
func hasRun(tok string, size int) bool {
	var prev rune
	run := 0
	for _, r := range tok {
		if run > 0 && r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= size {
			return true
		}
	}
	return false
}

func (d Detector) countPauses(words []TimestampedWord) int {
	n := 0
	for i := 1; i < len(words); i++ {
		if words[i].Start-words[i-1].End > d.PauseThreshold {
			n++
		}
	}
	return n
}
