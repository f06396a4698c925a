package fluency

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Utterance is one scoring request: two independent transcriptions of the
// same audio plus the aligned backend's timestamp annotation.
type Utterance struct {
	Text1      string `json:"text1"`
	Text2      string `json:"text2"`
	Annotation string `json:"timestamps"`
}

// Evaluation is the outcome of scoring one utterance against a session.
type Evaluation struct {
	UtteranceScore  float64           `json:"utterance_score"`
	RawScore        float64           `json:"raw_score"`
	SessionScore    float64           `json:"session_score"`
	Progress        float64           `json:"progress"`
	Signals         Signals           `json:"signals"`
	WordCount       int               `json:"word_count"`
	Timestamps      []TimestampedWord `json:"timestamps"`
	TimestampCount  int               `json:"timestamp_count"`
	DroppedSegments int               `json:"dropped_segments"`
}

// Evaluator runs the scoring pipeline with a configured Detector.
type Evaluator struct {
	detector Detector
}

// NewEvaluator returns an Evaluator using d.
func NewEvaluator(d Detector) *Evaluator {
	return &Evaluator{detector: d}
}

// Evaluate scores u with default detector settings and folds it into session.
func Evaluate(u Utterance, session *SessionScore) (*Evaluation, error) {
	return NewEvaluator(NewDetector(DefaultPauseThreshold, DefaultElongationRun)).Evaluate(u, session)
}

// Evaluate parses the annotation, detects signals, scores the utterance and
// observes the rounded score on session. If scoring fails the session is
// left untouched.
func (e *Evaluator) Evaluate(u Utterance, session *SessionScore) (*Evaluation, error) {
	if session == nil {
		return nil, errors.New("evaluate utterance: nil session")
	}

	parsed := ParseTimestamps(u.Annotation)
	signals := e.detector.Detect(u.Text1, u.Text2, parsed.Words)

	raw, err := Score(signals, u.Text2)
	if err != nil {
		return nil, fmt.Errorf("score utterance: %w", err)
	}

	// scores are whole numbers before they reach the session, rounding half to even
	rounded := math.RoundToEven(raw)
	current := session.Observe(rounded)

	return &Evaluation{
		UtteranceScore:  rounded,
		RawScore:        raw,
		SessionScore:    current,
		Progress:        session.Progress(),
		Signals:         signals,
		WordCount:       len(strings.Fields(u.Text2)),
		Timestamps:      parsed.Words,
		TimestampCount:  len(parsed.Words),
		DroppedSegments: parsed.Dropped,
	}, nil
}
