package fluency

const (
	// historyWeight and observationWeight define the exponential moving
	// average applied once a session has its first score.
	historyWeight     = 0.8
	observationWeight = 0.2
)

// SessionState is the serialisable form of a SessionScore.
type SessionState struct {
	Initialized  bool    `json:"initialized"`
	Score        float64 `json:"score"`
	Observations int     `json:"observations"`
}

// SessionScore is the running difficulty score of one session. The zero
// value is uninitialized: no utterance has been scored yet.
//
// SessionScore is not safe for concurrent use; callers serialise updates
// per session.
type SessionScore struct {
	state SessionState
}

// RestoreSessionScore rebuilds a SessionScore from a stored state.
func RestoreSessionScore(s SessionState) *SessionScore {
	if !s.Initialized {
		return &SessionScore{}
	}
	return &SessionScore{state: s}
}

// Observe folds an utterance score into the session. The first observation
// becomes the score as is; later ones are blended 80/20 with history.
func (s *SessionScore) Observe(utterance float64) float64 {
	if !s.state.Initialized {
		s.state.Initialized = true
		s.state.Score = utterance
	} else {
		s.state.Score = s.state.Score*historyWeight + utterance*observationWeight
	}
	s.state.Observations++
	return s.state.Score
}

// Current returns the running score and whether any utterance has been observed.
func (s *SessionScore) Current() (float64, bool) {
	return s.state.Score, s.state.Initialized
}

// Initialized reports whether the session has left its bootstrap state.
func (s *SessionScore) Initialized() bool {
	return s.state.Initialized
}

// Progress is 100 minus the running score. An uninitialized session has no
// progress yet and reports 0.
func (s *SessionScore) Progress() float64 {
	if !s.state.Initialized {
		return 0
	}
	return 100 - s.state.Score
}

// Observations returns how many utterances have been folded in.
func (s *SessionScore) Observations() int {
	return s.state.Observations
}

// State returns a copy of the session's state for storage.
func (s *SessionScore) State() SessionState {
	return s.state
}
