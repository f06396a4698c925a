package models

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is one scored utterance in a session's history.
type Attempt struct {
	ID             uuid.UUID `json:"id" db:"id"`
	SessionID      string    `json:"session_id" db:"session_id"`
	Transcript     string    `json:"transcript" db:"transcript"`
	Reference      string    `json:"reference,omitempty" db:"reference"`
	UtteranceScore float64   `json:"utterance_score" db:"utterance_score"`
	SessionScore   float64   `json:"session_score" db:"session_score"`
	Progress       float64   `json:"progress" db:"progress"`
	Repetitions    int       `json:"repetitions" db:"repetitions"`
	Elongations    int       `json:"elongations" db:"elongations"`
	Pauses         int       `json:"pauses" db:"pauses"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
