package attempt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
	"github.com/nikhilbhutani/fluencyscore/internal/models"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Service stores and reads scored attempts in Postgres.
type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// FromEvaluation builds the history record for one scored utterance.
func FromEvaluation(sessionID string, u fluency.Utterance, e *fluency.Evaluation) *models.Attempt {
	return &models.Attempt{
		ID:             uuid.New(),
		SessionID:      sessionID,
		Transcript:     u.Text2,
		Reference:      u.Text1,
		UtteranceScore: e.UtteranceScore,
		SessionScore:   e.SessionScore,
		Progress:       e.Progress,
		Repetitions:    e.Signals.Repetitions,
		Elongations:    e.Signals.Elongations,
		Pauses:         e.Signals.Pauses,
		CreatedAt:      time.Now().UTC(),
	}
}

// Record inserts an attempt. Re-delivery of the same attempt is a no-op.
func (s *Service) Record(ctx context.Context, a *models.Attempt) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO attempts (id, session_id, transcript, reference, utterance_score, session_score, progress, repetitions, elongations, pauses, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO NOTHING`,
		a.ID, a.SessionID, a.Transcript, a.Reference, a.UtteranceScore, a.SessionScore, a.Progress,
		a.Repetitions, a.Elongations, a.Pauses, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// ListRecent returns a session's attempts, newest first.
func (s *Service) ListRecent(ctx context.Context, sessionID string, limit int) ([]models.Attempt, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, transcript, reference, utterance_score, session_score, progress, repetitions, elongations, pauses, created_at
		 FROM attempts WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2`,
		sessionID, ClampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Transcript, &a.Reference, &a.UtteranceScore, &a.SessionScore,
			&a.Progress, &a.Repetitions, &a.Elongations, &a.Pauses, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ClampLimit bounds a requested page size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
