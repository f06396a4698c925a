package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/nikhilbhutani/fluencyscore/internal/models"
	"github.com/nikhilbhutani/fluencyscore/internal/queue"
)

// AttemptRecorder persists scored attempts.
type AttemptRecorder interface {
	Record(ctx context.Context, a *models.Attempt) error
}

type AttemptWorker struct {
	recorder AttemptRecorder
}

func NewAttemptWorker(recorder AttemptRecorder) *AttemptWorker {
	return &AttemptWorker{recorder: recorder}
}

func (w *AttemptWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.AttemptRecordPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// a payload that cannot be decoded will never succeed
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	a := payload.Attempt
	if err := w.recorder.Record(ctx, &a); err != nil {
		slog.Warn("record attempt failed", "attempt_id", a.ID, "session_id", a.SessionID, "error", err)
		return err
	}

	slog.Info("attempt recorded", "attempt_id", a.ID, "session_id", a.SessionID, "utterance_score", a.UtteranceScore)
	return nil
}
