package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/nikhilbhutani/fluencyscore/internal/models"
	"github.com/nikhilbhutani/fluencyscore/internal/queue"
)

type fakeRecorder struct {
	got []models.Attempt
	err error
}

func (f *fakeRecorder) Record(_ context.Context, a *models.Attempt) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, *a)
	return nil
}

func TestAttemptWorkerRecords(t *testing.T) {
	rec := &fakeRecorder{}
	w := NewAttemptWorker(rec)

	task, err := queue.NewAttemptRecordTask(&models.Attempt{SessionID: "alice", UtteranceScore: 60})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := w.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(rec.got) != 1 || rec.got[0].SessionID != "alice" || rec.got[0].UtteranceScore != 60 {
		t.Fatalf("recorded %+v", rec.got)
	}
}

func TestAttemptWorkerBadPayloadSkipsRetry(t *testing.T) {
	w := NewAttemptWorker(&fakeRecorder{})
	err := w.ProcessTask(context.Background(), asynq.NewTask(queue.TypeAttemptRecord, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("err=%v, want SkipRetry", err)
	}
}

func TestAttemptWorkerPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("db down")
	w := NewAttemptWorker(&fakeRecorder{err: storeErr})

	task, _ := queue.NewAttemptRecordTask(&models.Attempt{SessionID: "alice"})
	if err := w.ProcessTask(context.Background(), task); !errors.Is(err, storeErr) {
		t.Fatalf("err=%v, want store error", err)
	}
}
