package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
)

// Service scores utterances against per-session running scores. Calls for
// the same session are serialised; different sessions proceed in parallel.
type Service struct {
	store     Store
	evaluator *fluency.Evaluator
	locks     *keyedMutex
}

func NewService(store Store, evaluator *fluency.Evaluator) *Service {
	return &Service{
		store:     store,
		evaluator: evaluator,
		locks:     newKeyedMutex(),
	}
}

// Evaluate loads the session, scores u and saves the new state. Nothing is
// saved when scoring fails.
func (s *Service) Evaluate(ctx context.Context, sessionID string, u fluency.Utterance) (*fluency.Evaluation, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	score, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	eval, err := s.evaluator.Evaluate(u, score)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sessionID, score.State()); err != nil {
		return nil, fmt.Errorf("save session state: %w", err)
	}

	slog.Info("utterance scored",
		"session_id", sessionID,
		"utterance_score", eval.UtteranceScore,
		"session_score", eval.SessionScore,
		"repetitions", eval.Signals.Repetitions,
		"elongations", eval.Signals.Elongations,
		"pauses", eval.Signals.Pauses,
		"dropped_segments", eval.DroppedSegments,
	)
	return eval, nil
}

// Progress returns the session's current score state. Unknown sessions
// report as uninitialized.
func (s *Service) Progress(ctx context.Context, sessionID string) (*fluency.SessionScore, error) {
	return s.load(ctx, sessionID)
}

// Reset discards a session's running score.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	slog.Info("session reset", "session_id", sessionID)
	return nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*fluency.SessionScore, error) {
	state, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return &fluency.SessionScore{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	return fluency.RestoreSessionScore(state), nil
}

// keyedMutex hands out one mutex per key and forgets it once no caller holds it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
