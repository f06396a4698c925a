package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/nikhilbhutani/fluencyscore/internal/attempt"
	"github.com/nikhilbhutani/fluencyscore/internal/auth"
	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
	"github.com/nikhilbhutani/fluencyscore/internal/models"
	"github.com/nikhilbhutani/fluencyscore/internal/multimodal/stt"
)

const maxSessionIDLen = 128

// Scorer scores utterances against running session state.
type Scorer interface {
	Evaluate(ctx context.Context, sessionID string, u fluency.Utterance) (*fluency.Evaluation, error)
	Progress(ctx context.Context, sessionID string) (*fluency.SessionScore, error)
	Reset(ctx context.Context, sessionID string) error
}

// AttemptQueue hands scored attempts off for persistence.
type AttemptQueue interface {
	EnqueueAttemptRecord(a *models.Attempt) error
}

// AttemptLister reads a session's attempt history.
type AttemptLister interface {
	ListRecent(ctx context.Context, sessionID string, limit int) ([]models.Attempt, error)
}

type SessionHandler struct {
	scorer         Scorer
	attempts       AttemptQueue
	history        AttemptLister
	plain          stt.STTProvider
	aligned        stt.AlignedTranscriber
	language       string
	maxUploadBytes int64
}

type SessionHandlerConfig struct {
	Scorer         Scorer
	Attempts       AttemptQueue  // optional
	History        AttemptLister // optional
	Plain          stt.STTProvider
	Aligned        stt.AlignedTranscriber
	Language       string
	MaxUploadBytes int64
}

func NewSessionHandler(cfg SessionHandlerConfig) *SessionHandler {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 25 << 20
	}
	return &SessionHandler{
		scorer:         cfg.Scorer,
		attempts:       cfg.Attempts,
		history:        cfg.History,
		plain:          cfg.Plain,
		aligned:        cfg.Aligned,
		language:       cfg.Language,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

type evaluationResponse struct {
	SessionID string `json:"session_id"`
	*fluency.Evaluation
}

type audioEvaluationResponse struct {
	evaluationResponse
	Text1      string `json:"text1"`
	Text2      string `json:"text2"`
	Annotation string `json:"annotation"`
}

type progressResponse struct {
	SessionID    string   `json:"session_id"`
	Initialized  bool     `json:"initialized"`
	SessionScore *float64 `json:"session_score"`
	Progress     float64  `json:"progress"`
	Observations int      `json:"observations"`
}

// Evaluate scores already transcribed text.
func (h *SessionHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var u fluency.Utterance
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eval, ok := h.score(w, r, sessionID, u)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, evaluationResponse{SessionID: chi.URLParam(r, "sessionID"), Evaluation: eval})
}

// EvaluateAudio transcribes an uploaded recording with both backends and scores it.
func (h *SessionHandler) EvaluateAudio(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if h.plain == nil || h.aligned == nil {
		writeError(w, http.StatusServiceUnavailable, "speech recognition not configured")
		return
	}

	path, err := h.saveUpload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer os.Remove(path)

	req := stt.TranscriptionRequest{FilePath: path, Language: h.language}
	var (
		plain   *stt.TranscriptionResponse
		aligned *stt.AlignedTranscription
	)
	g, gctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		plain, err = h.plain.Transcribe(gctx, req)
		if err != nil {
			return fmt.Errorf("%s: %w", h.plain.Name(), err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		aligned, err = h.aligned.TranscribeAligned(gctx, req)
		if err != nil {
			return fmt.Errorf("%s: %w", h.aligned.Name(), err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("transcription failed", "session_id", sessionID, "error", err)
		writeError(w, http.StatusBadGateway, "transcription failed")
		return
	}

	u := fluency.Utterance{Text1: plain.Text, Text2: aligned.Text, Annotation: aligned.Annotation}
	eval, ok := h.score(w, r, sessionID, u)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, audioEvaluationResponse{
		evaluationResponse: evaluationResponse{SessionID: chi.URLParam(r, "sessionID"), Evaluation: eval},
		Text1:              u.Text1,
		Text2:              u.Text2,
		Annotation:         u.Annotation,
	})
}

// Progress reports the session's running score.
func (h *SessionHandler) Progress(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	score, err := h.scorer.Progress(r.Context(), sessionID)
	if err != nil {
		slog.Error("load session progress", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	resp := progressResponse{
		SessionID:    chi.URLParam(r, "sessionID"),
		Initialized:  score.Initialized(),
		Progress:     score.Progress(),
		Observations: score.Observations(),
	}
	if cur, ok := score.Current(); ok {
		resp.SessionScore = &cur
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reset clears the session's running score.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if err := h.scorer.Reset(r.Context(), sessionID); err != nil {
		slog.Error("reset session", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Attempts lists the session's recent scored attempts.
func (h *SessionHandler) Attempts(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "attempt history not available")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	attempts, err := h.history.ListRecent(r.Context(), sessionID, attempt.ClampLimit(limit))
	if err != nil {
		slog.Error("list attempts", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list attempts")
		return
	}
	if attempts == nil {
		attempts = []models.Attempt{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}

func (h *SessionHandler) score(w http.ResponseWriter, r *http.Request, sessionID string, u fluency.Utterance) (*fluency.Evaluation, bool) {
	eval, err := h.scorer.Evaluate(r.Context(), sessionID, u)
	if errors.Is(err, fluency.ErrEmptyTranscript) {
		writeError(w, http.StatusUnprocessableEntity, "time-aligned transcript is empty")
		return nil, false
	}
	if err != nil {
		slog.Error("evaluate utterance", "session_id", sessionID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to score utterance")
		return nil, false
	}

	// the score is already committed; losing the history row is not fatal
	if h.attempts != nil {
		if err := h.attempts.EnqueueAttemptRecord(attempt.FromEvaluation(sessionID, u, eval)); err != nil {
			slog.Warn("enqueue attempt record", "session_id", sessionID, "error", err)
		}
	}
	return eval, true
}

func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "sessionID")
	if id == "" || len(id) > maxSessionIDLen {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return "", false
	}
	return auth.ScopeSession(r.Context(), id), true
}

func (h *SessionHandler) saveUpload(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("audio file required")
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "utterance-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("store upload: %w", err)
	}
	return tmp.Name(), nil
}
