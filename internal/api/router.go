package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilbhutani/fluencyscore/internal/api/handlers"
	"github.com/nikhilbhutani/fluencyscore/internal/api/middleware"
	"github.com/nikhilbhutani/fluencyscore/internal/auth"
	"github.com/nikhilbhutani/fluencyscore/internal/config"
	"github.com/nikhilbhutani/fluencyscore/internal/multimodal/stt"
)

// Dependencies are the collaborators the HTTP layer is wired to. Attempts,
// History and the transcribers may be nil when their backends are unavailable.
type Dependencies struct {
	Scorer   handlers.Scorer
	Attempts handlers.AttemptQueue
	History  handlers.AttemptLister
	Plain    stt.STTProvider
	Aligned  stt.AlignedTranscriber
	Checks   map[string]handlers.HealthCheck
}

type Router struct {
	mux  *chi.Mux
	cfg  *config.Config
	deps Dependencies
	jwt  *auth.JWTMiddleware
	rl   *middleware.RateLimiter
}

func NewRouter(ctx context.Context, cfg *config.Config, deps Dependencies) *Router {
	return &Router{
		mux:  chi.NewRouter(),
		cfg:  cfg,
		deps: deps,
		jwt:  auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		rl:   middleware.NewRateLimiter(ctx, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.Server.AllowedOrigins))

	// Health endpoints (no auth, no rate limit)
	health := handlers.NewHealthHandler(rt.deps.Checks)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	sessionH := handlers.NewSessionHandler(handlers.SessionHandlerConfig{
		Scorer:         rt.deps.Scorer,
		Attempts:       rt.deps.Attempts,
		History:        rt.deps.History,
		Plain:          rt.deps.Plain,
		Aligned:        rt.deps.Aligned,
		Language:       rt.cfg.STT.Language,
		MaxUploadBytes: rt.cfg.Server.MaxUploadBytes,
	})

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.rl.Limit)
		r.Use(rt.jwt.Authenticate)

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Post("/utterances", sessionH.Evaluate)
			r.Post("/audio", sessionH.EvaluateAudio)
			r.Get("/progress", sessionH.Progress)
			r.Get("/attempts", sessionH.Attempts)
			r.Delete("/", sessionH.Reset)
		})
	})

	return r
}
