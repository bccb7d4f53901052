package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/tradege/stek-sub013/internal/games"
	"github.com/tradege/stek-sub013/internal/store"
)

// Server exposes the verification surface over HTTP. The outcome
// engine underneath is pure; the server adds transport, validation and
// the seed-pair audit store.
type Server struct {
	db        store.DB
	log       *logrus.Logger
	timeout   time.Duration
	origins   []string
	startTime time.Time
}

// Options tunes the HTTP layer.
type Options struct {
	Timeout time.Duration
	Origins []string
}

// NewServer creates the API server. db may be nil when running as a
// pure verifier with no commitment endpoints.
func NewServer(db store.DB, log *logrus.Logger, opts Options) *Server {
	if log == nil {
		log = logrus.New()
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if len(opts.Origins) == 0 {
		opts.Origins = []string{"*"}
	}

	s := &Server{
		db:        db,
		log:       log,
		timeout:   opts.Timeout,
		origins:   opts.Origins,
		startTime: time.Now(),
	}

	log.WithFields(logrus.Fields{
		"games_available": len(games.List()),
		"store_enabled":   db != nil,
	}).Info("fairness api initialized")

	return s
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/verify", s.handleVerify)
		r.Post("/seed/hash", s.handleSeedHash)
		r.Get("/games", s.handleListGames)

		if s.db != nil {
			r.Post("/commit", s.handleCommit)
			r.Post("/seed/reveal", s.handleReveal)
		}
	})

	return r
}

// writeJSON writes a JSON response with the engine version header.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string, context map[string]any) {
	s.writeJSON(w, status, EngineError{
		Type:    errType,
		Message: message,
		Context: context,
	})
}
