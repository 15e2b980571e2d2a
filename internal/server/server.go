// Package server exposes question generation and the analysis tools over a
// JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/sourcequiz/internal/conceptgraph"
	"github.com/abhisek/sourcequiz/internal/curriculum"
	"github.com/abhisek/sourcequiz/internal/difficulty"
	"github.com/abhisek/sourcequiz/internal/pipeline"
	"github.com/abhisek/sourcequiz/internal/store"
)

// Generator produces one question per call. *pipeline.Pipeline implements it.
type Generator interface {
	Generate(ctx context.Context, req pipeline.Request) (pipeline.Outcome, error)
}

// Deps are the components behind the API. Graph and Analyzer default to the
// built-in syllabus. Generator and Questions may be nil; their routes then
// answer 503.
type Deps struct {
	Graph     *conceptgraph.Graph
	Analyzer  *difficulty.Analyzer
	Generator Generator
	Questions store.QuestionRepo
}

// Options configure the HTTP layer.
type Options struct {
	AllowedOrigins []string
	// GenerateTimeout bounds one POST /api/questions call.
	GenerateTimeout time.Duration
	Seed            uint64
}

// Server is the HTTP API.
type Server struct {
	deps   Deps
	opts   Options
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a Server.
func New(deps Deps, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if deps.Graph == nil || deps.Analyzer == nil {
		syllabus := curriculum.Default().Syllabus
		if deps.Graph == nil {
			deps.Graph = conceptgraph.New(syllabus)
		}
		if deps.Analyzer == nil {
			deps.Analyzer = difficulty.NewAnalyzer(syllabus.Difficulties())
		}
	}
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = 2 * time.Minute
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Server{
		deps:   deps,
		opts:   opts,
		logger: logger,
		rng:    rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, s.logRequests, middleware.Recoverer)

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/concepts", s.listConcepts)
		r.Post("/analyze", s.analyze)
		r.Post("/distractors", s.distractors)
		r.Post("/score", s.score)

		r.Route("/questions", func(r chi.Router) {
			r.Get("/", s.listQuestions)
			r.Post("/", s.generate)
			r.Get("/{questionID}", s.getQuestion)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then drains.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// requestRNG derives a per-request source so handlers never share one.
func (s *Server) requestRNG() *rand.Rand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))
}
