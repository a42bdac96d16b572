// Package api exposes the availability engine over HTTP for the booking
// frontend and the admin dashboard.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"vanrent/internal/booking"
	"vanrent/internal/config"
	"vanrent/internal/metrics"
	"vanrent/internal/resapi"
	"vanrent/internal/slots"
)

// Server is the HTTP API server.
type Server struct {
	catalogue *config.Catalogue
	lookup    resapi.Lookup
	fetchers  *consumerFetchers
	engine    slots.Engine
	drafts    *booking.Store
	cfg       *config.Config
	logger    *zerolog.Logger
	limiter   *rate.Limiter

	httpServer *http.Server
}

// maxConsumerFetchers bounds the per-consumer guard map. The guard is
// best-effort; dropping all of them only loses in-flight supersession
// tracking, never data.
const maxConsumerFetchers = 10000

// consumerFetchers holds one latest-request-wins guard per consumer (one
// booking form or admin view, identified by the consumer query parameter).
// A shared guard would let unrelated users supersede each other.
type consumerFetchers struct {
	mu      sync.Mutex
	byID    map[string]*resapi.Fetcher
	base    resapi.Lookup
	onStale func()
}

func (c *consumerFetchers) lookupFor(consumer string) resapi.Lookup {
	if consumer == "" {
		return c.base
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.byID[consumer]; ok {
		return f
	}
	if len(c.byID) >= maxConsumerFetchers {
		c.byID = make(map[string]*resapi.Fetcher)
	}
	f := resapi.NewFetcher(c.base, c.onStale)
	c.byID[consumer] = f
	return f
}

// NewServer wires the API server.
func NewServer(cfg *config.Config, catalogue *config.Catalogue, lookup resapi.Lookup, drafts *booking.Store, logger *zerolog.Logger) *Server {
	s := &Server{
		catalogue: catalogue,
		lookup:    lookup,
		fetchers: &consumerFetchers{
			byID:    make(map[string]*resapi.Fetcher),
			base:    lookup,
			onStale: metrics.IncStaleLookupDiscarded,
		},
		engine:  slots.Engine{Interval: cfg.SlotInterval()},
		drafts:  drafts,
		cfg:     cfg,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/v1/offices", s.handleListOffices)
	mux.HandleFunc("GET /api/v1/offices/{id}/slots", s.handleOfficeSlots)
	mux.HandleFunc("GET /api/v1/offices/{id}/schedule.xlsx", s.handleScheduleExport)
	mux.HandleFunc("POST /api/v1/quote", s.handleQuote)
	mux.HandleFunc("POST /api/v1/drafts", s.handleCreateDraft)
	mux.HandleFunc("GET /api/v1/drafts/{id}", s.handleGetDraft)
	mux.HandleFunc("POST /api/v1/drafts/{id}", s.handleUpdateDraft)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.middleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the wrapped handler, exported for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
