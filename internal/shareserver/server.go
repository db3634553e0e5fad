// Package shareserver implements the read-only day-share backend:
// a tiny HTTP API over an expiring key-value store. Share ids are
// high-entropy capability tokens; holding one grants read and revoke
// access to that snapshot.
package shareserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/javiermolinar/horario/internal/share"
)

// Defaults for the share quota and lifetime.
const (
	DefaultTTL        = 24 * time.Hour
	DefaultRateLimit  = 10
	DefaultRateWindow = 15 * time.Minute
	maxPayloadBytes   = 256 << 10
)

// Server serves the share API.
type Server struct {
	kv      KV
	limiter *RateLimiter
	logger  *log.Logger
	baseURL string
	ttl     time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithTTL overrides the share lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Server) { s.ttl = ttl }
}

// WithRateLimit overrides the per-address quota.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(s *Server) { s.limiter = NewRateLimiter(limit, window) }
}

// New creates a Server over the given store. baseURL is the public
// prefix used when building share URLs in responses.
func New(kv KV, baseURL string, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		kv:      kv,
		limiter: NewRateLimiter(DefaultRateLimit, DefaultRateWindow),
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler for the share API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/share", s.handleCreate)
	mux.HandleFunc("/api/share/", s.handleShare)
	return mux
}

// Run serves until ctx is cancelled, sweeping expired shares in the
// background.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := s.kv.Sweep(); err != nil {
					s.logger.Error("sweep failed", "err", err)
				} else if n > 0 {
					s.logger.Debug("swept expired shares", "count", n)
				}
				s.limiter.Prune()
			case <-ctx.Done():
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("share server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		<-sweepDone
		return err
	case err := <-errCh:
		<-sweepDone
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.checkRate(w, r) {
		return
	}

	var payload share.Payload
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}
	if payload.DateKey == "" {
		writeError(w, http.StatusBadRequest)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError)
		return
	}

	id := uuid.NewString()
	if err := s.kv.Put(id, body, s.ttl); err != nil {
		s.logger.Error("storing share", "err", err)
		writeError(w, http.StatusInternalServerError)
		return
	}

	s.logger.Info("share created", "id", id, "day", payload.DateKey)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(share.Info{
		ID:  id,
		URL: s.baseURL + "/api/share/" + id,
	})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/share/")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGet(w, r, id)
	case http.MethodDelete:
		s.handleDelete(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	if !s.checkRate(w, r) {
		return
	}

	payload, err := s.kv.Get(id)
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound)
		return
	case err != nil:
		s.logger.Error("reading share", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if !s.checkRate(w, r) {
		return
	}

	existed, err := s.kv.Delete(id)
	if err != nil {
		s.logger.Error("deleting share", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError)
		return
	}
	if !existed {
		writeError(w, http.StatusNotFound)
		return
	}

	s.logger.Info("share revoked", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// checkRate applies the per-address quota and writes the rate headers.
// Returns false if the request was rejected.
func (s *Server) checkRate(w http.ResponseWriter, r *http.Request) bool {
	key := clientKey(r)
	allowed, remaining, reset := s.limiter.Allow(key)

	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(s.limiter.Limit()))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

	if !allowed {
		s.logger.Warn("rate limit exceeded", "client", key)
		writeError(w, http.StatusTooManyRequests)
		return false
	}
	return true
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"error": %q}`, http.StatusText(status))
}
