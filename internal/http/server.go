// Package http exposes the ledger over a local JSON API: the entry
// form posts drafts here, display surfaces read the derived views.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"pulseledger/internal/cache"
	"pulseledger/internal/core"
	"pulseledger/internal/ledger"
	"pulseledger/internal/views"

	applog "pulseledger/internal/log"
)

type Server struct {
	http.Server
	store       *ledger.Store
	logger      *applog.Logger
	rateLimiter *rateLimiter

	// Derived views memoized by ledger revision plus parameters.
	// Purely an optimization; every miss recomputes from a snapshot.
	summaryCache  *cache.LRU[views.Summary]
	insightsCache *cache.LRU[[]views.Insight]
	timelineCache *cache.LRU[[]views.DayGroup]
	listCache     *cache.LRU[[]core.Transaction]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run http.Server bound to the given ledger store.
func NewServer(addr string, store *ledger.Store, cacheTTL time.Duration, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:            store,
		logger:           logger.WithComponent(applog.ComponentHTTP),
		rateLimiter:      newRateLimiter(),
		summaryCache:     cache.NewLRU[views.Summary](16, cacheTTL),
		insightsCache:    cache.NewLRU[[]views.Insight](16, cacheTTL),
		timelineCache:    cache.NewLRU[[]views.DayGroup](16, cacheTTL),
		listCache:        cache.NewLRU[[]core.Transaction](128, cacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/api/transactions", s.withMiddleware(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withMiddleware(s.handleTransactionByID))
	mux.HandleFunc("/api/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("/api/insights", s.withMiddleware(s.handleInsights))
	mux.HandleFunc("/api/timeline", s.withMiddleware(s.handleTimeline))
	mux.HandleFunc("/api/categories", s.withMiddleware(s.handleCategories))

	return s
}

// withMiddleware adds security headers, request ids, rate limiting on
// mutations, and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		mutation := r.Method == http.MethodPost || r.Method == http.MethodDelete
		if mutation && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleaned := s.summaryCache.CleanExpired() +
				s.insightsCache.CleanExpired() +
				s.timelineCache.CleanExpired() +
				s.listCache.CleanExpired()
			if cleaned > 0 {
				s.logger.Debug("Cache cleanup completed", applog.FieldCount, cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup routines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports readiness: the ledger must have completed its
// one-shot hydrate before the API serves traffic.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.store.Initialized() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("hydrating"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
