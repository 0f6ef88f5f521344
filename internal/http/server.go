// Package http provides the HTTP surface: a thin request/response mapping
// over the transaction and export services.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"bilancio/internal/core"
	"bilancio/internal/export"
)

// TransactionStore is the service surface the handlers depend on.
type TransactionStore interface {
	Create(ctx context.Context, kind core.Kind, amount core.Money, note, date string) (int64, error)
	Delete(ctx context.Context, kind core.Kind, id int64) error
	List(ctx context.Context) ([]core.Transaction, error)
	MonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error)
}

// Exporter builds the spreadsheet attachment.
type Exporter interface {
	Build(ctx context.Context) (export.File, error)
}

type Server struct {
	http.Server
	store    TransactionStore
	exporter Exporter
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server. When staticDir is non-empty the frontend build is served
// from it at the root path.
func NewServer(addr string, store TransactionStore, exporter Exporter, staticDir string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:    store,
		exporter: exporter,
	}

	mux.HandleFunc("/add/", s.withRequestLog(s.handleAdd))
	mux.HandleFunc("/delete/", s.withRequestLog(s.handleDelete))
	mux.HandleFunc("/list/", s.withRequestLog(s.handleList))
	mux.HandleFunc("/stats/", s.withRequestLog(s.handleStats))
	mux.HandleFunc("/export/", s.withRequestLog(s.handleExport))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	if staticDir != "" {
		static := http.FileServer(http.Dir(staticDir))
		mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	}

	return s
}

// withRequestLog adds security headers, a request id, and start/completion
// logging to a handler.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
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

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
