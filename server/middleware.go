package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"postgen/logging"
	"postgen/orchestrator"
)

const requestIDHeader = "X-Request-ID"

// cors lets any origin POST JSON to the service.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

// requestID reuses the caller's X-Request-ID or mints one, echoes it and
// attaches a logger carrying it to the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		logger := slog.Default().With("request_id", id)
		next.ServeHTTP(w, r.WithContext(logging.WithContext(r.Context(), logger)))
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		logging.FromContext(r.Context()).InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}

// recoverJSON turns a panic into the 500 error body.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logging.FromContext(r.Context()).ErrorContext(r.Context(), "panic serving request", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, errorBody{
				Error:   orchestrator.ErrMsgUnexpected,
				Details: fmt.Sprint(rec),
				Hint:    orchestrator.HintUnexpected,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
