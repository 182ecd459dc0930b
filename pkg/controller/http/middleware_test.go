package http_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	controller "github.com/testforge-dev/testforge/pkg/controller/http"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	t.Run("adds CORS headers for the configured origin", func(t *testing.T) {
		handler := controller.CORSMiddleware("https://app.example.com")(next)

		req := httptest.NewRequest(http.MethodGet, "/api/test-types", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusOK, w.Code)
		gt.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "https://app.example.com")
		gt.Equal(t, w.Header().Get("Access-Control-Allow-Methods"), "GET, POST, OPTIONS")
		gt.Equal(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		gt.Equal(t, w.Body.String(), "ok")
	})

	t.Run("falls back to any origin", func(t *testing.T) {
		handler := controller.CORSMiddleware("")(next)

		req := httptest.NewRequest(http.MethodGet, "/api/test-types", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "*")
	})

	t.Run("short-circuits preflight requests", func(t *testing.T) {
		handler := controller.CORSMiddleware("")(next)

		req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusNoContent, w.Code)
		gt.Equal(t, w.Body.Len(), 0)
		gt.Equal(t, w.Header().Get("Access-Control-Allow-Origin"), "*")
	})
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	handler := controller.LoggingMiddleware(ctx)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/test-types?format=all", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	// The wrapped handler result passes through untouched
	gt.Equal(t, http.StatusTeapot, w.Code)
	gt.Equal(t, w.Body.String(), "short and stout")

	// The request log carries method, path, and status
	logged := buf.String()
	gt.S(t, logged).Contains("HTTP request")
	gt.S(t, logged).Contains("method=GET")
	gt.S(t, logged).Contains("/api/test-types")
	gt.S(t, logged).Contains("status=418")
}
