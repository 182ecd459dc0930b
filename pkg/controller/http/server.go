package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/testforge-dev/testforge/frontend"
	"github.com/testforge-dev/testforge/pkg/domain/interfaces"
	"github.com/testforge-dev/testforge/pkg/domain/model"
	"github.com/testforge-dev/testforge/pkg/utils/apperr"
)

// UseCases bundles the use cases the HTTP layer depends on
type UseCases struct {
	generation interfaces.Generation
	export     interfaces.Export
}

// NewUseCases creates a new use cases bundle
func NewUseCases(generation interfaces.Generation, export interfaces.Export) *UseCases {
	return &UseCases{
		generation: generation,
		export:     export,
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router     chi.Router
	useCases   *UseCases
	apiHandler *APIHandler
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	useCases *UseCases,
	catalog *model.Catalog,
	corsOrigin string,
) (*Server, error) {
	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(CORSMiddleware(corsOrigin))
	router.Use(middleware.Recoverer)

	apiHandler := NewAPIHandler(useCases, catalog)

	// Health check
	router.Get("/health", apiHandler.HandleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Post("/generate", apiHandler.HandleGenerate)
		r.Get("/export/{format}", apiHandler.HandleExport)
		r.Get("/test-types", apiHandler.HandleTestTypes)
	})

	// Frontend routes (serve embedded or fallback page)
	fs, err := frontend.GetHTTPFS()
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to get embedded frontend, using fallback",
			"error", err,
		)
		router.Get("/*", handleFallbackHome)
	} else {
		staticHandler, err := NewStaticHandler(fs)
		if err != nil {
			ctxlog.From(ctx).Warn("Failed to prepare static handler, using fallback",
				"error", err,
			)
			router.Get("/*", handleFallbackHome)
		} else {
			ctxlog.From(ctx).Info("Serving frontend from embedded files")
			router.Handle("/*", staticHandler)
		}
	}

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:     router,
		useCases:   useCases,
		apiHandler: apiHandler,
	}

	return server, nil
}

// handleFallbackHome handles the root path when the frontend is not available
func handleFallbackHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>TestForge</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: linear-gradient(135deg, #1d976c 0%, #2c5364 100%);
            color: white;
        }
        .container {
            text-align: center;
            padding: 2rem;
            background: rgba(255, 255, 255, 0.1);
            border-radius: 10px;
            backdrop-filter: blur(10px);
        }
        h1 {
            margin: 0 0 1rem 0;
            font-size: 3rem;
        }
        p {
            margin: 0.5rem 0;
            font-size: 1.2rem;
        }
        code {
            background: rgba(0, 0, 0, 0.25);
            padding: 0.2rem 0.5rem;
            border-radius: 4px;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>TestForge</h1>
        <p>AI Test Case Generation Service</p>
        <p>POST a user story to <code>/api/generate</code> to get started</p>
    </div>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write fallback home page", "error", err)
	}
}

// statusFromError maps an error to an HTTP status code based on its tags.
// Validation, parse, and export failures are the caller's fault; upstream
// timeouts get their own status so clients can retry.
func statusFromError(err error) int {
	switch {
	case goerr.HasTag(err, model.ErrTagValidation),
		goerr.HasTag(err, model.ErrTagParse),
		goerr.HasTag(err, model.ErrTagExport):
		return http.StatusBadRequest
	case goerr.HasTag(err, model.ErrTagTimeout):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes an error response
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		apperr.Handle(ctx, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	var message string
	if goErr := goerr.Unwrap(err); goErr != nil {
		message = goErr.Error()
	} else {
		message = err.Error()
	}

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	}); err != nil {
		ctxlog.From(ctx).Error("Failed to encode error response", "error", err)
	}
}

// writeJSON writes a JSON response
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}
