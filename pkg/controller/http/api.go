package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/testforge-dev/testforge/pkg/domain/model"
	"github.com/testforge-dev/testforge/pkg/domain/types"
)

// APIHandler handles the test case generation and export endpoints
type APIHandler struct {
	useCases *UseCases
	catalog  *model.Catalog
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(useCases *UseCases, catalog *model.Catalog) *APIHandler {
	return &APIHandler{
		useCases: useCases,
		catalog:  catalog,
	}
}

// HandleGenerate generates test cases from a user story
func (h *APIHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid request body",
			goerr.T(model.ErrTagValidation)))
		return
	}

	result, err := h.useCases.generation.GenerateTestCases(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

// HandleExport renders the submitted test cases as a downloadable file.
// The records travel in the "data" query parameter as a JSON array so the
// endpoint stays a plain GET that browsers can download from directly.
func (h *APIHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data := r.URL.Query().Get("data")
	if data == "" {
		writeError(ctx, w, goerr.New("no test cases data provided",
			goerr.T(model.ErrTagValidation)))
		return
	}

	format := types.ExportFormat(chi.URLParam(r, "format"))
	if format != types.ExportFormatCSV && format != types.ExportFormatJSON {
		writeError(ctx, w, goerr.New("format must be csv or json",
			goerr.T(model.ErrTagValidation),
			goerr.V("format", format)))
		return
	}

	var records []model.TestCaseRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid test cases data",
			goerr.T(model.ErrTagValidation)))
		return
	}

	file, err := h.useCases.export.ExportTestCases(ctx, format, records)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+file.Name)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		ctxlog.From(ctx).Error("Failed to write export response", "error", err)
	}
}

// HandleTestTypes returns the selectable test types and request option levels
func (h *APIHandler) HandleTestTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"test_types":        h.catalog.TestTypes,
		"priority_levels":   types.Priorities(),
		"complexity_levels": types.Complexities(),
	})
}

// HandleHealth handles health check requests
func (h *APIHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"timestamp":      time.Now().Format(time.RFC3339),
		"llm":            h.useCases.generation.Health(),
		"export_formats": types.ExportFormats(),
	})
}
