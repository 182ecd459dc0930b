package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	controller "github.com/testforge-dev/testforge/pkg/controller/http"
	"github.com/testforge-dev/testforge/pkg/domain/interfaces"
	"github.com/testforge-dev/testforge/pkg/domain/model"
	"github.com/testforge-dev/testforge/pkg/usecase"
)

// Mock LLM client for exercising the full HTTP stack
type mockLLMClient struct {
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)
	ModelName        string
	Configured       bool
}

func (m *mockLLMClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}
	return "[]", nil
}

func (m *mockLLMClient) Model() string {
	if m.ModelName != "" {
		return m.ModelName
	}
	return "claude-3-5-sonnet-20241022"
}

func (m *mockLLMClient) IsConfigured() bool {
	return m.Configured
}

func setupServer(t *testing.T, llmClient interfaces.LLMClient) *controller.Server {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx = ctxlog.With(ctx, logger)

	catalog := model.DefaultCatalog()
	useCases := controller.NewUseCases(
		usecase.NewGeneration(llmClient, catalog),
		usecase.NewExport(catalog),
	)

	server, err := controller.NewServer(ctx, ":8080", useCases, catalog, "")
	gt.NoError(t, err).Required()

	return server
}

func generationPayload() map[string]any {
	return map[string]any{
		"user_story_title":    "User login with email and password",
		"acceptance_criteria": "Users can sign in with a registered email address and a valid password",
		"test_types":          []string{"Functional", "Security"},
		"include_edge_cases":  true,
		"priority_level":      "High",
		"complexity":          "Medium",
	}
}

func modelResponse() string {
	return `Here are the test cases:
[
  {
    "test_id": "TC001",
    "title": "Valid login with registered email",
    "description": "Verify a registered user can sign in",
    "test_type": "Functional",
    "priority": "High",
    "preconditions": "User account exists",
    "test_steps": ["Open the login page", "Submit valid credentials"],
    "expected_result": "User reaches the dashboard",
    "test_data": "user@example.com",
    "category": "Positive"
  },
  {
    "title": "Login with an unknown email",
    "test_type": "Security",
    "category": "Negative"
  }
]`
}

func postGenerate(t *testing.T, server *controller.Server, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	gt.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	server.Server.Handler.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestServerGenerate(t *testing.T) {
	t.Run("generates test cases from a valid request", func(t *testing.T) {
		var gotPrompt string
		llmClient := &mockLLMClient{
			Configured: true,
			GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
				gotPrompt = prompt
				return modelResponse(), nil
			},
		}
		server := setupServer(t, llmClient)

		w := postGenerate(t, server, generationPayload())

		gt.Equal(t, http.StatusOK, w.Code)
		gt.S(t, gotPrompt).Contains("User login with email and password")

		var result model.GenerationResult
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		gt.True(t, result.Success)
		gt.Equal(t, result.TotalCount, 2)
		gt.Equal(t, len(result.TestCases), 2)
		gt.Equal(t, result.TestCases[0].TestID, "TC001")
		gt.Equal(t, result.TestCases[0].TestSteps, []string{"Open the login page", "Submit valid credentials"})
		gt.Equal(t, result.TestCases[1].TestID, "TC002")
		gt.Equal(t, result.TestCases[1].Description, "No description provided")
		gt.Equal(t, result.ModelUsed, "claude-3-5-sonnet-20241022")
	})

	t.Run("rejects a request body that is not JSON", func(t *testing.T) {
		server := setupServer(t, &mockLLMClient{Configured: true})

		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		server.Server.Handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusBadRequest, w.Code)
		gt.S(t, errorMessage(t, w)).Contains("invalid request body")
	})

	t.Run("rejects a request that fails validation", func(t *testing.T) {
		called := false
		llmClient := &mockLLMClient{
			Configured: true,
			GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
				called = true
				return "[]", nil
			},
		}
		server := setupServer(t, llmClient)

		payload := generationPayload()
		payload["user_story_title"] = "Login"
		w := postGenerate(t, server, payload)

		gt.Equal(t, http.StatusBadRequest, w.Code)
		gt.S(t, errorMessage(t, w)).Contains("user story title must be at least 10 characters long")
		gt.False(t, called)
	})

	t.Run("returns bad request when the response has no array", func(t *testing.T) {
		llmClient := &mockLLMClient{
			Configured: true,
			GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
				return "I could not produce test cases for this story.", nil
			},
		}
		server := setupServer(t, llmClient)

		w := postGenerate(t, server, generationPayload())

		gt.Equal(t, http.StatusBadRequest, w.Code)
		gt.S(t, errorMessage(t, w)).Contains("no JSON array found in response")
	})

	t.Run("returns request timeout when the model call times out", func(t *testing.T) {
		llmClient := &mockLLMClient{
			Configured: true,
			GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
				return "", goerr.New("anthropic request timed out", goerr.T(model.ErrTagTimeout))
			},
		}
		server := setupServer(t, llmClient)

		w := postGenerate(t, server, generationPayload())

		gt.Equal(t, http.StatusRequestTimeout, w.Code)
		gt.S(t, errorMessage(t, w)).Contains("timed out")
	})

	t.Run("returns internal error for upstream failures", func(t *testing.T) {
		llmClient := &mockLLMClient{
			Configured: true,
			GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
				return "", goerr.New("anthropic API returned an error status", goerr.T(model.ErrTagUpstream))
			},
		}
		server := setupServer(t, llmClient)

		w := postGenerate(t, server, generationPayload())

		gt.Equal(t, http.StatusInternalServerError, w.Code)
		gt.S(t, errorMessage(t, w)).Contains("failed to generate test cases")
	})
}

func exportRecords() []model.TestCaseRecord {
	return []model.TestCaseRecord{
		{
			"test_id":         "TC001",
			"title":           "Valid login",
			"description":     "Login with valid credentials",
			"test_type":       "Functional",
			"priority":        "High",
			"preconditions":   "User account exists",
			"test_steps":      []any{"Open the login page", "Submit valid credentials"},
			"expected_result": "User reaches the dashboard",
			"test_data":       "user@example.com",
			"category":        "Positive",
		},
	}
}

func getExport(t *testing.T, server *controller.Server, format string, records []model.TestCaseRecord) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(records)
	gt.NoError(t, err)

	target := "/api/export/" + format + "?data=" + url.QueryEscape(string(data))
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()

	server.Server.Handler.ServeHTTP(w, req)
	return w
}

func TestServerExport(t *testing.T) {
	server := setupServer(t, &mockLLMClient{Configured: true})

	t.Run("exports test cases as CSV", func(t *testing.T) {
		w := getExport(t, server, "csv", exportRecords())

		gt.Equal(t, http.StatusOK, w.Code)
		gt.Equal(t, w.Header().Get("Content-Type"), "text/csv")
		gt.S(t, w.Header().Get("Content-Disposition")).Contains("attachment; filename=test_cases_")
		gt.S(t, w.Header().Get("Content-Disposition")).Contains(".csv")
		gt.S(t, w.Body.String()).Contains("test_id,title")
		gt.S(t, w.Body.String()).Contains("Open the login page | Submit valid credentials")
	})

	t.Run("exports test cases as JSON", func(t *testing.T) {
		w := getExport(t, server, "json", exportRecords())

		gt.Equal(t, http.StatusOK, w.Code)
		gt.Equal(t, w.Header().Get("Content-Type"), "application/json")
		gt.S(t, w.Header().Get("Content-Disposition")).Contains(".json")

		var envelope struct {
			Metadata struct {
				ExportFormat   string `json:"export_format"`
				TotalTestCases int    `json:"total_test_cases"`
			} `json:"metadata"`
			TestCases []model.TestCaseRecord `json:"test_cases"`
		}
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		gt.Equal(t, envelope.Metadata.ExportFormat, "json")
		gt.Equal(t, envelope.Metadata.TotalTestCases, 1)
		gt.Equal(t, len(envelope.TestCases), 1)
		gt.Equal(t, envelope.TestCases[0]["test_id"], "TC001")
	})

	t.Run("rejects a request without data", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
		w := httptest.NewRecorder()
		server.Server.Handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusBadRequest, w.Code)
		gt.S(t, errorMessage(t, w)).Contains("no test cases data provided")
	})

	t.Run("checks for data before the format", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/export/xlsx", nil)
		w := httptest.NewRecorder()
		server.Server.Handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusBadRequest, w.Code)
		gt.S(t, errorMessage(t, w)).Contains("no test cases data provided")
	})

	t.Run("rejects an unsupported format", func(t *testing.T) {
		w := getExport(t, server, "xlsx", exportRecords())

		gt.Equal(t, http.StatusBadRequest, w.Code)
		gt.S(t, errorMessage(t, w)).Contains("format must be csv or json")
	})

	t.Run("rejects malformed data", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/export/csv?data="+url.QueryEscape("not json"), nil)
		w := httptest.NewRecorder()
		server.Server.Handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusBadRequest, w.Code)
		gt.S(t, errorMessage(t, w)).Contains("invalid test cases data")
	})

	t.Run("rejects records that fail validation", func(t *testing.T) {
		records := exportRecords()
		delete(records[0], "expected_result")
		w := getExport(t, server, "csv", records)

		gt.Equal(t, http.StatusBadRequest, w.Code)
		gt.S(t, errorMessage(t, w)).Contains("test case 1")
		gt.S(t, errorMessage(t, w)).Contains("missing required field: expected_result")
	})
}

func TestServerTestTypes(t *testing.T) {
	server := setupServer(t, &mockLLMClient{Configured: true})

	req := httptest.NewRequest(http.MethodGet, "/api/test-types", nil)
	w := httptest.NewRecorder()
	server.Server.Handler.ServeHTTP(w, req)

	gt.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TestTypes        []model.TestType `json:"test_types"`
		PriorityLevels   []string         `json:"priority_levels"`
		ComplexityLevels []string         `json:"complexity_levels"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	gt.Equal(t, len(body.TestTypes), 7)
	gt.Equal(t, body.TestTypes[0].ID, "Functional")
	gt.Equal(t, body.TestTypes[0].Name, "Functional Testing")
	gt.Equal(t, body.PriorityLevels, []string{"Low", "Medium", "High"})
	gt.Equal(t, body.ComplexityLevels, []string{"Simple", "Medium", "Complex"})
}

func TestServerHealthCheck(t *testing.T) {
	server := setupServer(t, &mockLLMClient{Configured: true})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Server.Handler.ServeHTTP(w, req)

	gt.Equal(t, http.StatusOK, w.Code)
	gt.True(t, strings.Contains(w.Body.String(), "healthy"))

	var body struct {
		Status        string           `json:"status"`
		Timestamp     string           `json:"timestamp"`
		LLM           *model.LLMHealth `json:"llm"`
		ExportFormats []string         `json:"export_formats"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	gt.Equal(t, body.Status, "healthy")
	gt.V(t, body.LLM).NotNil()
	gt.True(t, body.LLM.Configured)
	gt.Equal(t, body.LLM.Model, "claude-3-5-sonnet-20241022")
	gt.Equal(t, body.ExportFormats, []string{"csv", "json", "jira_csv"})

	_, err := time.Parse(time.RFC3339, body.Timestamp)
	gt.NoError(t, err)
}

func TestServerHealthCheckUnconfigured(t *testing.T) {
	server := setupServer(t, &mockLLMClient{Configured: false})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Server.Handler.ServeHTTP(w, req)

	gt.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string           `json:"status"`
		LLM    *model.LLMHealth `json:"llm"`
	}
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	gt.Equal(t, body.Status, "healthy")
	gt.V(t, body.LLM).NotNil()
	gt.False(t, body.LLM.Configured)
}

func TestServerFrontend(t *testing.T) {
	server := setupServer(t, &mockLLMClient{Configured: true})

	t.Run("serves the index page at the root", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		server.Server.Handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		gt.S(t, body).Contains("<!DOCTYPE html>")
		gt.S(t, body).Contains("TestForge")
	})

	t.Run("serves static assets with content types", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/style.css", nil)
		w := httptest.NewRecorder()
		server.Server.Handler.ServeHTTP(w, req)

		gt.Equal(t, http.StatusOK, w.Code)
		gt.Equal(t, w.Header().Get("Content-Type"), "text/css; charset=utf-8")
	})
}
