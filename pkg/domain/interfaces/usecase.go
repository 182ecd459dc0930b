package interfaces

import (
	"context"

	"github.com/testforge-dev/testforge/pkg/domain/model"
	"github.com/testforge-dev/testforge/pkg/domain/types"
)

// Generation defines the interface for test case generation use cases
type Generation interface {
	// GenerateTestCases validates the request, prompts the model and
	// returns the parsed test cases
	GenerateTestCases(ctx context.Context, req *model.GenerationRequest) (*model.GenerationResult, error)

	// Health reports the LLM configuration status
	Health() *model.LLMHealth
}

// Export defines the interface for test case export use cases
type Export interface {
	// ExportTestCases validates the records and renders them in the
	// requested format
	ExportTestCases(ctx context.Context, format types.ExportFormat, records []model.TestCaseRecord) (*model.ExportFile, error)
}
