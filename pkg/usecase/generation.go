package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/testforge-dev/testforge/pkg/domain/interfaces"
	"github.com/testforge-dev/testforge/pkg/domain/model"
	"github.com/testforge-dev/testforge/pkg/domain/types"
	"github.com/testforge-dev/testforge/pkg/service/export"
	"github.com/testforge-dev/testforge/pkg/service/parse"
	"github.com/testforge-dev/testforge/pkg/service/prompt"
	"github.com/testforge-dev/testforge/pkg/service/validation"
)

// Generation implements the test case generation use case
type Generation struct {
	llmClient interfaces.LLMClient
	catalog   *model.Catalog
	prompter  *prompt.Builder
}

var _ interfaces.Generation = (*Generation)(nil) // Compile-time interface check

// NewGeneration creates a new Generation instance
func NewGeneration(llmClient interfaces.LLMClient, catalog *model.Catalog) *Generation {
	return &Generation{
		llmClient: llmClient,
		catalog:   catalog,
		prompter:  prompt.New(),
	}
}

// GenerateTestCases validates the request, prompts the model and
// parses the response into normalized test cases. Validation errors
// are returned as-is so their messages reach the client unchanged.
func (u *Generation) GenerateTestCases(ctx context.Context, req *model.GenerationRequest) (*model.GenerationResult, error) {
	logger := ctxlog.From(ctx)
	generationID := types.NewGenerationID()

	if err := validation.ValidateRequest(req, u.catalog); err != nil {
		return nil, err
	}

	promptText, err := u.prompter.Build(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build generation prompt",
			goerr.V("generation_id", generationID))
	}

	logger.Info("generating test cases",
		"generation_id", generationID,
		"title", req.UserStoryTitle,
		"test_types", req.TestTypes,
		"model", u.llmClient.Model(),
	)
	startTime := time.Now()

	response, err := u.llmClient.GenerateText(ctx, promptText)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate test cases",
			goerr.V("generation_id", generationID))
	}

	now := time.Now()
	testCases, err := parse.ParseTestCases(response, now)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse generated test cases",
			goerr.V("generation_id", generationID),
			goerr.V("response_length", len(response)))
	}

	savings := export.CalculateTimeSavings(len(testCases))
	logger.Info("test case generation completed",
		"generation_id", generationID,
		"count", len(testCases),
		"duration", time.Since(startTime),
		"time_saved_hours", savings.TimeSavedHours,
		"efficiency_gain_percent", savings.EfficiencyGainPercent,
	)

	return &model.GenerationResult{
		Success:     true,
		TestCases:   testCases,
		TotalCount:  len(testCases),
		GeneratedAt: now,
		ModelUsed:   u.llmClient.Model(),
	}, nil
}

// Health reports the LLM configuration status
func (u *Generation) Health() *model.LLMHealth {
	return &model.LLMHealth{
		Configured: u.llmClient.IsConfigured(),
		Model:      u.llmClient.Model(),
	}
}
