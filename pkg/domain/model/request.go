package model

import (
	"github.com/testforge-dev/testforge/pkg/domain/types"
)

// GenerationRequest is the payload of a test case generation call
type GenerationRequest struct {
	UserStoryTitle       string           `json:"user_story_title"`
	AcceptanceCriteria   string           `json:"acceptance_criteria"`
	TestTypes            []string         `json:"test_types"`
	IncludeEdgeCases     bool             `json:"include_edge_cases"`
	IncludeNegativeCases bool             `json:"include_negative_cases"`
	PriorityLevel        types.Priority   `json:"priority_level"`
	Complexity           types.Complexity `json:"complexity"`
}

// EffectivePriority returns the requested priority level, falling back to
// the default when the request leaves it unset
func (r *GenerationRequest) EffectivePriority() types.Priority {
	if r.PriorityLevel == "" {
		return types.DefaultPriority
	}
	return r.PriorityLevel
}

// EffectiveComplexity returns the requested complexity level, falling back
// to the default when the request leaves it unset
func (r *GenerationRequest) EffectiveComplexity() types.Complexity {
	if r.Complexity == "" {
		return types.DefaultComplexity
	}
	return r.Complexity
}
