package model

import (
	"fmt"
	"time"
)

// TestCase is the canonical normalized test case record. It is produced by
// the response parser with every field populated and is not modified
// afterwards.
type TestCase struct {
	TestID         string    `json:"test_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	TestType       string    `json:"test_type"`
	Priority       string    `json:"priority"`
	Preconditions  string    `json:"preconditions"`
	TestSteps      []string  `json:"test_steps"`
	ExpectedResult string    `json:"expected_result"`
	TestData       string    `json:"test_data"`
	Category       string    `json:"category"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// GenerationResult is the success envelope of a generation run
type GenerationResult struct {
	Success     bool       `json:"success"`
	TestCases   []TestCase `json:"test_cases"`
	TotalCount  int        `json:"total_count"`
	GeneratedAt time.Time  `json:"generated_at"`
	ModelUsed   string     `json:"model_used"`
}

// TestCaseRecord is a loosely typed test case as supplied to the export
// surface. Records arrive as raw JSON objects, so fields may be missing,
// null, or carry unexpected types; the strict export validator decides
// what passes.
type TestCaseRecord map[string]any

// Has reports whether the field is present in the record
func (r TestCaseRecord) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// IsEmptyField reports whether the field is absent, null, an empty string,
// or an empty list
func (r TestCaseRecord) IsEmptyField(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return true
	}
	switch val := v.(type) {
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	default:
		return false
	}
}

// StringField returns the field rendered as a string. Absent and null
// fields render as an empty string, not as "null" or "<nil>".
func (r TestCaseRecord) StringField(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// ListField returns the field as a list, or nil when it is not one
func (r TestCaseRecord) ListField(key string) []any {
	v, ok := r[key]
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	return list
}
