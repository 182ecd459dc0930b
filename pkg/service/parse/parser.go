package parse

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/testforge-dev/testforge/pkg/domain/model"
)

// ExtractJSONArray returns the slice of text from the first '[' to the
// last ']'. The brackets are located independently, so the slice is not
// guaranteed to be valid JSON; the caller decodes it. When the last ']'
// precedes the first '[', the slice is empty and the decoder rejects it.
func ExtractJSONArray(text string) (string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")

	if start < 0 || end < 0 {
		return "", goerr.Wrap(model.ErrNoJSONFound, "response has no bracketed array",
			goerr.V("response_length", len(text)))
	}
	if end < start {
		return "", nil
	}

	return text[start : end+1], nil
}

// ParseTestCases extracts the JSON array from the raw model response
// and normalizes each record into a TestCase. Each record is stamped
// with the given generation time.
func ParseTestCases(text string, now time.Time) ([]model.TestCase, error) {
	jsonStr, err := ExtractJSONArray(text)
	if err != nil {
		return nil, err
	}

	var records []model.TestCaseRecord
	if err := json.Unmarshal([]byte(jsonStr), &records); err != nil {
		return nil, goerr.Wrap(model.ErrMalformedJSON, "failed to decode extracted array",
			goerr.V("cause", err.Error()))
	}

	testCases := make([]model.TestCase, 0, len(records))
	for i, rec := range records {
		if rec == nil {
			return nil, goerr.Wrap(model.ErrMalformedJSON, "array element is not an object",
				goerr.V("index", i))
		}
		testCases = append(testCases, NormalizeRecord(rec, i, now))
	}

	return testCases, nil
}

// NormalizeRecord fills missing or unusable fields with defaults and
// coerces test_steps into a string list. index is the zero-based
// position of the record in the parsed array.
func NormalizeRecord(rec model.TestCaseRecord, index int, now time.Time) model.TestCase {
	return model.TestCase{
		TestID:         stringOr(rec, "test_id", fmt.Sprintf("TC%03d", index+1)),
		Title:          stringOr(rec, "title", fmt.Sprintf("Test Case %d", index+1)),
		Description:    stringOr(rec, "description", "No description provided"),
		TestType:       stringOr(rec, "test_type", "Functional"),
		Priority:       stringOr(rec, "priority", "Medium"),
		Preconditions:  stringOr(rec, "preconditions", "No specific preconditions"),
		TestSteps:      normalizeSteps(rec),
		ExpectedResult: stringOr(rec, "expected_result", "No expected result specified"),
		TestData:       stringOr(rec, "test_data", "No test data required"),
		Category:       stringOr(rec, "category", "Positive"),
		GeneratedAt:    now,
	}
}

// stringOr returns the field value when it is a non-empty string,
// otherwise the fallback. Non-string values fall back as well.
func stringOr(rec model.TestCaseRecord, key, fallback string) string {
	v, ok := rec[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

// normalizeSteps coerces the test_steps field into a string list. A
// bare string becomes a single step, list elements are stringified,
// and anything else becomes a placeholder step.
func normalizeSteps(rec model.TestCaseRecord) []string {
	switch v := rec["test_steps"].(type) {
	case string:
		return []string{v}
	case []any:
		steps := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				steps = append(steps, s)
			} else {
				steps = append(steps, fmt.Sprint(item))
			}
		}
		return steps
	default:
		return []string{"No steps provided"}
	}
}
