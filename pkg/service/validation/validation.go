package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/testforge-dev/testforge/pkg/domain/model"
	"github.com/testforge-dev/testforge/pkg/domain/types"
)

// Request field limits, counted in characters after trimming
const (
	minTitleLength    = 10
	maxTitleLength    = 200
	minCriteriaLength = 20
	maxCriteriaLength = 5000
)

// requiredRecordFields are checked in order during export validation.
// category and test_data are optional and not listed here.
var requiredRecordFields = []string{
	"test_id", "title", "description", "test_type",
	"priority", "preconditions", "test_steps", "expected_result",
}

// ValidateRequest checks a generation request field by field and
// returns the first failure. Priority and complexity may be empty,
// they default later.
func ValidateRequest(req *model.GenerationRequest, catalog *model.Catalog) error {
	if req == nil {
		return goerr.New("no input data provided", goerr.T(model.ErrTagValidation))
	}

	if err := validateTitle(req.UserStoryTitle); err != nil {
		return err
	}
	if err := validateCriteria(req.AcceptanceCriteria); err != nil {
		return err
	}
	if err := validateTestTypes(req.TestTypes, catalog); err != nil {
		return err
	}
	if err := validatePriority(req.PriorityLevel); err != nil {
		return err
	}
	if err := validateComplexity(req.Complexity); err != nil {
		return err
	}

	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return goerr.New("user story title is required", goerr.T(model.ErrTagValidation))
	}

	length := utf8.RuneCountInString(strings.TrimSpace(title))
	if length < minTitleLength {
		return goerr.New("user story title must be at least 10 characters long",
			goerr.T(model.ErrTagValidation), goerr.V("length", length))
	}
	if length > maxTitleLength {
		return goerr.New("user story title cannot exceed 200 characters",
			goerr.T(model.ErrTagValidation), goerr.V("length", length))
	}

	return nil
}

func validateCriteria(criteria string) error {
	if criteria == "" {
		return goerr.New("acceptance criteria is required", goerr.T(model.ErrTagValidation))
	}

	length := utf8.RuneCountInString(strings.TrimSpace(criteria))
	if length < minCriteriaLength {
		return goerr.New("acceptance criteria must be at least 20 characters long",
			goerr.T(model.ErrTagValidation), goerr.V("length", length))
	}
	if length > maxCriteriaLength {
		return goerr.New("acceptance criteria cannot exceed 5000 characters",
			goerr.T(model.ErrTagValidation), goerr.V("length", length))
	}

	return nil
}

func validateTestTypes(testTypes []string, catalog *model.Catalog) error {
	if len(testTypes) == 0 {
		return goerr.New("at least one test type must be selected", goerr.T(model.ErrTagValidation))
	}

	var invalid []string
	for _, id := range testTypes {
		if !catalog.IsValidTestTypeID(id) {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return goerr.New(fmt.Sprintf("invalid test types: %s", strings.Join(invalid, ", ")),
			goerr.T(model.ErrTagValidation), goerr.V("invalid_types", invalid))
	}

	seen := make(map[string]struct{}, len(testTypes))
	for _, id := range testTypes {
		if _, ok := seen[id]; ok {
			return goerr.New("duplicate test types are not allowed",
				goerr.T(model.ErrTagValidation), goerr.V("test_type", id))
		}
		seen[id] = struct{}{}
	}

	return nil
}

func validatePriority(priority types.Priority) error {
	if priority == "" {
		return nil
	}
	if !priority.IsValid() {
		return goerr.New("invalid priority level, must be one of: Low, Medium, High",
			goerr.T(model.ErrTagValidation), goerr.V("priority", priority))
	}
	return nil
}

func validateComplexity(complexity types.Complexity) error {
	if complexity == "" {
		return nil
	}
	if !complexity.IsValid() {
		return goerr.New("invalid complexity level, must be one of: Simple, Medium, Complex",
			goerr.T(model.ErrTagValidation), goerr.V("complexity", complexity))
	}
	return nil
}

// ValidateTestCaseRecord checks that a record carries every required
// field with a usable value. category is deliberately unchecked so
// that records with free-form categories still export.
func ValidateTestCaseRecord(rec model.TestCaseRecord, catalog *model.Catalog) error {
	for _, field := range requiredRecordFields {
		if !rec.Has(field) {
			return goerr.New("missing required field: "+field,
				goerr.T(model.ErrTagValidation), goerr.V("field", field))
		}
		if rec.IsEmptyField(field) {
			return goerr.New("field "+field+" cannot be empty",
				goerr.T(model.ErrTagValidation), goerr.V("field", field))
		}
	}

	if rec.ListField("test_steps") == nil {
		return goerr.New("test_steps must be a list", goerr.T(model.ErrTagValidation))
	}

	if testType := rec.StringField("test_type"); !catalog.IsValidTestTypeID(testType) {
		return goerr.New("invalid test_type: "+testType,
			goerr.T(model.ErrTagValidation), goerr.V("test_type", testType))
	}

	if priority := rec.StringField("priority"); !types.Priority(priority).IsValid() {
		return goerr.New("invalid priority: "+priority,
			goerr.T(model.ErrTagValidation), goerr.V("priority", priority))
	}

	return nil
}

// ValidateExportData checks every record before export and prefixes
// failures with the one-based position of the offending record.
func ValidateExportData(records []model.TestCaseRecord, catalog *model.Catalog) error {
	if len(records) == 0 {
		return goerr.New("no test cases provided for export", goerr.T(model.ErrTagValidation))
	}

	for i, rec := range records {
		if err := ValidateTestCaseRecord(rec, catalog); err != nil {
			return goerr.Wrap(err, fmt.Sprintf("test case %d", i+1), goerr.V("index", i))
		}
	}

	return nil
}
