package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/testforge-dev/testforge/pkg/domain/model"
	"github.com/testforge-dev/testforge/pkg/domain/types"
)

const exportVersion = "1.0.0"

// csvColumns is the column order of the plain CSV export
var csvColumns = []string{
	"test_id", "title", "description", "test_type", "priority",
	"preconditions", "test_steps", "expected_result", "test_data",
	"category", "generated_at",
}

// jiraColumns is the column order of the Jira-compatible CSV export
var jiraColumns = []string{
	"Summary", "Issue Type", "Priority", "Description",
	"Test Steps", "Expected Results", "Labels",
}

// WriteCSV renders the records as a CSV document. List-valued fields
// are flattened, test_steps with " | " and other lists with ", ".
func WriteCSV(records []model.TestCaseRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvColumns); err != nil {
		return nil, goerr.Wrap(err, "failed to write CSV header")
	}

	for _, rec := range records {
		row := make([]string, 0, len(csvColumns))
		for _, col := range csvColumns {
			row = append(row, csvValue(rec, col))
		}
		if err := w.Write(row); err != nil {
			return nil, goerr.Wrap(err, "failed to write CSV row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, goerr.Wrap(err, "failed to flush CSV output")
	}

	return buf.Bytes(), nil
}

func csvValue(rec model.TestCaseRecord, col string) string {
	if items := rec.ListField(col); items != nil {
		sep := ", "
		if col == "test_steps" {
			sep = " | "
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, sep)
	}

	return rec.StringField(col)
}

type jsonMetadata struct {
	ExportTimestamp string `json:"export_timestamp"`
	TotalTestCases  int    `json:"total_test_cases"`
	ExportFormat    string `json:"export_format"`
	Version         string `json:"version"`
}

type jsonEnvelope struct {
	Metadata  jsonMetadata           `json:"metadata"`
	TestCases []model.TestCaseRecord `json:"test_cases"`
}

// WriteJSON renders the records inside a metadata envelope with
// 2-space indentation. Records pass through unmodified.
func WriteJSON(records []model.TestCaseRecord, now time.Time) ([]byte, error) {
	envelope := jsonEnvelope{
		Metadata: jsonMetadata{
			ExportTimestamp: now.Format(time.RFC3339),
			TotalTestCases:  len(records),
			ExportFormat:    "json",
			Version:         exportVersion,
		},
		TestCases: records,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal export envelope")
	}

	return data, nil
}

// WriteJiraCSV renders the records as a CSV document importable into
// Jira, one Test issue per record.
func WriteJiraCSV(records []model.TestCaseRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(jiraColumns); err != nil {
		return nil, goerr.Wrap(err, "failed to write Jira CSV header")
	}

	for _, rec := range records {
		// Missing priority falls back to Medium, present-but-empty does not
		priority := "Medium"
		if rec.Has("priority") {
			priority = rec.StringField("priority")
		}

		row := []string{
			rec.StringField("test_id") + " - " + rec.StringField("title"),
			"Test",
			priority,
			"*Preconditions:* " + rec.StringField("preconditions") +
				"\n\n*Test Data:* " + rec.StringField("test_data"),
			jiraSteps(rec),
			rec.StringField("expected_result"),
			strings.ToLower(rec.StringField("test_type")) + "," + strings.ToLower(rec.StringField("category")),
		}
		if err := w.Write(row); err != nil {
			return nil, goerr.Wrap(err, "failed to write Jira CSV row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, goerr.Wrap(err, "failed to flush Jira CSV output")
	}

	return buf.Bytes(), nil
}

func jiraSteps(rec model.TestCaseRecord) string {
	items := rec.ListField("test_steps")
	if items == nil {
		return rec.StringField("test_steps")
	}

	var b strings.Builder
	for i, step := range items {
		fmt.Fprintf(&b, "%d. %v\n", i+1, step)
	}
	return strings.TrimSpace(b.String())
}

// Filename returns the attachment name for the format, stamped with
// the export time.
func Filename(format types.ExportFormat, now time.Time) string {
	ts := now.Format("20060102_150405")

	switch format {
	case types.ExportFormatJSON:
		return "test_cases_" + ts + ".json"
	case types.ExportFormatJiraCSV:
		return "jira_test_cases_" + ts + ".csv"
	default:
		return "test_cases_" + ts + ".csv"
	}
}

// ContentType returns the MIME type served for the format
func ContentType(format types.ExportFormat) string {
	if format == types.ExportFormatJSON {
		return "application/json"
	}
	return "text/csv"
}
