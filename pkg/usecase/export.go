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
	"github.com/testforge-dev/testforge/pkg/service/validation"
)

// Export implements the test case export use case
type Export struct {
	catalog *model.Catalog
}

var _ interfaces.Export = (*Export)(nil) // Compile-time interface check

// NewExport creates a new Export instance
func NewExport(catalog *model.Catalog) *Export {
	return &Export{
		catalog: catalog,
	}
}

// ExportTestCases validates the records and renders them in the
// requested format. Validation errors are returned as-is so their
// messages reach the client unchanged.
func (u *Export) ExportTestCases(ctx context.Context, format types.ExportFormat, records []model.TestCaseRecord) (*model.ExportFile, error) {
	logger := ctxlog.From(ctx)

	if err := validation.ValidateExportData(records, u.catalog); err != nil {
		return nil, err
	}

	now := time.Now()

	var data []byte
	var err error
	switch format {
	case types.ExportFormatCSV:
		data, err = export.WriteCSV(records)
	case types.ExportFormatJSON:
		data, err = export.WriteJSON(records, now)
	case types.ExportFormatJiraCSV:
		data, err = export.WriteJiraCSV(records)
	default:
		return nil, goerr.New("unsupported export format",
			goerr.T(model.ErrTagExport), goerr.V("format", format))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render export", goerr.V("format", format))
	}

	stats := export.CollectStatistics(records)
	logger.Info("test cases exported",
		"format", format,
		"count", stats.Total,
		"by_priority", stats.ByPriority,
		"by_type", stats.ByType,
		"bytes", len(data),
	)

	return &model.ExportFile{
		Name:        export.Filename(format, now),
		ContentType: export.ContentType(format),
		Data:        data,
	}, nil
}
