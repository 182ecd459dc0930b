package apperr

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle reports an error that reached the edge of the application.
// Values attached via goerr are promoted to log attributes so the entry
// carries the context the error was built with.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	attrs := []any{slog.Any("error", err)}
	for key, value := range goerr.Values(err) {
		attrs = append(attrs, slog.Any(key, value))
	}

	ctxlog.From(ctx).Error("application error", attrs...)
}
