package logging

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for organizer run identifiers.
	FieldRunID = "run_id"
	// FieldSource is the standardized structured logging key for the source file being processed.
	FieldSource = "source"
	// FieldError carries the error attached with Error.
	FieldError = "error"
)

type contextKey int

const (
	runIDKey contextKey = iota
	sourceKey
)

// WithRunID stores the organizer run identifier on ctx.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, strings.TrimSpace(runID))
}

// RunIDFromContext returns the run identifier stored on ctx.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithSource stores the source file path on ctx.
func WithSource(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, sourceKey, path)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if src, ok := ctx.Value(sourceKey).(string); ok && src != "" {
		fields = append(fields, slog.String(FieldSource, src))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
