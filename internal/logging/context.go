package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	analysisIDKey contextKey = "analysis_id"
)

// GenerateRequestID returns a new random request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateAnalysisID returns a short ID used to correlate one analysis run.
func GenerateAnalysisID() string {
	return uuid.New().String()[:8]
}

// ContextWithRequestID returns a copy of ctx carrying the request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithAnalysisID returns a copy of ctx carrying the analysis ID.
func ContextWithAnalysisID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, analysisIDKey, id)
}

// AnalysisIDFromContext returns the analysis ID or "".
func AnalysisIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(analysisIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the global logger with request_id and analysis_id attached when
// they are present on ctx.
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := With()
	if id := RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	if id := AnalysisIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("analysis_id", id)
	}
	l := logCtx.Logger()
	return &l
}
