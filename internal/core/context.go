package core

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const ctxKeyAnalysisID contextKey = "analysis_id"

// ContextWithAnalysisID attaches an analysis ID so downstream log entries
// can be correlated with it.
func ContextWithAnalysisID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKeyAnalysisID, id)
}

// AnalysisIDFromContext returns the analysis ID stored in ctx, if any.
func AnalysisIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKeyAnalysisID).(uuid.UUID)
	return id, ok
}
