package core

import (
	"context"
	"log/slog"
)

type contextKey string

const ctxKeyOrigin contextKey = "origin"

// Origins recorded on store mutations.
const (
	OriginPage = "page"
	OriginAPI  = "api"
)

// ContextWithOrigin tags ctx with where a mutation came from.
func ContextWithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, ctxKeyOrigin, origin)
}

// OriginFromContext extracts the origin from context.
func OriginFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyOrigin).(string); ok {
		return v
	}
	return ""
}

// logFor returns the store logger with the origin of ctx, if any.
func (s *Store) logFor(ctx context.Context) *slog.Logger {
	if origin := OriginFromContext(ctx); origin != "" {
		return s.logger.With("origin", origin)
	}
	return s.logger
}
