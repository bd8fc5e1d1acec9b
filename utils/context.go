package utils

import (
	"context"
)

type contextKey string

const (
	actorIDKey   contextKey = "actorID"
	actorRoleKey contextKey = "actorRole"
)

// WithActor stores the authenticated user's identity in the context so
// downstream services can attribute audit entries.
func WithActor(ctx context.Context, userID uint, role string) context.Context {
	ctx = context.WithValue(ctx, actorIDKey, userID)
	return context.WithValue(ctx, actorRoleKey, role)
}

// ActorIDFromContext returns the authenticated user's ID, nil for anonymous
// or machine-to-machine calls.
func ActorIDFromContext(ctx context.Context) *uint {
	if id, ok := ctx.Value(actorIDKey).(uint); ok {
		return &id
	}
	return nil
}

// ActorRoleFromContext returns the authenticated user's role, empty when unknown.
func ActorRoleFromContext(ctx context.Context) string {
	if role, ok := ctx.Value(actorRoleKey).(string); ok {
		return role
	}
	return ""
}
