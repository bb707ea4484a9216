package userctx

import "context"

// Context key type
type contextKey string

const actorIDKey contextKey = "actor_id"
const roleKey contextKey = "role"

// WithActor adds the authenticated user's id to the context. Mutating
// repository calls read it for audit attribution.
func WithActor(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, actorIDKey, userID)
}

// ActorID retrieves the authenticated user's id from the context, or
// nil when the operation has no authenticated principal.
func ActorID(ctx context.Context) *int {
	if id, ok := ctx.Value(actorIDKey).(int); ok {
		return &id
	}
	return nil
}

// WithRole adds the authenticated user's role to the context
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

// Role retrieves the authenticated user's role from the context
func Role(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey).(string); ok {
		return role
	}
	return ""
}
