package auth

import "context"

type contextKey string

const userIDContextKey contextKey = "auth.userID"

// ContextWithUserID attaches the authenticated user's id to the context.
// Set by the auth middleware after a successful token check.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}
