package auth

import (
	"context"
	"errors"
)

var ErrNoSession = errors.New("no session")

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

// Checker resolves a session token to the user it belongs to.
// Returns ErrNoSession when the token is unknown or expired.
type Checker interface {
	SessionUserID(ctx context.Context, token string) (int, error)
}
