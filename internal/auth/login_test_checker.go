package auth

import "context"

type LoginTestChecker struct {
	LoggedSessions map[string]int
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]int{},
	}
}

func (c *LoginTestChecker) SessionUserID(_ context.Context, token string) (int, error) {
	userID, ok := c.LoggedSessions[token]
	if !ok {
		return 0, ErrNoSession
	}
	return userID, nil
}
