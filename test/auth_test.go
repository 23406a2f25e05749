package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type sessionUser struct {
	ID             int      `json:"id"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	HeightCm       *float64 `json:"heightCm"`
	DateOfBirth    *string  `json:"dateOfBirth"`
	Gender         string   `json:"gender"`
	UnitPreference string   `json:"unitPreference"`
	WeekStartsOn   int      `json:"weekStartsOn"`
	AvatarURL      *string  `json:"avatarUrl"`
}

type sessionResponse struct {
	User  sessionUser `json:"user"`
	Token string      `json:"token"`
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerUser creates a fresh account and returns the session
// received on registration.
func registerUser(ctx context.Context, t *testing.T, email, password string) sessionResponse {
	t.Helper()

	reqJson, err := json.Marshal(registerRequest{
		FirstName: "Mika",
		LastName:  "Tracker",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/users/register", serverEndpoint), bytes.NewBuffer(reqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, respBytes)

	var session sessionResponse
	require.NoError(t, json.Unmarshal(respBytes, &session))
	require.NotEmpty(t, session.Token)

	return session
}

func doLogin(ctx context.Context, t *testing.T, email, password string) string {
	t.Helper()

	loginReqJson, err := json.Marshal(loginRequest{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, respBytes)

	var session sessionResponse
	require.NoError(t, json.Unmarshal(respBytes, &session))
	require.NotEmpty(t, session.Token)

	return session.Token
}

// authedRequest fires a request with the session token set and
// returns the response.
func authedRequest(ctx context.Context, t *testing.T, token, method, path string, body []byte) *http.Response {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bodyReader)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-WT-TOKEN", token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}
