package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRegisterAndLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := registerUser(ctx, t, "mika@example.com", "testpass")
	assert.Equal(t, "Mika", session.User.FirstName)
	assert.Equal(t, "mika@example.com", session.User.Email)
	assert.Equal(t, "METRIC", session.User.UnitPreference)
	assert.Equal(t, 0, session.User.WeekStartsOn)

	// email already taken
	reqJson, err := json.Marshal(registerRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "mika@example.com",
		Password:  "testpass2",
	})
	require.NoError(t, err)
	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/users/register", serverEndpoint), bytes.NewBuffer(reqJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// fresh login works
	token := doLogin(ctx, t, "mika@example.com", "testpass")
	require.NotEmpty(t, token)

	// wrong password rejected
	loginReqJson, err := json.Marshal(loginRequest{
		Email:    "mika@example.com",
		Password: "wrongpass",
	})
	require.NoError(t, err)
	loginReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/a/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
	require.NoError(t, err)
	loginReq.Header.Set("User-Agent", "test-agent")
	loginReq.Header.Set("Content-Type", "application/json")
	loginResp, err := http.DefaultClient.Do(loginReq)
	require.NoError(t, err)
	defer loginResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, loginResp.StatusCode)
}

func (s *IntegrationTestSuite) TestLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registerUser(ctx, t, "logout@example.com", "testpass")
	token := doLogin(ctx, t, "logout@example.com", "testpass")

	// token works
	resp := authedRequest(ctx, t, token, "GET", "/users/me", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = authedRequest(ctx, t, token, "GET", "/a/logout", nil)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "logged-out", string(respBytes))

	// token no longer valid
	resp = authedRequest(ctx, t, token, "GET", "/users/me", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestUpdateProfile() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := registerUser(ctx, t, "profile@example.com", "testpass")

	updateJson := []byte(`{
		"heightCm": 182.5,
		"dateOfBirth": "1990-05-15",
		"gender": "OTHER",
		"unitPreference": "IMPERIAL",
		"weekStartsOn": 1
	}`)
	resp := authedRequest(ctx, t, session.Token, "PUT", "/users/me", updateJson)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated sessionUser
	require.NoError(t, json.Unmarshal(respBytes, &updated))
	require.NotNil(t, updated.HeightCm)
	assert.Equal(t, 182.5, *updated.HeightCm)
	require.NotNil(t, updated.DateOfBirth)
	assert.Equal(t, "1990-05-15", *updated.DateOfBirth)
	assert.Equal(t, "OTHER", updated.Gender)
	assert.Equal(t, "IMPERIAL", updated.UnitPreference)
	assert.Equal(t, 1, updated.WeekStartsOn)
	// untouched fields preserved
	assert.Equal(t, "Mika", updated.FirstName)
}
