package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type goalJSON struct {
	StartWeightKg  float64 `json:"startWeightKg"`
	StartDate      string  `json:"startDate"`
	TargetWeightKg float64 `json:"targetWeightKg"`
	TargetDate     string  `json:"targetDate"`
}

func (s *IntegrationTestSuite) TestGoal() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := registerUser(ctx, t, "goal@example.com", "testpass")
	token := session.Token

	// no goal yet
	resp := authedRequest(ctx, t, token, "GET", "/goal", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	goal := goalJSON{
		StartWeightKg:  85,
		StartDate:      "2025-01-01",
		TargetWeightKg: 75,
		TargetDate:     "2025-12-31",
	}
	goalBytes, err := json.Marshal(goal)
	require.NoError(t, err)

	resp = authedRequest(ctx, t, token, "POST", "/goal", goalBytes)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// only one goal per user
	resp = authedRequest(ctx, t, token, "POST", "/goal", goalBytes)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = authedRequest(ctx, t, token, "GET", "/goal", nil)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var retrieved goalJSON
	require.NoError(t, json.Unmarshal(respBytes, &retrieved))
	assert.Equal(t, goal, retrieved)

	goal.TargetWeightKg = 72
	goalBytes, err = json.Marshal(goal)
	require.NoError(t, err)
	resp = authedRequest(ctx, t, token, "PUT", "/goal", goalBytes)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = authedRequest(ctx, t, token, "GET", "/goal", nil)
	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(respBytes, &retrieved))
	assert.Equal(t, 72.0, retrieved.TargetWeightKg)

	resp = authedRequest(ctx, t, token, "DELETE", "/goal", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = authedRequest(ctx, t, token, "GET", "/goal", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestGoalPace() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := registerUser(ctx, t, "pace@example.com", "testpass")
	token := session.Token

	// pace without a goal
	resp := authedRequest(ctx, t, token, "GET", "/goal/pace", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	goalBytes, err := json.Marshal(goalJSON{
		StartWeightKg:  85,
		StartDate:      "2025-01-01",
		TargetWeightKg: 75,
		TargetDate:     "2099-12-31",
	})
	require.NoError(t, err)
	resp = authedRequest(ctx, t, token, "POST", "/goal", goalBytes)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = authedRequest(ctx, t, token, "GET", "/goal/pace?period=month&current_weight=80", nil)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pace struct {
		Achievable       bool    `json:"achievable"`
		RequiredChangeKg float64 `json:"requiredChangePerPeriod"`
		RemainingPeriods float64 `json:"remainingPeriods"`
	}
	require.NoError(t, json.Unmarshal(respBytes, &pace))
	assert.True(t, pace.Achievable)
	assert.Greater(t, pace.RemainingPeriods, 0.0)
	assert.Greater(t, pace.RequiredChangeKg, 0.0)

	// bogus period key
	resp = authedRequest(ctx, t, token, "GET", "/goal/pace?period=decade", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
