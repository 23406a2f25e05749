package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleJSON struct {
	ID       int     `json:"id"`
	Date     string  `json:"date"`
	WeightKg float64 `json:"weightKg"`
	Notes    string  `json:"notes"`
}

type listWeightsResponse struct {
	Samples []sampleJSON `json:"samples"`
	Total   int          `json:"total"`
}

func (s *IntegrationTestSuite) TestWeights() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := registerUser(ctx, t, "weights@example.com", "testpass")
	token := session.Token

	// no samples yet
	resp := authedRequest(ctx, t, token, "GET", "/weights/latest", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	logWeight := func(date string, weightKg float64, notes string) sampleJSON {
		body, err := json.Marshal(map[string]interface{}{
			"date":     date,
			"weightKg": weightKg,
			"notes":    notes,
		})
		require.NoError(t, err)

		resp := authedRequest(ctx, t, token, "POST", "/weights", body)
		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(respBytes))

		var saved sampleJSON
		require.NoError(t, json.Unmarshal(respBytes, &saved))
		return saved
	}

	first := logWeight("2025-03-01", 82.4, "morning")
	assert.NotZero(t, first.ID)
	assert.Equal(t, 82.4, first.WeightKg)

	logWeight("2025-03-03", 82.1, "")
	logWeight("2025-03-05", 81.8, "")

	// same day overwrites
	overwritten := logWeight("2025-03-01", 82.6, "")
	assert.Equal(t, first.ID, overwritten.ID)
	assert.Equal(t, 82.6, overwritten.WeightKg)

	resp = authedRequest(ctx, t, token, "GET", "/weights", nil)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list listWeightsResponse
	require.NoError(t, json.Unmarshal(respBytes, &list))
	assert.Equal(t, 3, list.Total)
	require.Len(t, list.Samples, 3)
	assert.Equal(t, "2025-03-01", list.Samples[0].Date)
	assert.Equal(t, "2025-03-05", list.Samples[2].Date)

	// date range filter
	resp = authedRequest(ctx, t, token, "GET", "/weights?start_date=2025-03-02&end_date=2025-03-04", nil)
	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(respBytes, &list))
	assert.Equal(t, 1, list.Total)

	resp = authedRequest(ctx, t, token, "GET", "/weights/latest", nil)
	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var latest sampleJSON
	require.NoError(t, json.Unmarshal(respBytes, &latest))
	assert.Equal(t, "2025-03-05", latest.Date)

	resp = authedRequest(ctx, t, token, "GET", "/weights/date/2025-03-03", nil)
	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var byDay sampleJSON
	require.NoError(t, json.Unmarshal(respBytes, &byDay))
	assert.Equal(t, 82.1, byDay.WeightKg)

	resp = authedRequest(ctx, t, token, "DELETE", "/weights/date/2025-03-03", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = authedRequest(ctx, t, token, "GET", "/weights/date/2025-03-03", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// other users see nothing of this
	otherSession := registerUser(ctx, t, "weights-other@example.com", "testpass")
	resp = authedRequest(ctx, t, otherSession.Token, "GET", "/weights", nil)
	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(respBytes, &list))
	assert.Zero(t, list.Total)
}

func (s *IntegrationTestSuite) TestWeights_Graph() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := registerUser(ctx, t, "graph@example.com", "testpass")
	token := session.Token

	for _, sample := range []struct {
		date     string
		weightKg float64
	}{
		{"2025-03-01", 82.4},
		{"2025-03-02", 82.1},
		{"2025-03-03", 81.9},
	} {
		body, err := json.Marshal(map[string]interface{}{
			"date":     sample.date,
			"weightKg": sample.weightKg,
		})
		require.NoError(t, err)
		resp := authedRequest(ctx, t, token, "POST", "/weights", body)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := authedRequest(ctx, t, token, "GET", "/weights/graph?period=all", nil)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var graph struct {
		Period struct {
			Key string `json:"key"`
		} `json:"period"`
		Points []struct {
			Value float64 `json:"value"`
			Date  string  `json:"date"`
			Label string  `json:"label"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(respBytes, &graph))
	assert.Equal(t, "all", graph.Period.Key)
	require.Len(t, graph.Points, 3)
	assert.Equal(t, "2025-03-01", graph.Points[0].Date)
	assert.Equal(t, 82.4, graph.Points[0].Value)

	// unknown period key
	resp = authedRequest(ctx, t, token, "GET", "/weights/graph?period=decade", nil)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

}
