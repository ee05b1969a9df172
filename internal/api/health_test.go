// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package api_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushost/api/internal/api"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func healthyDeps() api.HealthDependencies {
	return api.HealthDependencies{
		CheckDatabase:     func() error { return nil },
		CheckSessionStore: func() error { return nil },
	}
}

func decodeHealthBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHealthReport_Healthy verifies the composite report when every probe passes.
*/
func TestHealthReport_Healthy(t *testing.T) {
	handler := api.NewHealthHandler(healthyDeps(), "test", discardLogger())

	recorder := httptest.NewRecorder()
	handler.Report(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	body := decodeHealthBody(t, recorder)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "healthy", data["status"])

	services := data["services"].(map[string]any)
	database := services["database"].(map[string]any)
	assert.Equal(t, "up", database["status"])
	assert.NotEmpty(t, database["responseTime"])
	session := services["session"].(map[string]any)
	assert.Equal(t, "up", session["status"])
}

/*
TestHealthReport_DatabaseDown verifies the 503 unhealthy report.
*/
func TestHealthReport_DatabaseDown(t *testing.T) {
	deps := healthyDeps()
	deps.CheckDatabase = func() error { return errors.New("connection refused") }
	handler := api.NewHealthHandler(deps, "test", discardLogger())

	recorder := httptest.NewRecorder()
	handler.Report(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	body := decodeHealthBody(t, recorder)
	assert.Equal(t, false, body["success"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "unhealthy", data["status"])

	database := data["services"].(map[string]any)["database"].(map[string]any)
	assert.Equal(t, "down", database["status"])
	assert.Equal(t, "connection refused", database["error"])
}

/*
TestHealthReport_SessionStoreDown verifies that a Redis failure alone flips the report.
*/
func TestHealthReport_SessionStoreDown(t *testing.T) {
	deps := healthyDeps()
	deps.CheckSessionStore = func() error { return errors.New("redis unreachable") }
	handler := api.NewHealthHandler(deps, "test", discardLogger())

	recorder := httptest.NewRecorder()
	handler.Report(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	data := decodeHealthBody(t, recorder)["data"].(map[string]any)
	assert.Equal(t, "unhealthy", data["status"])
	assert.Equal(t, "up", data["services"].(map[string]any)["database"].(map[string]any)["status"])
}

/*
TestHealthLive verifies the liveness probe ignores dependencies entirely.
*/
func TestHealthLive(t *testing.T) {
	deps := api.HealthDependencies{
		CheckDatabase:     func() error { return errors.New("down") },
		CheckSessionStore: func() error { return errors.New("down") },
	}
	handler := api.NewHealthHandler(deps, "test", discardLogger())

	recorder := httptest.NewRecorder()
	handler.Live(recorder, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHealthReady verifies readiness tracks the database.
*/
func TestHealthReady(t *testing.T) {
	deps := healthyDeps()
	handler := api.NewHealthHandler(deps, "test", discardLogger())

	recorder := httptest.NewRecorder()
	handler.Ready(recorder, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	deps.CheckDatabase = func() error { return errors.New("connection refused") }
	handler = api.NewHealthHandler(deps, "test", discardLogger())

	recorder = httptest.NewRecorder()
	handler.Ready(recorder, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	body := decodeHealthBody(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not ready", body["message"])
}
