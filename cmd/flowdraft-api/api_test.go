package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdraft/flowdraft/pkg/cache"
	flowcmd "github.com/flowdraft/flowdraft/pkg/cmd"
	"github.com/flowdraft/flowdraft/pkg/generator"
	"github.com/flowdraft/flowdraft/pkg/registry"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := slog.Default()

	api := NewAPI(
		logger,
		flowcmd.NewRegistry(logger),
		flowcmd.NewLibrary(logger, ""),
		cache.NewMemory(),
		nil,
		nil,
		false,
	)

	app, err := api.App(context.Background())
	require.NoError(t, err)

	return app
}

func TestAPI_RootEndpoint(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Flowdraft API", string(body))
}

func TestAPI_Liveness(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_GenerateEndpoint(t *testing.T) {
	app := setupTestApp(t)

	payload, err := json.Marshal(map[string]any{
		"description": "send a slack message when a webhook is received",
		"trigger":     "webhook",
		"complexity":  "simple",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/workflows/generate", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result generator.Result

	require.NoError(t, json.Unmarshal(body, &result))
	require.NotNil(t, result.Workflow)
	assert.Equal(t, registry.TypeWebhook, result.Workflow.Nodes[0].Type)
}
