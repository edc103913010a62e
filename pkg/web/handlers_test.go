package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdraft/flowdraft/pkg/generator"
	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/registry"
	"github.com/flowdraft/flowdraft/pkg/templates"
	"github.com/flowdraft/flowdraft/pkg/web"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	reg := registry.NewRegistry(slog.Default())
	reg.RegisterDefaultTypes()

	library := templates.NewLibrary()
	require.NoError(t, library.RegisterBuiltin())

	gen := generator.NewGenerator(reg, library, slog.Default())
	validate := validator.New(validator.WithRequiredStructEnabled())

	handlers := web.NewAPIHandlers(gen, reg, library, validate, nil)

	app := fiber.New()

	w := app.Group("/workflows")
	w.Post("/generate", handlers.GenerateWorkflow)
	w.Post("/validate", handlers.ValidateWorkflow)

	app.Get("/node-types", handlers.ListNodeTypes)
	app.Get("/templates", handlers.ListTemplates)
	app.Get("/health", handlers.HealthCheck)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestGenerateWorkflowEndpoint(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/workflows/generate", web.GenerateWorkflowRequest{
		Description: "send a slack message when a webhook is received",
		Trigger:     "webhook",
		Complexity:  "simple",
	})
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result generator.Result

	decodeBody(t, resp, &result)
	require.NotNil(t, result.Workflow)
	assert.NotEmpty(t, result.Workflow.Nodes)
	assert.Equal(t, registry.TypeWebhook, result.Workflow.Nodes[0].Type)
	assert.True(t, result.Report.Valid)
}

func TestGenerateWorkflowEmptyDescription(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/workflows/generate", web.GenerateWorkflowRequest{})
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result generator.Result

	decodeBody(t, resp, &result)
	assert.GreaterOrEqual(t, len(result.Workflow.Nodes), 2)
}

func TestGenerateWorkflowInvalidTrigger(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/workflows/generate", web.GenerateWorkflowRequest{
		Description: "do something",
		Trigger:     "carrier-pigeon",
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateWorkflowInvalidJSON(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/workflows/generate", bytes.NewBufferString("not-json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateWorkflowRejectedDescription(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/workflows/generate", web.GenerateWorkflowRequest{
		Description: strings.Repeat("<script>alert(1)</script> ", 5),
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestValidateWorkflowEndpoint(t *testing.T) {
	app := setupTestApp(t)

	workflow := &models.Workflow{
		Name: "Disconnected",
		Nodes: []*models.WorkflowNode{
			{ID: "1", Name: "A", Type: registry.TypeWebhook, TypeVersion: 2, Parameters: registry.DefaultParameters(registry.TypeWebhook)},
			{ID: "2", Name: "B", Type: registry.TypeSet, TypeVersion: 3, Parameters: map[string]any{}},
			{ID: "3", Name: "C", Type: registry.TypeSet, TypeVersion: 3, Parameters: map[string]any{}},
		},
		Connections: models.ConnectionMap{},
		Settings:    map[string]any{},
	}

	resp := postJSON(t, app, "/workflows/validate", web.ValidateWorkflowRequest{
		Workflow: workflow,
		Repair:   true,
	})
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response web.ValidateWorkflowResponse

	decodeBody(t, resp, &response)
	assert.False(t, response.Report.Valid)
	require.NotNil(t, response.Repaired)
	require.NotNil(t, response.RepairedReport)
	assert.True(t, response.RepairedReport.Valid)
	assert.NotEmpty(t, response.Repaired.Connections)
}

func TestValidateWorkflowMissingBody(t *testing.T) {
	app := setupTestApp(t)

	resp := postJSON(t, app, "/workflows/validate", web.ValidateWorkflowRequest{})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListNodeTypes(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/node-types", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response struct {
		NodeTypes  []web.NodeTypeResponse `json:"node_types"`
		TotalCount int                    `json:"total_count"`
	}

	decodeBody(t, resp, &response)
	assert.NotEmpty(t, response.NodeTypes)
	assert.Equal(t, len(response.NodeTypes), response.TotalCount)

	hasWebhook := false

	for _, nodeType := range response.NodeTypes {
		if nodeType.Type == registry.TypeWebhook {
			hasWebhook = true

			assert.Equal(t, string(models.CategoryTrigger), nodeType.Category)
		}
	}

	assert.True(t, hasWebhook)
}

func TestListTemplates(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response struct {
		Templates  []web.TemplateResponse `json:"templates"`
		TotalCount int                    `json:"total_count"`
	}

	decodeBody(t, resp, &response)
	assert.NotEmpty(t, response.Templates)

	for _, template := range response.Templates {
		assert.NotEmpty(t, template.ID)
		assert.NotEmpty(t, template.NodeTypes)
	}
}

func TestHealthCheck(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var response map[string]any

	decodeBody(t, resp, &response)
	assert.Equal(t, "healthy", response["status"])
}
