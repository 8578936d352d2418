package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/redhat-data-and-ai/formguard/internal/config"
	"github.com/redhat-data-and-ai/formguard/internal/logging"
	"github.com/redhat-data-and-ai/formguard/internal/rules"
)

func init() {
	logging.SetLogger(zap.NewNop())
}

func createTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:        "3000",
			BodyLimitKB: 64,
		},
		Forms: config.FormsConfig{
			DefaultForm:     rules.SignupTableName,
			EnableBlankForm: true,
			DisabledForms:   []string{},
		},
	}
}

func createTestApp(t *testing.T, cfg *config.Config, registry *rules.TableRegistry) *fiber.App {
	t.Helper()
	if registry == nil {
		registry = rules.NewRegistry()
	}
	return NewApp(cfg, NewFormHandler(cfg, registry))
}

func validSignupPayload() map[string]interface{} {
	return map[string]interface{}{
		"fields": map[string]string{
			"username":    "jdoe42",
			"email":       "jdoe@example.com",
			"phone":       "555-123-4567",
			"enterPass":   "Abc!def1",
			"confirmPass": "Abc!def1",
		},
		"selections": map[string][]string{
			"gender":          {"male"},
			"birthday__month": {"1"},
			"birthday__day":   {"31"},
			"birthday__year":  {"2010"},
			"music":           {"classical"},
		},
	}
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body []byte, contentType string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", string(raw))
	return resp.StatusCode, decoded
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return doRequest(t, app, "POST", path, body, "application/json")
}

func TestHandleHealth(t *testing.T) {
	app := createTestApp(t, createTestConfig(), nil)

	status, body := doRequest(t, app, "GET", "/health", nil, "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "Built-in tables only", body["rules_mode"])
}

func TestHandleValidate_Proceed(t *testing.T) {
	app := createTestApp(t, createTestConfig(), nil)

	status, body := postJSON(t, app, "/forms/signup/validate", validSignupPayload())

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "signup", body["form"])
	assert.Equal(t, "proceed", body["next"])
	assert.Empty(t, body["messages"])
	assert.Empty(t, body["blocking"])

	report := body["report"].(map[string]interface{})
	assert.Equal(t, true, report["all_valid"])
	assert.Equal(t, true, report["pairs_match"])
}

func TestHandleValidate_DefaultForm(t *testing.T) {
	app := createTestApp(t, createTestConfig(), nil)

	status, body := postJSON(t, app, "/validate", validSignupPayload())

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "signup", body["form"])
	assert.Equal(t, "proceed", body["next"])
}

func TestHandleValidate_FixEntries(t *testing.T) {
	app := createTestApp(t, createTestConfig(), nil)

	payload := validSignupPayload()
	fields := payload["fields"].(map[string]string)
	fields["username"] = "ab1"
	fields["phone"] = ""

	status, body := postJSON(t, app, "/forms/signup/validate", payload)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "fix_entries", body["next"])
	assert.Equal(t, []interface{}{"Please enter a valid username", "Please enter phone number"}, body["messages"])

	report := body["report"].(map[string]interface{})
	assert.Equal(t, false, report["all_valid"])
	invalid := report["invalid_entries"].([]interface{})
	require.Len(t, invalid, 1)
	assert.Equal(t, map[string]interface{}{
		"field":   "username",
		"kind":    "invalid",
		"message": "Please enter a valid username",
	}, invalid[0])
}

func TestHandleValidate_Blocked(t *testing.T) {
	app := createTestApp(t, createTestConfig(), nil)

	payload := validSignupPayload()
	payload["fields"].(map[string]string)["confirmPass"] = "different"

	status, body := postJSON(t, app, "/forms/signup/validate", payload)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "blocked", body["next"])
	blocking := body["blocking"].([]interface{})
	require.Len(t, blocking, 1)
	assert.Equal(t, "Passwords do not match", blocking[0].(map[string]interface{})["message"])
}

func TestHandleValidate_RequestErrors(t *testing.T) {
	cfg := createTestConfig()
	cfg.Forms.DisabledForms = []string{"newsletter"}

	registry := rules.NewRegistry()
	require.NoError(t, registry.RegisterTable(&rules.TableInfo{
		Name:    "newsletter",
		Enabled: true,
		Table:   rules.MustTable("newsletter", []rules.FieldRule{{Name: "email", Kind: rules.KindPattern, Pattern: rules.EmailPattern}}),
	}))
	app := createTestApp(t, cfg, registry)

	tests := []struct {
		name         string
		path         string
		body         string
		contentType  string
		expectStatus int
		expectError  string
	}{
		{"wrong content type", "/forms/signup/validate", "{}", "text/plain", fiber.StatusBadRequest, "Content-Type must be application/json"},
		{"malformed JSON", "/forms/signup/validate", "{", "application/json", fiber.StatusBadRequest, "Invalid JSON payload"},
		{"unknown form", "/forms/checkout/validate", "{}", "application/json", fiber.StatusNotFound, "form 'checkout' not found"},
		{"disabled form", "/forms/newsletter/validate", "{}", "application/json", fiber.StatusNotFound, "form 'newsletter' is disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, "POST", tt.path, []byte(tt.body), tt.contentType)
			assert.Equal(t, tt.expectStatus, status)
			assert.Contains(t, body["error"], tt.expectError)
		})
	}
}

func TestHandleValidate_EmptyBodyReportsEverythingMissing(t *testing.T) {
	app := createTestApp(t, createTestConfig(), nil)

	status, body := doRequest(t, app, "POST", "/forms/signup/validate", []byte("{}"), "application/json")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "fix_entries", body["next"])
	report := body["report"].(map[string]interface{})
	assert.Len(t, report["missing_entries"], 7)
	assert.Empty(t, report["invalid_entries"])
}

func TestHandleBlankForm(t *testing.T) {
	app := createTestApp(t, createTestConfig(), nil)

	status, body := doRequest(t, app, "GET", "/forms/signup/blank", nil, "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "signup", body["form"])
	state := body["state"].(map[string]interface{})
	fields := state["fields"].(map[string]interface{})
	assert.Len(t, fields, 5)
	assert.Equal(t, "", fields["confirmPass"])
	selections := state["selections"].(map[string]interface{})
	assert.Len(t, selections, 5)
	assert.Equal(t, []interface{}{}, selections["birthday__year"])
}

func TestHandleBlankForm_Errors(t *testing.T) {
	app := createTestApp(t, createTestConfig(), nil)
	status, body := doRequest(t, app, "GET", "/forms/unknown/blank", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "form 'unknown' not found", body["error"])

	cfg := createTestConfig()
	cfg.Forms.EnableBlankForm = false
	app = createTestApp(t, cfg, nil)
	status, body = doRequest(t, app, "GET", "/forms/signup/blank", nil, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.True(t, strings.Contains(body["error"].(string), "disabled"))
}

func TestHandleListForms(t *testing.T) {
	registry := rules.NewRegistry()
	require.NoError(t, registry.RegisterTable(&rules.TableInfo{
		Name:    "archived",
		Enabled: false,
		Table:   rules.MustTable("archived", []rules.FieldRule{{Name: "a", Kind: rules.KindPresenceGroup}}),
	}))
	app := createTestApp(t, createTestConfig(), registry)

	status, body := doRequest(t, app, "GET", "/forms", nil, "")

	assert.Equal(t, fiber.StatusOK, status)
	forms := body["forms"].([]interface{})
	require.Len(t, forms, 1)
	signup := forms[0].(map[string]interface{})
	assert.Equal(t, "signup", signup["name"])
	assert.Equal(t, "1.0.0", signup["version"])
	assert.Len(t, signup["fields"], 5)
	assert.Len(t, signup["groups"], 5)
}
