package api

import (
	"fmt"

	fiber "github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/redhat-data-and-ai/formguard/internal/config"
	"github.com/redhat-data-and-ai/formguard/internal/logging"
	"github.com/redhat-data-and-ai/formguard/internal/rules"
	"github.com/redhat-data-and-ai/formguard/internal/validation"
)

// FormHandler serves form validation requests
type FormHandler struct {
	registry  *rules.TableRegistry
	validator *validation.Validator
	config    *config.Config
}

// FormSummary describes a served form table
type FormSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Fields      []string `json:"fields"`
	Groups      []string `json:"groups"`
}

// ValidateResponse is returned for every evaluated submission
type ValidateResponse struct {
	Form     string             `json:"form"`
	Next     validation.Outcome `json:"next"`
	Messages []string           `json:"messages"`
	Blocking []validation.Entry `json:"blocking"`
	Report   *validation.Report `json:"report"`
}

// NewFormHandler creates a handler over the given table registry
func NewFormHandler(cfg *config.Config, registry *rules.TableRegistry) *FormHandler {
	blankStatus := "disabled"
	if cfg.Forms.EnableBlankForm {
		blankStatus = "enabled"
	}
	logging.Info("Form handler initialized",
		zap.String("default_form", cfg.Forms.DefaultForm),
		zap.String("blank_form_endpoint", blankStatus),
		zap.Int("enabled_tables", len(registry.ListEnabledTables())))

	return &FormHandler{
		registry:  registry,
		validator: validation.NewValidator(),
		config:    cfg,
	}
}

// RegisterRoutes mounts the handler's routes on app
func (h *FormHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HandleHealth)
	app.Get("/forms", h.HandleListForms)
	app.Get("/forms/:name/blank", h.HandleBlankForm)
	app.Post("/forms/:name/validate", h.HandleValidate)
	app.Post("/validate", h.HandleValidate)
}

// HandleHealth reports service liveness
func (h *FormHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "healthy",
		"rules_mode": h.config.RulesMode(),
	})
}

// HandleListForms lists the served form tables
func (h *FormHandler) HandleListForms(c *fiber.Ctx) error {
	forms := make([]FormSummary, 0)
	for _, info := range h.registry.ListEnabledTables() {
		if h.config.IsFormDisabled(info.Name) {
			continue
		}
		forms = append(forms, FormSummary{
			Name:        info.Name,
			Description: info.Description,
			Version:     info.Version,
			Fields:      nonNil(info.Table.FieldNames()),
			Groups:      nonNil(info.Table.GroupNames()),
		})
	}
	return c.JSON(fiber.Map{"forms": forms})
}

// HandleBlankForm returns the cleared state of every input of a form
func (h *FormHandler) HandleBlankForm(c *fiber.Ctx) error {
	if !h.config.Forms.EnableBlankForm {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Blank form endpoint is disabled",
		})
	}

	info, err := h.lookupTable(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"form":  info.Name,
		"state": validation.NewBlankForm(info.Table),
	})
}

// HandleValidate evaluates a submitted form state.
// Validation failures are part of a successful response; only malformed requests are errors.
func (h *FormHandler) HandleValidate(c *fiber.Ctx) error {
	c.Set("Content-Type", "application/json")

	// Quick validation of content type
	if !c.Is("json") {
		contentType := c.Get("Content-Type")
		logging.Warn("Invalid content type: %s", contentType)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Content-Type must be application/json, got: %s", contentType),
		})
	}

	name := c.Params("name")
	if name == "" {
		name = h.config.Forms.DefaultForm
	}

	info, err := h.lookupTable(name)
	if err != nil {
		logging.Warn("Rejected validation request", zap.String("form", name), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	var form validation.FormState
	if err := c.BodyParser(&form); err != nil {
		logging.Error("Failed to parse form payload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Invalid JSON payload: %v", err),
		})
	}

	report := h.validator.ValidateForm(&form, info.Table)
	next := report.Outcome()

	logging.Debug("Form evaluated",
		zap.String("form", info.Name),
		zap.String("next", string(next)),
		zap.Int("missing", len(report.MissingEntries)),
		zap.Int("invalid", len(report.InvalidEntries)),
		zap.Bool("pairs_match", report.PairsMatch))

	blocking := report.Blocking()
	if blocking == nil {
		blocking = []validation.Entry{}
	}

	return c.JSON(ValidateResponse{
		Form:     info.Name,
		Next:     next,
		Messages: report.Messages(),
		Blocking: blocking,
		Report:   report,
	})
}

// lookupTable finds a served table by name
func (h *FormHandler) lookupTable(name string) (*rules.TableInfo, error) {
	info, ok := h.registry.GetTable(name)
	if !ok {
		return nil, fmt.Errorf("form '%s' not found", name)
	}
	if !info.Enabled || h.config.IsFormDisabled(name) {
		return nil, fmt.Errorf("form '%s' is disabled", name)
	}
	return info, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
