package api

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/redhat-data-and-ai/formguard/internal/config"
	"github.com/redhat-data-and-ai/formguard/internal/logging"
)

// NewApp creates the fiber application with all form routes mounted
func NewApp(cfg *config.Config, handler *FormHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimitKB * 1024,
		ReadTimeout:           time.Duration(cfg.Server.ReadTimeoutS) * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				logging.Error("Request failed: %v", err)
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	// A panicking rule table fails the request, not the process
	app.Use(recover.New())

	handler.RegisterRoutes(app)
	return app
}
