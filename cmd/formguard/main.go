package main

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/redhat-data-and-ai/formguard/internal/api"
	"github.com/redhat-data-and-ai/formguard/internal/config"
	"github.com/redhat-data-and-ai/formguard/internal/logging"
	"github.com/redhat-data-and-ai/formguard/internal/rules"
)

func main() {
	cfg := config.Load()

	if err := logging.InitLogger(cfg.Logging.Level); err != nil {
		logging.Fatal("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	registry, err := buildRegistry(cfg)
	if err != nil {
		logging.Fatal("Invalid form rule configuration", zap.Error(err))
	}

	if _, ok := registry.GetTable(cfg.Forms.DefaultForm); !ok {
		logging.Fatal("Default form '%s' is not registered", cfg.Forms.DefaultForm)
	}

	app := api.NewApp(cfg, api.NewFormHandler(cfg, registry))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logging.Info("Shutting down")
		if err := app.Shutdown(); err != nil {
			logging.Error("Shutdown failed: %v", err)
		}
	}()

	logging.Info("Starting formguard",
		zap.String("port", cfg.Server.Port),
		zap.String("rules_mode", cfg.RulesMode()))

	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logging.Fatal("Server stopped: %v", err)
	}
}

// buildRegistry registers the built-in tables plus any tables from the configured rule file
func buildRegistry(cfg *config.Config) (*rules.TableRegistry, error) {
	registry := rules.NewRegistry()

	if cfg.HasRulesFile() {
		ruleConfig, err := config.LoadRuleConfig(cfg.Forms.RulesPath)
		if err != nil {
			return nil, err
		}
		if err := registry.LoadRuleConfig(ruleConfig); err != nil {
			return nil, err
		}
	}

	for _, name := range cfg.Forms.DisabledForms {
		if !registry.Disable(name) {
			logging.Warn("DISABLED_FORMS names unknown form: %s", name)
		}
	}

	return registry, nil
}
