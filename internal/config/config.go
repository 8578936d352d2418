package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Forms   FormsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	BodyLimitKB  int // Maximum accepted request body size in KiB
	ReadTimeoutS int // Read timeout in seconds
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level string // debug, info, warn, error
}

// FormsConfig holds form rule table configuration
type FormsConfig struct {
	RulesPath       string   // Optional YAML file with additional form tables
	DefaultForm     string   // Table used when a request does not name one
	EnableBlankForm bool     // Expose the blank-form (clear) endpoint
	DisabledForms   []string // Tables registered but not served
}

// Load loads configuration from environment variables, reading a .env file first if one exists
func Load() *Config {
	// Missing .env is the normal case in containers
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			BodyLimitKB:  getEnvInt("BODY_LIMIT_KB", 64),
			ReadTimeoutS: getEnvInt("READ_TIMEOUT_SECONDS", 10),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Forms: FormsConfig{
			RulesPath:       getEnv("FORM_RULES_PATH", ""),
			DefaultForm:     getEnv("DEFAULT_FORM", "signup"),
			EnableBlankForm: getEnv("ENABLE_BLANK_FORM", "true") == "true",
			DisabledForms:   parseStringList(getEnv("DISABLED_FORMS", "")),
		},
	}
}

// HasRulesFile returns true if an external rule file is configured
func (c *Config) HasRulesFile() bool {
	return c.Forms.RulesPath != ""
}

// RulesMode returns a description of where form tables come from
func (c *Config) RulesMode() string {
	if c.HasRulesFile() {
		return "Built-in tables plus " + c.Forms.RulesPath
	}
	return "Built-in tables only"
}

// IsFormDisabled reports whether a registered table should not be served
func (c *Config) IsFormDisabled(name string) bool {
	for _, disabled := range c.Forms.DisabledForms {
		if strings.EqualFold(disabled, name) {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// parseStringList parses a comma-separated list of strings
func parseStringList(s string) []string {
	if s == "" {
		return []string{}
	}
	items := strings.Split(s, ",")
	result := make([]string, 0) // Initialize to empty slice, not nil
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
