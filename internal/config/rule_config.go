package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FormRuleConfig is the top-level structure of a form rules YAML file
type FormRuleConfig struct {
	Forms []FormConfig `yaml:"forms" validate:"required,min=1,dive"`
}

// FormConfig declares one named rule table
type FormConfig struct {
	Name        string            `yaml:"name" validate:"required"`
	Description string            `yaml:"description"`
	Version     string            `yaml:"version"`
	Enabled     *bool             `yaml:"enabled"`
	Rules       []FieldRuleConfig `yaml:"rules" validate:"required,min=1,dive"`
}

// FieldRuleConfig declares one field or group rule
type FieldRuleConfig struct {
	Name     string   `yaml:"name" validate:"required"`
	Label    string   `yaml:"label"`
	Kind     string   `yaml:"kind" validate:"required,oneof=pattern composite-pattern presence-group match-pair"`
	Pattern  string   `yaml:"pattern" validate:"required_if=Kind pattern"`
	Patterns []string `yaml:"patterns" validate:"required_if=Kind composite-pattern,dive,required"`
	Parts    []string `yaml:"parts" validate:"omitempty,min=2,dive,required"`
	Match    string   `yaml:"match" validate:"required_if=Kind match-pair"`
	Message  string   `yaml:"message"`
}

// IsEnabled returns whether the form is enabled, defaulting to true when unset
func (f FormConfig) IsEnabled() bool {
	return f.Enabled == nil || *f.Enabled
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	// Report YAML keys rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadRuleConfig reads and checks a form rules YAML file
func LoadRuleConfig(path string) (*FormRuleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule config %s: %w", path, err)
	}

	cfg, err := ParseRuleConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid rule config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseRuleConfig parses form rules YAML and checks its shape
func ParseRuleConfig(data []byte) (*FormRuleConfig, error) {
	var cfg FormRuleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := structValidator.Struct(&cfg); err != nil {
		return nil, describeValidationError(err)
	}

	return &cfg, nil
}

// describeValidationError flattens validator output into one readable error
func describeValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		// Namespace is FormRuleConfig.forms[0].rules[1].kind; drop the root type
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}

		switch fe.Tag() {
		case "required", "required_if":
			messages = append(messages, fmt.Sprintf("%s: is required", field))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s: must be one of [%s], found: %v", field, fe.Param(), fe.Value()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s: must have at least %s entries", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s: failed %s check", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(messages, "; "))
}
