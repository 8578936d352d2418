package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ScenarioConfig describes one end-to-end form submission and its expected outcome
type ScenarioConfig struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Form        string              `yaml:"form"`
	Fields      map[string]string   `yaml:"fields"`
	Selections  map[string][]string `yaml:"selections"`
	Expected    ExpectedOutcome     `yaml:"expected"`
	File        string              `yaml:"-"`
}

// ExpectedOutcome is what the service must answer for a scenario
type ExpectedOutcome struct {
	Next       string          `yaml:"next"`
	AllValid   bool            `yaml:"all_valid"`
	PairsMatch bool            `yaml:"pairs_match"`
	Entries    []ExpectedEntry `yaml:"entries"`
	Messages   []string        `yaml:"messages"`
	Blocking   []string        `yaml:"blocking"`
}

// ExpectedEntry is a (field, kind) pair that must appear in the report
type ExpectedEntry struct {
	Field string `yaml:"field"`
	Kind  string `yaml:"kind"`
}

// BaseSignupFields is a sign-up submission that passes every rule; scenarios override it
func BaseSignupFields() map[string]string {
	return map[string]string{
		"username":    "jdoe42",
		"email":       "jdoe@example.org",
		"phone":       "555-123-4567",
		"enterPass":   "Abc!def1",
		"confirmPass": "Abc!def1",
	}
}

// BaseSignupSelections is the group part of BaseSignupFields
func BaseSignupSelections() map[string][]string {
	return map[string][]string{
		"gender":          {"other"},
		"birthday__month": {"7"},
		"birthday__day":   {"4"},
		"birthday__year":  {"1976"},
		"music":           {"jazz"},
	}
}

// Payload merges the scenario's overrides into the base submission.
// An override with an empty selection list clears that group.
func (s ScenarioConfig) Payload() map[string]interface{} {
	fields := BaseSignupFields()
	for name, value := range s.Fields {
		fields[name] = value
	}

	selections := BaseSignupSelections()
	for name, ids := range s.Selections {
		if ids == nil {
			ids = []string{}
		}
		selections[name] = ids
	}

	return map[string]interface{}{
		"fields":     fields,
		"selections": selections,
	}
}

// LoadScenarios reads every scenario file under dir/scenarios, sorted by file name
func LoadScenarios(dir string) ([]ScenarioConfig, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "scenarios", "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]ScenarioConfig, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
		}

		var scenario ScenarioConfig
		if err := yaml.Unmarshal(data, &scenario); err != nil {
			return nil, fmt.Errorf("failed to parse scenario %s: %w", path, err)
		}
		if scenario.Name == "" {
			scenario.Name = filepath.Base(path)
		}
		if scenario.Form == "" {
			scenario.Form = "signup"
		}
		scenario.File = path
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}
