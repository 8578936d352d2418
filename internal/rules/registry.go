package rules

import (
	"fmt"
	"sort"
	"sync"

	"github.com/redhat-data-and-ai/formguard/internal/config"
	"github.com/redhat-data-and-ai/formguard/internal/logging"
)

// TableInfo contains metadata about a registered rule table
type TableInfo struct {
	Name        string // Table identifier
	Description string // Human-readable description
	Version     string // Table version
	Enabled     bool   // Whether the table is served
	BuiltIn     bool   // Shipped with the binary; a rule file may replace it
	Table       *Table // The rules
}

// TableRegistry manages the available rule tables
type TableRegistry struct {
	mu     sync.RWMutex
	tables map[string]*TableInfo
}

// NewRegistry creates a registry holding the built-in tables
func NewRegistry() *TableRegistry {
	registry := NewEmptyRegistry()

	// Register built-in tables
	registry.registerBuiltInTables()

	return registry
}

// NewEmptyRegistry creates a registry without built-in tables
func NewEmptyRegistry() *TableRegistry {
	return &TableRegistry{
		tables: make(map[string]*TableInfo),
	}
}

// registerBuiltInTables registers all built-in tables
func (r *TableRegistry) registerBuiltInTables() {
	_ = r.RegisterTable(&TableInfo{
		Name:        SignupTableName,
		Description: "Account sign-up: username, email, phone, password, gender, birthday and favorite music",
		Version:     "1.0.0",
		Enabled:     true,
		BuiltIn:     true,
		Table:       SignupTable(),
	})
}

// RegisterTable registers a new table in the registry
func (r *TableRegistry) RegisterTable(info *TableInfo) error {
	if info.Name == "" {
		return fmt.Errorf("table name cannot be empty")
	}

	if info.Table == nil {
		return fmt.Errorf("table '%s' has no rules", info.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[info.Name]; exists {
		return fmt.Errorf("table '%s' is already registered", info.Name)
	}

	r.tables[info.Name] = info
	logging.Info("Registered form table: %s (rules: %d, enabled: %t)", info.Name, info.Table.Len(), info.Enabled)

	return nil
}

// GetTable returns table info by name
func (r *TableRegistry) GetTable(name string) (*TableInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, exists := r.tables[name]
	return info, exists
}

// ListTables returns all registered tables
func (r *TableRegistry) ListTables() map[string]*TableInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy to prevent external modification
	result := make(map[string]*TableInfo)
	for name, info := range r.tables {
		result[name] = info
	}
	return result
}

// ListEnabledTables returns only enabled tables, sorted by name
func (r *TableRegistry) ListEnabledTables() []*TableInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*TableInfo, 0, len(r.tables))
	for _, info := range r.tables {
		if info.Enabled {
			result = append(result, info)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Disable marks a registered table as not served.
// The stored entry is replaced rather than mutated, so TableInfo values already
// handed out by GetTable or ListEnabledTables never change underneath a reader.
func (r *TableRegistry) Disable(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	info, exists := r.tables[name]
	if !exists {
		return false
	}
	disabled := *info
	disabled.Enabled = false
	r.tables[name] = &disabled
	logging.Info("Disabled form table: %s", name)
	return true
}

// overrideBuiltIn swaps a built-in table for a rule-file table of the same name.
// It reports false when name is free or holds a table that is not built in.
func (r *TableRegistry) overrideBuiltIn(info *TableInfo) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.tables[info.Name]
	if !exists || !existing.BuiltIn {
		return false
	}
	r.tables[info.Name] = info
	logging.Info("Rule config overrides built-in form table: %s (rules: %d -> %d, enabled: %t)",
		info.Name, existing.Table.Len(), info.Table.Len(), info.Enabled)
	return true
}

// LoadRuleConfig builds and registers every table declared in a rule file.
// A declared table replaces a built-in table of the same name; declaring the
// same name twice in one file is an error.
// It stops at the first defective table; tables registered before it stay registered.
func (r *TableRegistry) LoadRuleConfig(cfg *config.FormRuleConfig) error {
	if cfg == nil {
		return fmt.Errorf("rule config cannot be nil")
	}

	for _, form := range cfg.Forms {
		table, err := NewTable(form.Name, toFieldRules(form.Rules))
		if err != nil {
			return err
		}

		version := form.Version
		if version == "" {
			version = "1.0.0"
		}

		info := &TableInfo{
			Name:        form.Name,
			Description: form.Description,
			Version:     version,
			Enabled:     form.IsEnabled(),
			Table:       table,
		}
		if r.overrideBuiltIn(info) {
			continue
		}
		if err := r.RegisterTable(info); err != nil {
			return err
		}
	}

	logging.Info("Loaded %d form tables from rule config", len(cfg.Forms))
	return nil
}

// toFieldRules converts YAML rule declarations into field rules
func toFieldRules(configs []config.FieldRuleConfig) []FieldRule {
	result := make([]FieldRule, len(configs))
	for i, c := range configs {
		result[i] = FieldRule{
			Name:     c.Name,
			Label:    c.Label,
			Kind:     Kind(c.Kind),
			Pattern:  c.Pattern,
			Patterns: c.Patterns,
			Parts:    c.Parts,
			Match:    c.Match,
			Message:  c.Message,
		}
	}
	return result
}
