package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Table is an immutable, ordered list of field rules
type Table struct {
	name  string
	rules []FieldRule
}

// NewTable checks the rules and returns a table holding its own copy of them.
// Every defect found is reported, not just the first.
func NewTable(name string, rules []FieldRule) (*Table, error) {
	var result *multierror.Error

	if strings.TrimSpace(name) == "" {
		result = multierror.Append(result, fmt.Errorf("table name cannot be empty"))
	}
	if len(rules) == 0 {
		result = multierror.Append(result, fmt.Errorf("table must declare at least one rule"))
	}

	// Inputs owned by pattern and group rules; match-pair rules may reference them freely
	owners := make(map[string]int)
	pairs := make(map[string]int)

	for i, rule := range rules {
		where := fmt.Sprintf("rules[%d]", i)
		if rule.Name != "" {
			where = fmt.Sprintf("rules[%d] (%s)", i, rule.Name)
		}

		if strings.TrimSpace(rule.Name) == "" {
			result = multierror.Append(result, fmt.Errorf("%s: name cannot be empty", where))
		}

		for _, err := range strayFields(rule) {
			result = multierror.Append(result, fmt.Errorf("%s: %w", where, err))
		}

		switch rule.Kind {
		case KindPattern:
			if rule.Pattern == "" {
				result = multierror.Append(result, fmt.Errorf("%s: pattern rule requires a pattern", where))
			} else if err := checkPattern(rule.Pattern); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", where, err))
			}
			result = claim(result, owners, rule.Name, i, where)

		case KindCompositePattern:
			if len(rule.Patterns) == 0 {
				result = multierror.Append(result, fmt.Errorf("%s: composite-pattern rule requires at least one pattern", where))
			}
			for j, pattern := range rule.Patterns {
				if pattern == "" {
					result = multierror.Append(result, fmt.Errorf("%s: patterns[%d] cannot be empty", where, j))
					continue
				}
				if err := checkPattern(pattern); err != nil {
					result = multierror.Append(result, fmt.Errorf("%s: patterns[%d]: %w", where, j, err))
				}
			}
			result = claim(result, owners, rule.Name, i, where)

		case KindPresenceGroup:
			if len(rule.Parts) == 1 {
				result = multierror.Append(result, fmt.Errorf("%s: a multi-part selector needs at least two parts", where))
			}
			result = claim(result, owners, rule.Name, i, where)
			for j, part := range rule.Parts {
				if strings.TrimSpace(part) == "" {
					result = multierror.Append(result, fmt.Errorf("%s: parts[%d] cannot be empty", where, j))
					continue
				}
				result = claim(result, owners, part, i, where)
			}

		case KindMatchPair:
			if strings.TrimSpace(rule.Match) == "" {
				result = multierror.Append(result, fmt.Errorf("%s: match-pair rule requires a field to match", where))
			} else if rule.Match == rule.Name {
				result = multierror.Append(result, fmt.Errorf("%s: match-pair rule compares %q with itself", where, rule.Name))
			}
			key := rule.Name + "\x00" + rule.Match
			if prev, exists := pairs[key]; exists {
				result = multierror.Append(result, fmt.Errorf("%s: duplicates the pair declared at rules[%d]", where, prev))
			} else {
				pairs[key] = i
			}

		default:
			result = multierror.Append(result, fmt.Errorf("%s: unknown kind %q, must be one of %v", where, rule.Kind, ValidKinds))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid rule table %q: %w", name, err)
	}

	copied := make([]FieldRule, len(rules))
	for i, rule := range rules {
		copied[i] = rule.clone()
	}
	return &Table{name: name, rules: copied}, nil
}

// MustTable is NewTable for built-in tables; it panics on a defective table
func MustTable(name string, rules []FieldRule) *Table {
	table, err := NewTable(name, rules)
	if err != nil {
		panic(err)
	}
	return table
}

// Name returns the table name
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of rules
func (t *Table) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the rules in declaration order
func (t *Table) Rules() []FieldRule {
	result := make([]FieldRule, len(t.rules))
	for i, rule := range t.rules {
		result[i] = rule.clone()
	}
	return result
}

// FieldNames returns every text input the table reads, in declaration order
func (t *Table) FieldNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, rule := range t.rules {
		switch rule.Kind {
		case KindPattern, KindCompositePattern:
			add(rule.Name)
		case KindMatchPair:
			add(rule.Name)
			add(rule.Match)
		}
	}
	return names
}

// GroupNames returns every option group the table reads, in declaration order.
// A multi-part selector contributes its parts rather than its own name.
func (t *Table) GroupNames() []string {
	var names []string
	for _, rule := range t.rules {
		if rule.Kind != KindPresenceGroup {
			continue
		}
		if rule.IsMultiPart() {
			names = append(names, rule.Parts...)
			continue
		}
		names = append(names, rule.Name)
	}
	return names
}

// checkPattern compiles a pattern once so defects surface at startup
func checkPattern(pattern string) error {
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("pattern %q does not compile: %w", pattern, err)
	}
	return nil
}

// strayFields reports settings that the rule's kind never reads
func strayFields(rule FieldRule) []error {
	if !rule.Kind.IsValid() {
		return nil
	}
	var errs []error
	if rule.Pattern != "" && rule.Kind != KindPattern {
		errs = append(errs, fmt.Errorf("pattern is only used by %s rules", KindPattern))
	}
	if len(rule.Patterns) > 0 && rule.Kind != KindCompositePattern {
		errs = append(errs, fmt.Errorf("patterns is only used by %s rules", KindCompositePattern))
	}
	if len(rule.Parts) > 0 && rule.Kind != KindPresenceGroup {
		errs = append(errs, fmt.Errorf("parts is only used by %s rules", KindPresenceGroup))
	}
	if rule.Kind != KindMatchPair {
		if rule.Match != "" {
			errs = append(errs, fmt.Errorf("match is only used by %s rules", KindMatchPair))
		}
		if rule.Message != "" {
			errs = append(errs, fmt.Errorf("message is only used by %s rules", KindMatchPair))
		}
	}
	return errs
}

// claim records that name is owned by rule i, reporting a duplicate otherwise
func claim(result *multierror.Error, owners map[string]int, name string, i int, where string) *multierror.Error {
	if name == "" {
		return result
	}
	if prev, exists := owners[name]; exists {
		return multierror.Append(result, fmt.Errorf("%s: %q is already declared by rules[%d]", where, name, prev))
	}
	owners[name] = i
	return result
}
