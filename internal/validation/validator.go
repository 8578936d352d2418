package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/redhat-data-and-ai/formguard/internal/rules"
)

// Validator evaluates form input against a rule table. It holds no state and is safe for concurrent use.
type Validator struct{}

// NewValidator creates a new form validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate evaluates every rule of table in declaration order.
// Fields and groups absent from values or selections are treated as empty.
func (v *Validator) Validate(values map[string]string, selections map[string][]string, table *rules.Table) *Report {
	if table == nil {
		panic("validation: nil rule table")
	}

	report := NewReport()

	for _, rule := range table.Rules() {
		switch rule.Kind {
		case rules.KindPattern, rules.KindCompositePattern:
			v.validateField(rule, values[rule.Name], report)
		case rules.KindPresenceGroup:
			v.validateGroup(rule, selections, report)
		case rules.KindMatchPair:
			v.validatePair(rule, values, report)
		default:
			// NewTable rejects unknown kinds, so reaching here means the table was built by hand
			panic(fmt.Sprintf("validation: rule %q has unknown kind %q", rule.Name, rule.Kind))
		}
	}

	return report
}

// ValidateForm validates a collected form state
func (v *Validator) ValidateForm(form *FormState, table *rules.Table) *Report {
	if form == nil {
		form = &FormState{}
	}
	return v.Validate(form.Fields, form.Selections, table)
}

// validateField checks presence, then the field's pattern or patterns
func (v *Validator) validateField(rule rules.FieldRule, value string, report *Report) {
	label := rule.DisplayLabel()

	if value == "" {
		report.AddMissing(rule.Name, fmt.Sprintf("Please enter %s", label))
		return
	}

	patterns := rule.Patterns
	if rule.Kind == rules.KindPattern {
		patterns = []string{rule.Pattern}
	}

	for _, pattern := range patterns {
		if !IsPatternSatisfied(value, pattern) {
			// One message per field regardless of how many sub-patterns fail
			report.AddInvalid(rule.Name, fmt.Sprintf("Please enter a valid %s", label))
			return
		}
	}
}

// validateGroup checks an option group or every part of a multi-part selector
func (v *Validator) validateGroup(rule rules.FieldRule, selections map[string][]string, report *Report) {
	label := rule.DisplayLabel()

	if !rule.IsMultiPart() {
		if !hasSelection(selections[rule.Name]) {
			report.AddMissing(rule.Name, fmt.Sprintf("Please select an option for %s", label))
		}
		return
	}

	selected := 0
	for _, part := range rule.Parts {
		if hasSelection(selections[part]) {
			selected++
		}
	}

	switch {
	case selected == 0:
		report.AddMissing(rule.Name, fmt.Sprintf("Please select a %s", label))
	case selected < len(rule.Parts):
		report.AddInvalid(rule.Name, fmt.Sprintf("Please select a complete %s", label))
	}
}

// validatePair compares two field values for exact equality
func (v *Validator) validatePair(rule rules.FieldRule, values map[string]string, report *Report) {
	if values[rule.Name] != values[rule.Match] {
		report.AddMismatch(rule.Name, rule.MismatchMessage())
	}
}

// IsPatternSatisfied reports whether pattern matches anywhere in value.
// The pattern is compiled on every call; a pattern that does not compile is a programming error and panics.
func IsPatternSatisfied(value, pattern string) bool {
	return regexp.MustCompile(pattern).MatchString(value)
}

// hasSelection reports whether any non-blank option id is selected
func hasSelection(ids []string) bool {
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			return true
		}
	}
	return false
}
