package rules

import (
	"unicode"
	"unicode/utf8"
)

// Kind identifies how a FieldRule is evaluated
type Kind string

const (
	// KindPattern checks a field value against a single pattern
	KindPattern Kind = "pattern"
	// KindCompositePattern checks a field value against several patterns, all of which must match
	KindCompositePattern Kind = "composite-pattern"
	// KindPresenceGroup checks that an option group (or every part of a multi-part selector) has a selection
	KindPresenceGroup Kind = "presence-group"
	// KindMatchPair checks that two field values are identical
	KindMatchPair Kind = "match-pair"
)

// ValidKinds lists every supported rule kind
var ValidKinds = []Kind{KindPattern, KindCompositePattern, KindPresenceGroup, KindMatchPair}

// IsValid reports whether k is a supported kind
func (k Kind) IsValid() bool {
	for _, valid := range ValidKinds {
		if k == valid {
			return true
		}
	}
	return false
}

// FieldRule describes how one field or option group is validated
type FieldRule struct {
	Name     string   // Field or group identifier
	Label    string   // Human-readable name used in messages; defaults to Name
	Kind     Kind     // Evaluation kind
	Pattern  string   // KindPattern: the pattern
	Patterns []string // KindCompositePattern: required sub-patterns
	Parts    []string // KindPresenceGroup: sub-groups of a multi-part selector
	Match    string   // KindMatchPair: the field whose value must equal Name's
	Message  string   // KindMatchPair: message shown when the pair differs
}

// DisplayLabel returns the label used in messages
func (r FieldRule) DisplayLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return r.Name
}

// IsMultiPart reports whether the rule is a composite multi-part selector
func (r FieldRule) IsMultiPart() bool {
	return r.Kind == KindPresenceGroup && len(r.Parts) > 0
}

// MismatchMessage returns the blocking message for a match-pair rule
func (r FieldRule) MismatchMessage() string {
	if r.Message != "" {
		return r.Message
	}
	label := r.DisplayLabel()
	if label == "" {
		return "Values do not match"
	}
	first, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(first)) + label[size:] + "s do not match"
}

// clone returns a copy that shares no slices with r
func (r FieldRule) clone() FieldRule {
	c := r
	c.Patterns = append([]string(nil), r.Patterns...)
	c.Parts = append([]string(nil), r.Parts...)
	return c
}
