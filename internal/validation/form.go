package validation

import "github.com/redhat-data-and-ai/formguard/internal/rules"

// FormState is the current content of a form: text fields and option group selections
type FormState struct {
	Fields     map[string]string   `json:"fields"`
	Selections map[string][]string `json:"selections"`
}

// NewBlankForm returns the cleared state of every input a table reads.
// Clearing and validating both derive their input set from the same table.
func NewBlankForm(table *rules.Table) *FormState {
	form := &FormState{
		Fields:     make(map[string]string),
		Selections: make(map[string][]string),
	}

	for _, name := range table.FieldNames() {
		form.Fields[name] = ""
	}
	for _, name := range table.GroupNames() {
		form.Selections[name] = []string{}
	}

	return form
}
