package validation

// EntryKind classifies a report entry
type EntryKind string

const (
	// MissingEntry means a field was empty or a group had no selection
	MissingEntry EntryKind = "missing"
	// InvalidEntry means a field failed its pattern or a selector was only partly chosen
	InvalidEntry EntryKind = "invalid"
	// MismatchedPair means two fields that must be equal differ
	MismatchedPair EntryKind = "mismatch"
)

// Outcome tells the caller what to do with a report
type Outcome string

const (
	// OutcomeProceed means every rule passed
	OutcomeProceed Outcome = "proceed"
	// OutcomeFixEntries means missing or invalid entries must be shown inline
	OutcomeFixEntries Outcome = "fix_entries"
	// OutcomeBlocked means only a paired-match rule failed
	OutcomeBlocked Outcome = "blocked"
)

// Entry is one message about one field or group
type Entry struct {
	Field   string    `json:"field"`
	Kind    EntryKind `json:"kind"`
	Message string    `json:"message"`
}

// Report is the result of validating one form submission
type Report struct {
	MissingEntries []Entry `json:"missing_entries"`
	InvalidEntries []Entry `json:"invalid_entries"`
	Mismatches     []Entry `json:"mismatches"`
	PairsMatch     bool    `json:"pairs_match"`
	AllValid       bool    `json:"all_valid"`
}

// NewReport creates an empty, passing report
func NewReport() *Report {
	return &Report{
		MissingEntries: []Entry{},
		InvalidEntries: []Entry{},
		Mismatches:     []Entry{},
		PairsMatch:     true,
		AllValid:       true,
	}
}

// AddMissing records an empty field or group
func (r *Report) AddMissing(field, message string) {
	r.MissingEntries = append(r.MissingEntries, Entry{Field: field, Kind: MissingEntry, Message: message})
	r.AllValid = false
}

// AddInvalid records a field that is present but malformed
func (r *Report) AddInvalid(field, message string) {
	r.InvalidEntries = append(r.InvalidEntries, Entry{Field: field, Kind: InvalidEntry, Message: message})
	r.AllValid = false
}

// AddMismatch records a failed paired-match rule
func (r *Report) AddMismatch(field, message string) {
	r.Mismatches = append(r.Mismatches, Entry{Field: field, Kind: MismatchedPair, Message: message})
	r.PairsMatch = false
	r.AllValid = false
}

// HasEntryErrors reports whether any missing or invalid entry exists
func (r *Report) HasEntryErrors() bool {
	return len(r.MissingEntries) > 0 || len(r.InvalidEntries) > 0
}

// Blocking returns the mismatch entries, but only when nothing else is wrong.
// Omissions are fixed first; a mismatch is surfaced afterwards.
func (r *Report) Blocking() []Entry {
	if r.HasEntryErrors() || r.PairsMatch {
		return nil
	}
	return r.Mismatches
}

// Outcome returns what the caller should do next
func (r *Report) Outcome() Outcome {
	switch {
	case r.HasEntryErrors():
		return OutcomeFixEntries
	case !r.PairsMatch:
		return OutcomeBlocked
	default:
		return OutcomeProceed
	}
}

// Has reports whether an entry of the given kind exists for field
func (r *Report) Has(field string, kind EntryKind) bool {
	for _, entries := range [][]Entry{r.MissingEntries, r.InvalidEntries, r.Mismatches} {
		for _, e := range entries {
			if e.Field == field && e.Kind == kind {
				return true
			}
		}
	}
	return false
}

// EntriesFor returns every missing or invalid entry for field
func (r *Report) EntriesFor(field string) []Entry {
	var result []Entry
	for _, entries := range [][]Entry{r.MissingEntries, r.InvalidEntries} {
		for _, e := range entries {
			if e.Field == field {
				result = append(result, e)
			}
		}
	}
	return result
}

// Messages returns the inline messages in display order: invalid entries, then missing entries
func (r *Report) Messages() []string {
	messages := make([]string, 0, len(r.InvalidEntries)+len(r.MissingEntries))
	for _, e := range r.InvalidEntries {
		messages = append(messages, e.Message)
	}
	for _, e := range r.MissingEntries {
		messages = append(messages, e.Message)
	}
	return messages
}
