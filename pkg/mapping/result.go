package mapping

// MatchType classifies a mapping entry.
type MatchType string

const (
	MatchExact     MatchType = "exact"
	MatchFuzzy     MatchType = "fuzzy"
	MatchUnmatched MatchType = "unmatched"
)

// Candidate is one ranked alternative offered for an unmatched field.
type Candidate struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// Entry is one row of a mapping result. Exactly one of Source and Target is
// nil for unmatched entries; both are set for matches.
type Entry struct {
	Source *MappedField `json:"source,omitempty"`
	Target *MappedField `json:"target,omitempty"`

	Score     float64   `json:"score"`
	MatchType MatchType `json:"matchType"`

	// Suggestions lists near-miss counterparts for unmatched entries,
	// best first, so a reviewer can resolve them by hand.
	Suggestions []Candidate `json:"suggestions,omitempty"`
}

// MappedField is the exported view of one side of an entry.
type MappedField struct {
	Path        string `json:"path"`
	Type        string `json:"type"`
	BaseType    string `json:"baseType"`
	Cardinality string `json:"cardinality"`
	Description string `json:"description,omitempty"`
	Details     string `json:"details,omitempty"`
}

// Result is a complete mapping between two field lists. Entries are ordered
// matches first in source declaration order, then unmatched sources, then
// unmatched targets, so re-running the engine on the same inputs renders
// identically.
type Result struct {
	Entries []Entry `json:"entries"`
}

// Stats summarizes a result for reporting.
type Stats struct {
	Total        int     `json:"total"`
	Exact        int     `json:"exact"`
	Fuzzy        int     `json:"fuzzy"`
	Unmatched    int     `json:"unmatched"`
	AverageScore float64 `json:"averageScore"`
	Coverage     float64 `json:"coverage"`
}

// Stats computes the aggregate view of the result. AverageScore covers
// matched entries only; Coverage is the matched share of all entries.
func (r *Result) Stats() Stats {
	st := Stats{Total: len(r.Entries)}

	sum := 0.0
	for _, e := range r.Entries {
		switch e.MatchType {
		case MatchExact:
			st.Exact++
			sum += e.Score
		case MatchFuzzy:
			st.Fuzzy++
			sum += e.Score
		default:
			st.Unmatched++
		}
	}

	matched := st.Exact + st.Fuzzy
	if matched > 0 {
		st.AverageScore = sum / float64(matched)
	}
	if st.Total > 0 {
		st.Coverage = float64(matched) / float64(st.Total)
	}
	return st
}
