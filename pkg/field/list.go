package field

import "fmt"

// DuplicatePathError is returned when an extraction result contains the same
// path twice. Extractors fail loudly instead of collapsing definitions.
type DuplicatePathError struct {
	Path string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("duplicate field path %q", e.Path)
}

// List is an ordered, depth-first sequence of fields for one schema.
// The order is the document order of the source schema; consumers may
// re-sort for display but the extractors never do.
type List []*Field

// Validate checks the uniqueness invariant of the list.
func (l List) Validate() error {
	seen := make(map[string]bool, len(l))
	for _, f := range l {
		p := f.JoinedPath()
		if seen[p] {
			return &DuplicatePathError{Path: p}
		}
		seen[p] = true
	}
	return nil
}

// AppendCandidate appends a field, collapsing same-path candidates coming
// from branches of the same alternative group into the richer definition.
// Duplicates outside a shared group are left in place for Validate to report.
func (l *List) AppendCandidate(f *Field) {
	if f.Group != "" {
		p := f.JoinedPath()
		for _, existing := range *l {
			if existing.Group == f.Group && existing.JoinedPath() == p {
				existing.enrich(f)
				return
			}
		}
	}
	*l = append(*l, f)
}

func (f *Field) enrich(other *Field) {
	if f.Description == "" {
		f.Description = other.Description
	}
	if len(f.Constraints) == 0 {
		f.Constraints = other.Constraints
	}
	if f.Type == "" {
		f.Type = other.Type
		f.BaseType = other.BaseType
	}
}

// Paths returns the joined paths of all fields, in list order.
func (l List) Paths() []string {
	res := make([]string, len(l))
	for i, f := range l {
		res[i] = f.JoinedPath()
	}
	return res
}

// Find returns the first field with the given joined path or nil.
func (l List) Find(joinedPath string) *Field {
	for _, f := range l {
		if f.JoinedPath() == joinedPath {
			return f
		}
	}
	return nil
}
