package export

import (
	"encoding/json"
	"io"

	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/mapping"
)

// jsonField is the serialized shape of one extracted field.
type jsonField struct {
	Path        []string `json:"path"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	BaseType    string   `json:"baseType"`
	Cardinality string   `json:"cardinality"`
	Required    bool     `json:"required"`
	Details     string   `json:"details,omitempty"`
	Description string   `json:"description,omitempty"`
	Recursive   bool     `json:"recursive,omitempty"`
}

// WriteFieldsJSON renders one extracted schema as an indented JSON array.
func WriteFieldsJSON(w io.Writer, fields field.List) error {
	out := make([]jsonField, 0, len(fields))
	for _, f := range fields {
		out = append(out, jsonField{
			Path:        f.Path,
			Category:    string(f.Category),
			Type:        f.Type,
			BaseType:    f.BaseType,
			Cardinality: f.Cardinality.String(),
			Required:    f.Required,
			Details:     f.ConstraintString(),
			Description: f.Description,
			Recursive:   f.Recursive,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// jsonMapping wraps the result with its aggregate stats.
type jsonMapping struct {
	Entries []mapping.Entry `json:"entries"`
	Stats   mapping.Stats   `json:"stats"`
}

// WriteMappingJSON renders a mapping result with its stats as indented JSON.
func WriteMappingJSON(w io.Writer, res *mapping.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonMapping{Entries: res.Entries, Stats: res.Stats()})
}
