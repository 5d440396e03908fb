package field

import (
	"strconv"
	"strings"
)

// Category tells where a field came from in its schema:
// an XSD element, an XSD attribute or a JSON Schema property.
type Category string

const (
	CategoryElement   Category = "element"
	CategoryAttribute Category = "attribute"
	CategoryProperty  Category = "property"
)

// ItemMarker is the synthetic path segment under which the fields of an
// array item are nested. It cannot collide with a declared name, so an
// array of objects never shadows a same-named scalar.
const ItemMarker = "[]"

// Unbounded is the Max value of a cardinality without an upper bound.
const Unbounded = -1

const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// Cardinality holds the occurrence bounds of a field.
// Max == Unbounded means no upper bound.
type Cardinality struct {
	Min int
	Max int
}

// Required reports whether the field must occur at least once.
func (c Cardinality) Required() bool {
	return c.Min >= 1
}

// String renders the cardinality the way mapping sheets expect it:
// "1" for exactly one, "0..1" for optional, "0..n" for unbounded.
func (c Cardinality) String() string {
	max := "n"
	if c.Max != Unbounded {
		max = strconv.Itoa(c.Max)
	}
	if c.Max != Unbounded && c.Min == c.Max {
		return strconv.Itoa(c.Min)
	}
	return strconv.Itoa(c.Min) + ".." + max
}

// ConstraintKind is the kind of a value constraint extracted from a schema facet
// or JSON Schema validation keyword.
type ConstraintKind string

const (
	ConstraintPattern        ConstraintKind = "pattern"
	ConstraintEnum           ConstraintKind = "enum"
	ConstraintMinLength      ConstraintKind = "minLength"
	ConstraintMaxLength      ConstraintKind = "maxLength"
	ConstraintMinimum        ConstraintKind = "minimum"
	ConstraintMaximum        ConstraintKind = "maximum"
	ConstraintFormat         ConstraintKind = "format"
	ConstraintMultipleOf     ConstraintKind = "multipleOf"
	ConstraintTotalDigits    ConstraintKind = "totalDigits"
	ConstraintFractionDigits ConstraintKind = "fractionDigits"
)

// constraintOrder fixes the rendering order of constraints.
var constraintOrder = []ConstraintKind{
	ConstraintPattern,
	ConstraintEnum,
	ConstraintMinLength,
	ConstraintMaxLength,
	ConstraintMinimum,
	ConstraintMaximum,
	ConstraintFormat,
	ConstraintMultipleOf,
	ConstraintTotalDigits,
	ConstraintFractionDigits,
}

// Field is one node of the canonical, flattened schema tree.
// Both extractors produce the same shape so the mapping engine and the
// exporters never need to know which schema dialect a field came from.
type Field struct {
	// Path holds the level names from the root to this node, in order.
	Path []string

	Category Category

	// Type is the declared type name, as written in the schema.
	// BaseType is the resolved primitive or structural type it boils down to.
	Type     string
	BaseType string

	Cardinality Cardinality

	// Required is derived from Cardinality at construction time.
	Required bool

	Constraints map[ConstraintKind]string

	// Description carries xs:documentation or the "description" keyword.
	Description string

	// Group tags mutually exclusive siblings coming from one xs:choice or
	// anyOf/oneOf branch set. Empty for regular fields.
	Group string

	// Recursive marks a field whose children were not expanded because its
	// type was already being expanded on the current descent path.
	Recursive bool
}

// Name returns the last path segment.
func (f *Field) Name() string {
	if len(f.Path) == 0 {
		return ""
	}
	return f.Path[len(f.Path)-1]
}

// JoinedPath returns the dot-joined path.
func (f *Field) JoinedPath() string {
	return strings.Join(f.Path, ".")
}

// Depth returns the number of path levels.
func (f *Field) Depth() int {
	return len(f.Path)
}

// ConstraintString renders the constraints as "kind=value" pairs in a fixed
// order, suitable for a details column.
func (f *Field) ConstraintString() string {
	if len(f.Constraints) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.Constraints))
	for _, kind := range constraintOrder {
		if v, ok := f.Constraints[kind]; ok {
			parts = append(parts, string(kind)+"="+v)
		}
	}
	return strings.Join(parts, "; ")
}
