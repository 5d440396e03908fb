package openapi

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/internal/types"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
)

const componentPrefix = "#/components/schemas/"

// Extractor normalizes the component schemas of an OpenAPI document into a
// field list. The document loader resolves references in place, so the walk
// tracks the reference strings it passes through to stop recursive types.
type Extractor struct {
	doc *openapi3.T
	cfg *config.ParseConfig
}

// New creates an extractor from document bytes, YAML or JSON.
func New(data []byte, cfg *config.ParseConfig) (*Extractor, error) {
	if cfg == nil {
		cfg = config.NewParseConfig()
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, &extractor.ParseError{Err: err}
	}
	return &Extractor{doc: doc, cfg: cfg}, nil
}

// NewFromFile creates an extractor from a file path.
func NewFromFile(filePath string, cfg *config.ParseConfig) (*Extractor, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return New(data, cfg)
}

type state struct {
	path          []string
	visiting      []string
	group         string
	forceOptional bool
}

type walkCtx struct {
	fields   field.List
	groupSeq int
}

// Extract walks every component schema, in name order since the underlying
// document does not preserve declaration order, and returns the flattened
// field list.
func (e *Extractor) Extract() (field.List, error) {
	ctx := &walkCtx{}

	names := make([]string, 0, len(e.doc.Components.Schemas))
	for name := range e.doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := e.doc.Components.Schemas[name]
		if err := e.walk(name, ref, true, state{}, ctx); err != nil {
			return nil, err
		}
	}

	if err := ctx.fields.Validate(); err != nil {
		return nil, err
	}
	return ctx.fields, nil
}

func (e *Extractor) walk(name string, ref *openapi3.SchemaRef, required bool, st state, ctx *walkCtx) error {
	path := appendPath(st.path, name)
	if e.cfg.MaxLevels > 0 && len(path) > e.cfg.MaxLevels {
		return nil
	}
	nodePath := strings.Join(path, ".")

	if ref == nil || ref.Value == nil {
		return &extractor.UnresolvedReferenceError{Path: nodePath, Ref: refString(ref)}
	}

	if st.forceOptional {
		required = false
	}

	visiting := types.AppendSliceFirstNonEmpty(st.visiting, ref.Ref)
	recursive := types.GetSliceMaxRepetitionNumber(visiting) > e.cfg.MaxRecursionLevels

	merged, mergedRef := e.mergeAllOf(ref.Value)
	declared := declaredName(ref.Ref, mergedRef)
	typ := schemaType(merged)

	if typ == field.TypeArray {
		return e.walkArray(path, merged, declared, required, recursive, st, visiting, ctx)
	}

	if declared == "" {
		declared = typ
	}

	card := field.Cardinality{Min: 0, Max: 1}
	if required {
		card.Min = 1
	}

	ctx.fields.AppendCandidate(&field.Field{
		Path:        path,
		Category:    field.CategoryProperty,
		Type:        declared,
		BaseType:    typ,
		Cardinality: card,
		Required:    required,
		Constraints: constraintsOf(merged),
		Description: merged.Description,
		Group:       st.group,
		Recursive:   recursive,
	})

	if recursive || typ != field.TypeObject {
		return nil
	}
	return e.walkInterior(merged, state{path: path, visiting: visiting}, ctx)
}

func (e *Extractor) walkArray(path []string, s *openapi3.Schema, declared string, required, recursive bool, st state, visiting []string, ctx *walkCtx) error {
	card := field.Cardinality{Min: int(s.MinItems), Max: field.Unbounded}
	if required && card.Min == 0 {
		card.Min = 1
	}
	if s.MaxItems != nil {
		card.Max = int(*s.MaxItems)
	}

	items := s.Items
	if items == nil || items.Value == nil {
		// untyped members, assume strings like an unconstrained list
		items = openapi3.NewSchemaRef("", openapi3.NewStringSchema())
	}

	itemVisiting := types.AppendSliceFirstNonEmpty(visiting, items.Ref)
	itemRecursive := recursive ||
		types.GetSliceMaxRepetitionNumber(itemVisiting) > e.cfg.MaxRecursionLevels

	itemMerged, itemMergedRef := e.mergeAllOf(items.Value)
	itemDeclared := declaredName(items.Ref, itemMergedRef)
	itemType := schemaType(itemMerged)

	typ := declared
	if typ == "" {
		typ = itemDeclared
	}
	if typ == "" {
		typ = itemType
	}

	ctx.fields.AppendCandidate(&field.Field{
		Path:        path,
		Category:    field.CategoryProperty,
		Type:        typ,
		BaseType:    itemType,
		Cardinality: card,
		Required:    required,
		Constraints: constraintsOf(itemMerged),
		Description: s.Description,
		Group:       st.group,
		Recursive:   itemRecursive,
	})

	if itemRecursive || itemType != field.TypeObject {
		return nil
	}

	childSt := state{path: appendPath(path, field.ItemMarker), visiting: itemVisiting}
	return e.walkInterior(itemMerged, childSt, ctx)
}

// walkInterior walks the properties of an object schema in name order, then
// the anyOf/oneOf branch sets, whose members contribute candidates under the
// same path as mutually exclusive siblings.
func (e *Extractor) walkInterior(s *openapi3.Schema, st state, ctx *walkCtx) error {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		required := types.SliceContains(s.Required, name)
		if err := e.walk(name, s.Properties[name], required, st, ctx); err != nil {
			return err
		}
	}

	for _, set := range []openapi3.SchemaRefs{s.AnyOf, s.OneOf} {
		if len(set) == 0 {
			continue
		}

		branchSt := st
		if len(set) > 1 {
			ctx.groupSeq++
			branchSt.group = fmt.Sprintf("%s#alt%d", strings.Join(st.path, "."), ctx.groupSeq)
			branchSt.forceOptional = true
		}

		for _, branch := range set {
			if branch == nil || branch.Value == nil {
				continue
			}
			branchSt.visiting = types.AppendSliceFirstNonEmpty(st.visiting, branch.Ref)
			if types.GetSliceMaxRepetitionNumber(branchSt.visiting) > e.cfg.MaxRecursionLevels {
				continue
			}
			merged, _ := e.mergeAllOf(branch.Value)
			if err := e.walkInterior(merged, branchSt, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeAllOf folds allOf branches into one schema view, returning the first
// branch reference so the caller can name the composed type. anyOf/oneOf are
// left in place for the branch walk.
func (e *Extractor) mergeAllOf(s *openapi3.Schema) (*openapi3.Schema, string) {
	return e.mergeAllOfSeen(s, make(map[*openapi3.Schema]bool))
}

// mergeAllOfSeen tracks the schemas already folded on this descent, so a
// self-referencing allOf terminates.
func (e *Extractor) mergeAllOfSeen(s *openapi3.Schema, seen map[*openapi3.Schema]bool) (*openapi3.Schema, string) {
	if len(s.AllOf) == 0 || seen[s] {
		return s, ""
	}
	seen[s] = true

	merged := *s
	merged.AllOf = nil

	props := make(openapi3.Schemas, len(s.Properties))
	for name, ref := range s.Properties {
		props[name] = ref
	}
	required := append([]string{}, s.Required...)

	subRef := ""
	for _, branch := range s.AllOf {
		if branch == nil || branch.Value == nil {
			continue
		}
		if subRef == "" {
			subRef = branch.Ref
		}

		sub, _ := e.mergeAllOfSeen(branch.Value, seen)
		for name, ref := range sub.Properties {
			if _, ok := props[name]; !ok {
				props[name] = ref
			}
		}
		required = append(required, sub.Required...)

		if merged.Type == "" {
			merged.Type = sub.Type
		}
		if merged.Items == nil {
			merged.Items = sub.Items
		}
		if merged.Pattern == "" {
			merged.Pattern = sub.Pattern
		}
		if merged.Format == "" {
			merged.Format = sub.Format
		}
		if len(merged.Enum) == 0 {
			merged.Enum = sub.Enum
		}
	}

	merged.Properties = props
	merged.Required = types.SliceUnique(required)
	return &merged, subRef
}

// schemaType determines the base type of a schema, defaulting to object the
// way composed component schemas usually mean.
func schemaType(s *openapi3.Schema) string {
	if s.Type != "" {
		return s.Type
	}
	if len(s.Properties) > 0 || len(s.Required) > 0 {
		return field.TypeObject
	}
	if s.Items != nil {
		return field.TypeArray
	}
	if len(s.Enum) > 0 {
		return enumType(s.Enum[0])
	}
	return field.TypeObject
}

func enumType(v any) string {
	switch v.(type) {
	case string:
		return field.TypeString
	case bool:
		return field.TypeBoolean
	case int, int64, float64:
		return field.TypeNumber
	default:
		return field.TypeString
	}
}

func declaredName(refs ...string) string {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if strings.HasPrefix(ref, componentPrefix) {
			return strings.TrimPrefix(ref, componentPrefix)
		}
		parts := strings.Split(ref, "/")
		return parts[len(parts)-1]
	}
	return ""
}

func refString(ref *openapi3.SchemaRef) string {
	if ref == nil {
		return ""
	}
	return ref.Ref
}

func constraintsOf(s *openapi3.Schema) map[field.ConstraintKind]string {
	res := make(map[field.ConstraintKind]string)

	if s.Pattern != "" {
		res[field.ConstraintPattern] = s.Pattern
	}
	if len(s.Enum) > 0 {
		vals := make([]string, len(s.Enum))
		for i, v := range s.Enum {
			vals[i] = types.ToString(v)
		}
		res[field.ConstraintEnum] = strings.Join(vals, "|")
	}
	if s.MinLength > 0 {
		res[field.ConstraintMinLength] = types.ToString(s.MinLength)
	}
	if s.MaxLength != nil {
		res[field.ConstraintMaxLength] = types.ToString(*s.MaxLength)
	}
	if s.Min != nil {
		res[field.ConstraintMinimum] = types.ToString(*s.Min)
	}
	if s.Max != nil {
		res[field.ConstraintMaximum] = types.ToString(*s.Max)
	}
	if s.Format != "" {
		res[field.ConstraintFormat] = s.Format
	}
	if s.MultipleOf != nil {
		res[field.ConstraintMultipleOf] = types.ToString(*s.MultipleOf)
	}

	if len(res) == 0 {
		return nil
	}
	return res
}

func appendPath(path []string, name string) []string {
	res := make([]string, 0, len(path)+1)
	res = append(res, path...)
	return append(res, name)
}
