package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/internal/types"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
)

// Extractor normalizes one JSON Schema document into a field list.
type Extractor struct {
	root *Schema
	cfg  *config.ParseConfig
}

// New creates an extractor from document bytes.
func New(data []byte, cfg *config.ParseConfig) (*Extractor, error) {
	if cfg == nil {
		cfg = config.NewParseConfig()
	}

	root := &Schema{}
	if err := json.Unmarshal(data, root); err != nil {
		return nil, &extractor.ParseError{Err: err}
	}
	return &Extractor{root: root, cfg: cfg}, nil
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
	path     []string
	visiting []string
	group    string

	// forceOptional zeroes the required flag inside a multi-branch
	// anyOf/oneOf, mirroring the XSD choice rule.
	forceOptional bool
}

type walkCtx struct {
	fields   field.List
	groupSeq int
}

// node is a schema after $ref chasing: the resolved schema, the declared
// type name it was reached through, and the recursion bookkeeping.
type node struct {
	schema    *Schema
	declared  string
	desc      string
	recursive bool
	visiting  []string
}

// Extract walks the document and returns the flattened field list in
// declaration order.
func (e *Extractor) Extract() (field.List, error) {
	ctx := &walkCtx{}

	n, err := e.resolve(e.root, "#", nil)
	if err != nil {
		return nil, err
	}
	merged, err := e.mergeAllOf(n, "#")
	if err != nil {
		return nil, err
	}
	if err := e.walkInterior(merged, state{visiting: n.visiting}, ctx); err != nil {
		return nil, err
	}

	if err := ctx.fields.Validate(); err != nil {
		return nil, err
	}
	return ctx.fields, nil
}

// walkInterior walks the children of an object schema: its properties in
// document order, then the anyOf/oneOf branch sets, whose members
// contribute candidates under the same path as mutually exclusive siblings.
func (e *Extractor) walkInterior(s *Schema, st state, ctx *walkCtx) error {
	nodePath := strings.Join(st.path, ".")

	for _, name := range s.Properties.Keys() {
		required := types.SliceContains(s.Required, name)
		if err := e.walkProperty(name, s.Properties.Get(name), required, st, ctx); err != nil {
			return err
		}
	}

	for _, set := range [][]*Schema{s.AnyOf, s.OneOf} {
		if len(set) == 0 {
			continue
		}

		branchSt := st
		if len(set) > 1 {
			ctx.groupSeq++
			branchSt.group = fmt.Sprintf("%s#alt%d", nodePath, ctx.groupSeq)
			branchSt.forceOptional = true
		}

		for _, branch := range set {
			n, err := e.resolve(branch, nodePath, st.visiting)
			if err != nil {
				return err
			}
			if n.recursive {
				continue
			}
			merged, err := e.mergeAllOf(n, nodePath)
			if err != nil {
				return err
			}
			branchSt.visiting = n.visiting
			if err := e.walkInterior(merged, branchSt, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Extractor) walkProperty(name string, s *Schema, required bool, st state, ctx *walkCtx) error {
	path := appendPath(st.path, name)
	if e.cfg.MaxLevels > 0 && len(path) > e.cfg.MaxLevels {
		return nil
	}
	nodePath := strings.Join(path, ".")

	if st.forceOptional {
		required = false
	}

	n, err := e.resolve(s, nodePath, st.visiting)
	if err != nil {
		return err
	}
	merged, err := e.mergeAllOf(n, nodePath)
	if err != nil {
		return err
	}

	jsonType, err := e.typeOf(merged, nodePath, n.visiting)
	if err != nil {
		return err
	}

	if jsonType == field.TypeArray {
		return e.walkArray(name, path, merged, n, required, st, ctx)
	}

	typ := n.declared
	if typ == "" {
		typ = jsonType
	}

	card := field.Cardinality{Min: 0, Max: 1}
	if required {
		card.Min = 1
	}

	f := &field.Field{
		Path:        path,
		Category:    field.CategoryProperty,
		Type:        typ,
		BaseType:    jsonType,
		Cardinality: card,
		Required:    required,
		Constraints: constraintsOf(merged),
		Description: n.desc,
		Group:       st.group,
		Recursive:   n.recursive,
	}
	ctx.fields.AppendCandidate(f)

	if n.recursive || jsonType != field.TypeObject {
		return nil
	}

	childSt := state{path: path, visiting: n.visiting}
	return e.walkInterior(merged, childSt, ctx)
}

// walkArray emits the array field itself, expressing repetition through
// cardinality, and nests the item fields one level deeper under the item
// marker so arrays of objects never collide with same-named scalars.
func (e *Extractor) walkArray(name string, path []string, s *Schema, n *node, required bool, st state, ctx *walkCtx) error {
	nodePath := strings.Join(path, ".")

	card := field.Cardinality{Min: 0, Max: field.Unbounded}
	if required {
		card.Min = 1
	}
	if s.MinItems != nil && *s.MinItems > card.Min {
		card.Min = *s.MinItems
	}
	if s.MaxItems != nil {
		card.Max = *s.MaxItems
	}

	tuple := s.PrefixItems
	if s.Items != nil && len(s.Items.Tuple) > 0 {
		tuple = s.Items.Tuple
	}

	if len(tuple) > 0 {
		ctx.fields.AppendCandidate(&field.Field{
			Path:        path,
			Category:    field.CategoryProperty,
			Type:        field.TypeArray,
			BaseType:    field.TypeArray,
			Cardinality: card,
			Required:    required,
			Constraints: constraintsOf(s),
			Description: n.desc,
			Group:       st.group,
		})

		itemSt := state{path: appendPath(path, field.ItemMarker), visiting: n.visiting}
		for i, member := range tuple {
			if err := e.walkProperty(strconv.Itoa(i), member, false, itemSt, ctx); err != nil {
				return err
			}
		}
		return nil
	}

	var item *Schema
	if s.Items != nil {
		item = s.Items.Single
	}
	if item == nil {
		// untyped members, assume strings like an unconstrained list
		item = &Schema{Type: TypeSet{field.TypeString}}
	}

	in, err := e.resolve(item, nodePath, n.visiting)
	if err != nil {
		return err
	}
	itemMerged, err := e.mergeAllOf(in, nodePath)
	if err != nil {
		return err
	}
	itemType, err := e.typeOf(itemMerged, nodePath, in.visiting)
	if err != nil {
		return err
	}

	typ := in.declared
	if typ == "" {
		typ = itemType
	}

	f := &field.Field{
		Path:        path,
		Category:    field.CategoryProperty,
		Type:        typ,
		BaseType:    itemType,
		Cardinality: card,
		Required:    required,
		Constraints: overlayConstraints(constraintsOf(s), constraintsOf(itemMerged)),
		Description: firstNonEmpty(n.desc, in.desc),
		Group:       st.group,
		Recursive:   in.recursive,
	}
	ctx.fields.AppendCandidate(f)

	if in.recursive || itemType != field.TypeObject {
		return nil
	}

	childSt := state{path: appendPath(path, field.ItemMarker), visiting: in.visiting}
	return e.walkInterior(itemMerged, childSt, ctx)
}

// resolve chases a $ref chain against the local definitions, tracking the
// visited definition names for the recursion guard.
func (e *Extractor) resolve(s *Schema, nodePath string, visiting []string) (*node, error) {
	desc := s.Description
	declared := ""
	cur := s

	for cur.Ref != "" {
		target, name, err := e.resolveRef(cur.Ref, nodePath)
		if err != nil {
			return nil, err
		}
		if declared == "" {
			declared = name
		}

		visiting = append(visiting, "ref:"+name)
		if types.GetSliceMaxRepetitionNumber(visiting) > e.cfg.MaxRecursionLevels {
			return &node{schema: target, declared: declared, desc: desc, recursive: true, visiting: visiting}, nil
		}

		if desc == "" {
			desc = target.Description
		}
		cur = target
	}

	if desc == "" {
		desc = cur.Description
	}
	return &node{schema: cur, declared: declared, desc: desc, visiting: visiting}, nil
}

func (e *Extractor) resolveRef(ref, nodePath string) (*Schema, string, error) {
	for _, prefix := range []string{"#/$defs/", "#/definitions/"} {
		if !strings.HasPrefix(ref, prefix) {
			continue
		}
		name := strings.TrimPrefix(ref, prefix)
		if s := e.lookupDef(name); s != nil {
			return s, name, nil
		}
		return nil, "", &extractor.UnresolvedReferenceError{Path: nodePath, Ref: ref}
	}
	return nil, "", &extractor.UnresolvedReferenceError{Path: nodePath, Ref: ref}
}

func (e *Extractor) lookupDef(name string) *Schema {
	if s, ok := e.root.Defs[name]; ok {
		return s
	}
	if s, ok := e.root.Definitions[name]; ok {
		return s
	}
	return nil
}

// mergeAllOf folds allOf branches into one schema view: properties are
// concatenated in branch order with the first definition winning, required
// lists are united and unset scalar keywords are taken from the branches.
// The references chased while merging are recorded on n, so a self-
// referencing allOf chain hits the recursion guard instead of looping.
func (e *Extractor) mergeAllOf(n *node, nodePath string) (*Schema, error) {
	s := n.schema
	if len(s.AllOf) == 0 {
		return s, nil
	}

	merged := *s
	merged.AllOf = nil

	props := &SchemaMap{m: make(map[string]*Schema)}
	for _, key := range s.Properties.Keys() {
		props.add(key, s.Properties.Get(key))
	}

	for _, branch := range s.AllOf {
		bn, err := e.resolve(branch, nodePath, n.visiting)
		if err != nil {
			return nil, err
		}
		n.visiting = bn.visiting
		if bn.recursive {
			continue
		}
		bs, err := e.mergeAllOf(bn, nodePath)
		if err != nil {
			return nil, err
		}

		for _, key := range bs.Properties.Keys() {
			props.add(key, bs.Properties.Get(key))
		}
		merged.Required = types.SliceUnique(append(merged.Required, bs.Required...))

		if len(merged.Type) == 0 {
			merged.Type = bs.Type
		}
		if merged.Items == nil {
			merged.Items = bs.Items
		}
		if merged.Pattern == "" {
			merged.Pattern = bs.Pattern
		}
		if merged.Format == "" {
			merged.Format = bs.Format
		}
		if len(merged.Enum) == 0 {
			merged.Enum = bs.Enum
		}
		if merged.MinLength == nil {
			merged.MinLength = bs.MinLength
		}
		if merged.MaxLength == nil {
			merged.MaxLength = bs.MaxLength
		}
		if merged.Minimum == nil {
			merged.Minimum = bs.Minimum
		}
		if merged.Maximum == nil {
			merged.Maximum = bs.Maximum
		}
	}

	if props.Len() > 0 {
		merged.Properties = props
	}
	return &merged, nil
}

// typeOf determines the JSON type of a schema, inferring the shape when the
// type keyword is absent. A schema with no type and no inferable shape is a
// parse error naming the offending path.
func (e *Extractor) typeOf(s *Schema, nodePath string, visiting []string) (string, error) {
	if t := s.Type.First(); t != "" {
		return t, nil
	}
	if s.Properties.Len() > 0 || len(s.Required) > 0 {
		return field.TypeObject, nil
	}
	if s.Items != nil || len(s.PrefixItems) > 0 {
		return field.TypeArray, nil
	}
	if len(s.Enum) > 0 {
		return typeOfValue(s.Enum[0]), nil
	}
	if s.Const != nil {
		return typeOfValue(s.Const), nil
	}

	// composition-only schema: infer from the first branch
	for _, set := range [][]*Schema{s.AnyOf, s.OneOf} {
		if len(set) == 0 {
			continue
		}
		bn, err := e.resolve(set[0], nodePath, visiting)
		if err != nil {
			return "", err
		}
		if bn.recursive {
			return field.TypeObject, nil
		}
		merged, err := e.mergeAllOf(bn, nodePath)
		if err != nil {
			return "", err
		}
		return e.typeOf(merged, nodePath, bn.visiting)
	}

	return "", &extractor.ParseError{Path: nodePath, Err: errors.New("no type and no inferable shape")}
}

func typeOfValue(v any) string {
	switch val := v.(type) {
	case string:
		return field.TypeString
	case bool:
		return field.TypeBoolean
	case float64:
		if val == math.Trunc(val) {
			return field.TypeInteger
		}
		return field.TypeNumber
	default:
		return field.TypeString
	}
}

func constraintsOf(s *Schema) map[field.ConstraintKind]string {
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
	if s.MinLength != nil {
		res[field.ConstraintMinLength] = strconv.Itoa(*s.MinLength)
	}
	if s.MaxLength != nil {
		res[field.ConstraintMaxLength] = strconv.Itoa(*s.MaxLength)
	}
	if s.Minimum != nil {
		res[field.ConstraintMinimum] = types.ToString(*s.Minimum)
	}
	if s.Maximum != nil {
		res[field.ConstraintMaximum] = types.ToString(*s.Maximum)
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

func overlayConstraints(parent, child map[field.ConstraintKind]string) map[field.ConstraintKind]string {
	if len(parent) == 0 {
		return child
	}
	res := make(map[field.ConstraintKind]string, len(parent)+len(child))
	for k, v := range parent {
		res[k] = v
	}
	for k, v := range child {
		res[k] = v
	}
	return res
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func appendPath(path []string, name string) []string {
	res := make([]string, 0, len(path)+1)
	res = append(res, path...)
	return append(res, name)
}
