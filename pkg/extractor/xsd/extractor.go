package xsd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/internal/types"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
)

// Extractor normalizes one XSD (or WSDL-embedded) schema into a field list.
type Extractor struct {
	schema   *Schema
	cfg      *config.ParseConfig
	bindings map[string]string

	complexTypes    map[string]*ComplexType
	simpleTypes     map[string]*SimpleType
	elements        map[string]*Element
	attributeGroups map[string]*AttributeGroup
}

// New creates an extractor from document bytes.
func New(data []byte, cfg *config.ParseConfig) (*Extractor, error) {
	if cfg == nil {
		cfg = config.NewParseConfig()
	}

	schema, parentAttrs, err := parse(data)
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		schema:          schema,
		cfg:             cfg,
		bindings:        bindings(parentAttrs, schema.Attrs),
		complexTypes:    make(map[string]*ComplexType),
		simpleTypes:     make(map[string]*SimpleType),
		elements:        make(map[string]*Element),
		attributeGroups: make(map[string]*AttributeGroup),
	}

	for _, ct := range schema.ComplexTypes {
		if ct.Name != "" {
			e.complexTypes[ct.Name] = ct
		}
	}
	for _, st := range schema.SimpleTypes {
		if st.Name != "" {
			e.simpleTypes[st.Name] = st
		}
	}
	for _, el := range schema.Elements {
		if el.Name != "" {
			e.elements[el.Name] = el
		}
	}
	for _, ag := range schema.AttributeGroups {
		if ag.Name != "" {
			e.attributeGroups[ag.Name] = ag
		}
	}

	return e, nil
}

// NewFromFile creates an extractor from a file path.
func NewFromFile(filePath string, cfg *config.ParseConfig) (*Extractor, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return New(data, cfg)
}

// state is threaded explicitly through the descent instead of relying on
// call-stack depth, so cycle detection is a first-class rule.
type state struct {
	path     []string
	visiting []string
	group    string

	// forceOptional zeroes the member minOccurs inside an optional or
	// multi-branch choice.
	forceOptional bool

	// scale multiplies member occurrence bounds with the bounds of the
	// enclosing model groups.
	scale field.Cardinality
}

func rootState() state {
	return state{scale: field.Cardinality{Min: 1, Max: 1}}
}

type walkCtx struct {
	fields    field.List
	choiceSeq int
}

// Extract walks the schema and returns the flattened field list in
// declaration order.
func (e *Extractor) Extract() (field.List, error) {
	ctx := &walkCtx{}
	for _, el := range e.schema.Elements {
		if err := e.walkElement(el, rootState(), ctx); err != nil {
			return nil, err
		}
	}

	if err := ctx.fields.Validate(); err != nil {
		return nil, err
	}
	return ctx.fields, nil
}

func (e *Extractor) walkElement(el *Element, st state, ctx *walkCtx) error {
	nodePath := strings.Join(st.path, ".")

	decl := el
	var visitKeys []string
	if el.Ref != "" {
		target, local, err := e.resolveElementRef(el.Ref, nodePath)
		if err != nil {
			return err
		}
		decl = target
		visitKeys = append(visitKeys, "element:"+local)
	}

	name := decl.Name
	if name == "" {
		return nil
	}
	if !e.cfg.KeepCase {
		name = strcase.ToLowerCamel(name)
	}

	path := appendPath(st.path, name)
	if e.cfg.MaxLevels > 0 && len(path) > e.cfg.MaxLevels {
		return nil
	}

	card, err := e.cardinality(el.MinOccurs, el.MaxOccurs, st, nodePath)
	if err != nil {
		return err
	}

	resolved, err := e.resolveElementType(decl, strings.Join(path, "."))
	if err != nil {
		return err
	}
	if resolved.complexType != nil && resolved.complexType.Name != "" {
		visitKeys = append(visitKeys, "type:"+resolved.complexType.Name)
	}

	f := &field.Field{
		Path:        path,
		Category:    field.CategoryElement,
		Type:        resolved.typ,
		BaseType:    resolved.baseType,
		Cardinality: card,
		Required:    card.Required(),
		Constraints: resolved.constraints,
		Description: strings.TrimSpace(decl.Annotation.Text()),
		Group:       st.group,
	}

	// recursion guard: a type already being expanded on this descent path
	// is recorded but not expanded again
	visiting := st.visiting
	for _, key := range visitKeys {
		visiting = append(visiting, key)
		if types.GetSliceMaxRepetitionNumber(visiting) > e.cfg.MaxRecursionLevels {
			f.Recursive = true
		}
	}
	ctx.fields.AppendCandidate(f)

	if f.Recursive || resolved.complexType == nil {
		return nil
	}

	childPath := path
	if card.Max == field.Unbounded || card.Max > 1 {
		childPath = appendPath(path, field.ItemMarker)
	}

	childSt := state{
		path:     childPath,
		visiting: visiting,
		scale:    field.Cardinality{Min: 1, Max: 1},
	}
	return e.walkComplexType(resolved.complexType, childSt, ctx)
}

func (e *Extractor) walkComplexType(ct *ComplexType, st state, ctx *walkCtx) error {
	nodePath := strings.Join(st.path, ".")

	var attrs []*Attribute
	var attrGroups []*AttributeGroup

	switch {
	case ct.ComplexContent != nil:
		der := ct.ComplexContent.Derivation()
		if der == nil {
			break
		}
		if der.Base != "" {
			// inherited members first, own content after
			if err := e.walkComplexBase(der.Base, st, ctx, nodePath); err != nil {
				return err
			}
		}
		if group := der.ContentGroup(); group != nil {
			if err := e.walkGroup(group, st, ctx); err != nil {
				return err
			}
		}
		attrs = der.Attributes
		attrGroups = der.AttributeGroups

	case ct.SimpleContent != nil:
		// base type and facets are resolved by resolveElementType;
		// only the attributes contribute fields here
		if der := ct.SimpleContent.Derivation(); der != nil {
			attrs = der.Attributes
			attrGroups = der.AttributeGroups
		}

	default:
		if group := ct.ContentGroup(); group != nil {
			if err := e.walkGroup(group, st, ctx); err != nil {
				return err
			}
		}
	}

	attrs = append(attrs, ct.Attributes...)
	attrGroups = append(attrGroups, ct.AttributeGroups...)

	for _, ag := range attrGroups {
		resolved, err := e.resolveAttributeGroup(ag, nodePath)
		if err != nil {
			return err
		}
		for _, a := range resolved.Attributes {
			if err := e.walkAttribute(a, st, ctx); err != nil {
				return err
			}
		}
	}
	for _, a := range attrs {
		if err := e.walkAttribute(a, st, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (e *Extractor) walkComplexBase(base string, st state, ctx *walkCtx, nodePath string) error {
	local, uri, err := e.resolveQName(base, nodePath)
	if err != nil {
		return err
	}
	if uri == Namespace {
		// xs:anyType carries no members
		return nil
	}
	baseType, ok := e.complexTypes[local]
	if !ok {
		return &extractor.UnresolvedReferenceError{Path: nodePath, Ref: base}
	}

	visiting := append(st.visiting, "type:"+local)
	if types.GetSliceMaxRepetitionNumber(visiting) > e.cfg.MaxRecursionLevels {
		return nil
	}
	baseSt := st
	baseSt.visiting = visiting
	return e.walkComplexType(baseType, baseSt, ctx)
}

func (e *Extractor) walkGroup(g *Group, st state, ctx *walkCtx) error {
	groupCard, err := parseOccurs(g.MinOccurs, g.MaxOccurs)
	if err != nil {
		return &extractor.ParseError{Path: strings.Join(st.path, "."), Err: err}
	}

	isChoice := g.Kind == "choice"
	memberSt := st
	memberSt.scale = multiplyCardinality(st.scale, groupCard)

	if isChoice {
		// every branch is documented; a member of a multi-branch or
		// optional choice is effectively optional regardless of its own
		// minOccurs
		if len(g.Particles) > 1 || groupCard.Min == 0 {
			memberSt.forceOptional = true
		}
		if len(g.Particles) > 1 {
			ctx.choiceSeq++
			memberSt.group = fmt.Sprintf("%s#choice%d", strings.Join(st.path, "."), ctx.choiceSeq)
		}
	}

	for _, p := range g.Particles {
		switch {
		case p.Element != nil:
			if err := e.walkElement(p.Element, memberSt, ctx); err != nil {
				return err
			}
		case p.Group != nil:
			if err := e.walkGroup(p.Group, memberSt, ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Extractor) walkAttribute(a *Attribute, st state, ctx *walkCtx) error {
	name := a.Name
	if name == "" {
		return nil
	}
	if !e.cfg.KeepCase {
		name = strcase.ToLowerCamel(name)
	}

	path := appendPath(st.path, name)
	if e.cfg.MaxLevels > 0 && len(path) > e.cfg.MaxLevels {
		return nil
	}
	nodePath := strings.Join(path, ".")

	required := a.Use == "required"
	card := field.Cardinality{Min: 0, Max: 1}
	if required {
		card.Min = 1
	}

	typ := ""
	baseType := ""
	var constraints map[field.ConstraintKind]string

	switch {
	case a.SimpleType != nil:
		base, cons, err := e.resolveSimpleChain(a.SimpleType, nodePath, nil)
		if err != nil {
			return err
		}
		typ, baseType, constraints = base, normalizeBuiltin(base), cons
	case a.Type != "":
		resolved, err := e.resolveSimpleRef(a.Type, nodePath)
		if err != nil {
			return err
		}
		typ, baseType, constraints = resolved.typ, resolved.baseType, resolved.constraints
	}

	ctx.fields.AppendCandidate(&field.Field{
		Path:        path,
		Category:    field.CategoryAttribute,
		Type:        typ,
		BaseType:    baseType,
		Cardinality: card,
		Required:    required,
		Constraints: constraints,
		Description: strings.TrimSpace(a.Annotation.Text()),
		Group:       st.group,
	})
	return nil
}

func (e *Extractor) resolveElementRef(ref, nodePath string) (*Element, string, error) {
	local, uri, err := e.resolveQName(ref, nodePath)
	if err != nil {
		return nil, "", err
	}
	if uri == Namespace {
		return nil, "", &extractor.UnresolvedReferenceError{Path: nodePath, Ref: ref}
	}
	target, ok := e.elements[local]
	if !ok {
		return nil, "", &extractor.UnresolvedReferenceError{Path: nodePath, Ref: ref}
	}
	return target, local, nil
}

func (e *Extractor) resolveAttributeGroup(ag *AttributeGroup, nodePath string) (*AttributeGroup, error) {
	if ag.Ref == "" {
		return ag, nil
	}
	local, _, err := e.resolveQName(ag.Ref, nodePath)
	if err != nil {
		return nil, err
	}
	target, ok := e.attributeGroups[local]
	if !ok {
		return nil, &extractor.UnresolvedReferenceError{Path: nodePath, Ref: ag.Ref}
	}
	return target, nil
}

func (e *Extractor) cardinality(min, max string, st state, nodePath string) (field.Cardinality, error) {
	card, err := parseOccurs(min, max)
	if err != nil {
		return card, &extractor.ParseError{Path: nodePath, Err: err}
	}
	card = multiplyCardinality(st.scale, card)
	if st.forceOptional {
		card.Min = 0
	}
	return card, nil
}

func parseOccurs(min, max string) (field.Cardinality, error) {
	res := field.Cardinality{Min: 1, Max: 1}

	if min != "" {
		v, err := strconv.Atoi(min)
		if err != nil || v < 0 {
			return res, fmt.Errorf("invalid minOccurs %q", min)
		}
		res.Min = v
	}
	switch {
	case max == "unbounded":
		res.Max = field.Unbounded
	case max != "":
		v, err := strconv.Atoi(max)
		if err != nil || v < 0 {
			return res, fmt.Errorf("invalid maxOccurs %q", max)
		}
		res.Max = v
	}
	return res, nil
}

func multiplyCardinality(a, b field.Cardinality) field.Cardinality {
	res := field.Cardinality{Min: a.Min * b.Min}
	if a.Max == field.Unbounded || b.Max == field.Unbounded {
		res.Max = field.Unbounded
	} else {
		res.Max = a.Max * b.Max
	}
	return res
}

func appendPath(path []string, name string) []string {
	res := make([]string, 0, len(path)+1)
	res = append(res, path...)
	return append(res, name)
}
