package xsd

import (
	"strings"

	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
)

// resolvedType is the outcome of resolving an element or attribute type:
// the declared type name, the primitive or structural base it boils down to,
// the collected constraint facets and, for complex types, the definition to
// descend into.
type resolvedType struct {
	typ         string
	baseType    string
	constraints map[field.ConstraintKind]string
	complexType *ComplexType
}

func (e *Extractor) resolveElementType(el *Element, nodePath string) (resolvedType, error) {
	switch {
	case el.ComplexType != nil:
		return e.resolveComplexType(el.ComplexType, "", nodePath)

	case el.SimpleType != nil:
		base, cons, err := e.resolveSimpleChain(el.SimpleType, nodePath, nil)
		if err != nil {
			return resolvedType{}, err
		}
		return resolvedType{typ: base, baseType: normalizeBuiltin(base), constraints: cons}, nil

	case el.Type != "":
		local, uri, err := e.resolveQName(el.Type, nodePath)
		if err != nil {
			return resolvedType{}, err
		}
		if uri == Namespace {
			return resolvedType{typ: local, baseType: normalizeBuiltin(local)}, nil
		}
		if ct, ok := e.complexTypes[local]; ok {
			return e.resolveComplexType(ct, local, nodePath)
		}
		if st, ok := e.simpleTypes[local]; ok {
			base, cons, err := e.resolveSimpleChain(st, nodePath, nil)
			if err != nil {
				return resolvedType{}, err
			}
			return resolvedType{typ: local, baseType: normalizeBuiltin(base), constraints: cons}, nil
		}
		if uri == "" && isBuiltinName(local) {
			return resolvedType{typ: local, baseType: normalizeBuiltin(local)}, nil
		}
		return resolvedType{}, &extractor.UnresolvedReferenceError{Path: nodePath, Ref: el.Type}
	}

	// untyped element, nothing to descend into
	return resolvedType{}, nil
}

func (e *Extractor) resolveComplexType(ct *ComplexType, declared, nodePath string) (resolvedType, error) {
	typ := declared
	if typ == "" {
		typ = field.TypeObject
	}

	if ct.SimpleContent != nil {
		der := ct.SimpleContent.Derivation()
		if der == nil || der.Base == "" {
			return resolvedType{typ: typ, baseType: field.TypeString, complexType: ct}, nil
		}
		base, err := e.resolveSimpleRef(der.Base, nodePath)
		if err != nil {
			return resolvedType{}, err
		}
		cons := overlayConstraints(base.constraints, facetConstraints(der.Facets))
		return resolvedType{typ: typ, baseType: base.baseType, constraints: cons, complexType: ct}, nil
	}

	return resolvedType{typ: typ, baseType: field.TypeObject, complexType: ct}, nil
}

// resolveSimpleRef resolves a QName that must denote a simple type: an XSD
// builtin, a named simpleType, or a complexType with simple content.
func (e *Extractor) resolveSimpleRef(ref, nodePath string) (resolvedType, error) {
	local, uri, err := e.resolveQName(ref, nodePath)
	if err != nil {
		return resolvedType{}, err
	}
	if uri == Namespace {
		return resolvedType{typ: local, baseType: normalizeBuiltin(local)}, nil
	}
	if st, ok := e.simpleTypes[local]; ok {
		base, cons, err := e.resolveSimpleChain(st, nodePath, nil)
		if err != nil {
			return resolvedType{}, err
		}
		return resolvedType{typ: local, baseType: normalizeBuiltin(base), constraints: cons}, nil
	}
	if ct, ok := e.complexTypes[local]; ok && ct.SimpleContent != nil {
		return e.resolveComplexType(ct, local, nodePath)
	}
	if uri == "" && isBuiltinName(local) {
		return resolvedType{typ: local, baseType: normalizeBuiltin(local)}, nil
	}
	return resolvedType{}, &extractor.UnresolvedReferenceError{Path: nodePath, Ref: ref}
}

// resolveSimpleChain follows a simpleType restriction chain down to its
// primitive base. Facets of a derived type override the inherited facet of
// the same kind.
func (e *Extractor) resolveSimpleChain(st *SimpleType, nodePath string, visited map[string]bool) (string, map[field.ConstraintKind]string, error) {
	if st.Restriction == nil {
		return field.TypeString, nil, nil
	}

	own := facetConstraints(st.Restriction.Facets)

	base := st.Restriction.Base
	if base == "" {
		return field.TypeString, own, nil
	}

	local, uri, err := e.resolveQName(base, nodePath)
	if err != nil {
		return "", nil, err
	}
	if uri == Namespace || (uri == "" && isBuiltinName(local) && e.simpleTypes[local] == nil) {
		return local, own, nil
	}

	parent, ok := e.simpleTypes[local]
	if !ok {
		return "", nil, &extractor.UnresolvedReferenceError{Path: nodePath, Ref: base}
	}

	if visited == nil {
		visited = make(map[string]bool)
	}
	if visited[local] {
		// defensive: a restriction cycle is not valid XSD
		return local, own, nil
	}
	visited[local] = true

	parentBase, parentCons, err := e.resolveSimpleChain(parent, nodePath, visited)
	if err != nil {
		return "", nil, err
	}
	return parentBase, overlayConstraints(parentCons, own), nil
}

func (e *Extractor) resolveQName(q, nodePath string) (local, uri string, err error) {
	prefix := ""
	local = q
	if i := strings.Index(q, ":"); i >= 0 {
		prefix = q[:i]
		local = q[i+1:]
	}

	if prefix != "" {
		u, ok := e.bindings[prefix]
		if !ok {
			return "", "", &extractor.UnresolvedReferenceError{Path: nodePath, Ref: q}
		}
		return local, u, nil
	}
	return local, e.bindings[""], nil
}

// facetConstraints converts restriction facets to constraints.
// Multiple enumeration facets accumulate into one pipe-joined value.
func facetConstraints(facets []Facet) map[field.ConstraintKind]string {
	if len(facets) == 0 {
		return nil
	}

	res := make(map[field.ConstraintKind]string)
	var enums []string

	for _, f := range facets {
		if f.XMLName.Space != Namespace {
			continue
		}
		switch f.XMLName.Local {
		case "pattern":
			res[field.ConstraintPattern] = f.Value
		case "enumeration":
			enums = append(enums, f.Value)
		case "minLength":
			res[field.ConstraintMinLength] = f.Value
		case "maxLength":
			res[field.ConstraintMaxLength] = f.Value
		case "length":
			res[field.ConstraintMinLength] = f.Value
			res[field.ConstraintMaxLength] = f.Value
		case "minInclusive", "minExclusive":
			res[field.ConstraintMinimum] = f.Value
		case "maxInclusive", "maxExclusive":
			res[field.ConstraintMaximum] = f.Value
		case "totalDigits":
			res[field.ConstraintTotalDigits] = f.Value
		case "fractionDigits":
			res[field.ConstraintFractionDigits] = f.Value
		}
	}

	if len(enums) > 0 {
		res[field.ConstraintEnum] = strings.Join(enums, "|")
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

// overlayConstraints merges child constraints over parent ones, child wins
// per kind.
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

var builtinKinds = map[string]string{
	"int": field.TypeInteger, "integer": field.TypeInteger, "long": field.TypeInteger,
	"short": field.TypeInteger, "byte": field.TypeInteger,
	"unsignedInt": field.TypeInteger, "unsignedLong": field.TypeInteger,
	"unsignedShort": field.TypeInteger, "unsignedByte": field.TypeInteger,
	"nonNegativeInteger": field.TypeInteger, "positiveInteger": field.TypeInteger,
	"nonPositiveInteger": field.TypeInteger, "negativeInteger": field.TypeInteger,

	"decimal": field.TypeNumber, "float": field.TypeNumber, "double": field.TypeNumber,

	"boolean": field.TypeBoolean,

	"string": field.TypeString, "normalizedString": field.TypeString, "token": field.TypeString,
	"language": field.TypeString, "Name": field.TypeString, "NCName": field.TypeString,
	"NMTOKEN": field.TypeString, "ID": field.TypeString, "IDREF": field.TypeString,
	"ENTITY": field.TypeString, "anyURI": field.TypeString, "QName": field.TypeString,
}

var builtinOther = map[string]bool{
	"date": true, "dateTime": true, "time": true, "duration": true,
	"gYear": true, "gMonth": true, "gDay": true, "gYearMonth": true, "gMonthDay": true,
	"base64Binary": true, "hexBinary": true, "anyType": true, "anySimpleType": true,
}

// normalizeBuiltin folds an XSD builtin into the canonical type family.
// Temporal and binary builtins keep their own name.
func normalizeBuiltin(local string) string {
	if kind, ok := builtinKinds[local]; ok {
		return kind
	}
	return local
}

func isBuiltinName(local string) bool {
	if _, ok := builtinKinds[local]; ok {
		return true
	}
	return builtinOther[local]
}
