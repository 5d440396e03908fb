package xsd

import (
	"encoding/xml"
)

// Namespace is the XML Schema namespace.
const Namespace = "http://www.w3.org/2001/XMLSchema"

// Schema is the document model of one xs:schema element.
// Attrs keeps every remaining root attribute so namespace prefix bindings
// (xmlns:*) can be resolved when type references are looked up.
type Schema struct {
	TargetNamespace string     `xml:"targetNamespace,attr"`
	Attrs           []xml.Attr `xml:",any,attr"`

	Elements        []*Element        `xml:"http://www.w3.org/2001/XMLSchema element"`
	ComplexTypes    []*ComplexType    `xml:"http://www.w3.org/2001/XMLSchema complexType"`
	SimpleTypes     []*SimpleType     `xml:"http://www.w3.org/2001/XMLSchema simpleType"`
	AttributeGroups []*AttributeGroup `xml:"http://www.w3.org/2001/XMLSchema attributeGroup"`
}

// Element is an xs:element declaration, top-level or local.
type Element struct {
	Name      string `xml:"name,attr"`
	Ref       string `xml:"ref,attr"`
	Type      string `xml:"type,attr"`
	MinOccurs string `xml:"minOccurs,attr"`
	MaxOccurs string `xml:"maxOccurs,attr"`

	Annotation  *Annotation  `xml:"http://www.w3.org/2001/XMLSchema annotation"`
	ComplexType *ComplexType `xml:"http://www.w3.org/2001/XMLSchema complexType"`
	SimpleType  *SimpleType  `xml:"http://www.w3.org/2001/XMLSchema simpleType"`
}

// ComplexType is an xs:complexType definition, named or inline.
// XSD grammar puts the content group before the attribute declarations, so
// separate fields still reflect declaration order.
type ComplexType struct {
	Name string `xml:"name,attr"`

	Annotation      *Annotation       `xml:"http://www.w3.org/2001/XMLSchema annotation"`
	Sequence        *Group            `xml:"http://www.w3.org/2001/XMLSchema sequence"`
	Choice          *Group            `xml:"http://www.w3.org/2001/XMLSchema choice"`
	All             *Group            `xml:"http://www.w3.org/2001/XMLSchema all"`
	SimpleContent   *Content          `xml:"http://www.w3.org/2001/XMLSchema simpleContent"`
	ComplexContent  *Content          `xml:"http://www.w3.org/2001/XMLSchema complexContent"`
	Attributes      []*Attribute      `xml:"http://www.w3.org/2001/XMLSchema attribute"`
	AttributeGroups []*AttributeGroup `xml:"http://www.w3.org/2001/XMLSchema attributeGroup"`
}

// ContentGroup returns the single content model group of the type, if any.
func (ct *ComplexType) ContentGroup() *Group {
	switch {
	case ct.Sequence != nil:
		return ct.Sequence
	case ct.Choice != nil:
		return ct.Choice
	case ct.All != nil:
		return ct.All
	}
	return nil
}

// Group is an xs:sequence, xs:choice or xs:all model group.
// It implements xml.Unmarshaler to preserve the declaration order of its
// particles, which separate slice fields would lose.
type Group struct {
	Kind      string
	MinOccurs string
	MaxOccurs string
	Particles []Particle
}

// Particle is one ordered child of a model group: either a local element or
// a nested group.
type Particle struct {
	Element *Element
	Group   *Group
}

func (g *Group) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	g.Kind = start.Name.Local
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "minOccurs":
			g.MinOccurs = a.Value
		case "maxOccurs":
			g.MaxOccurs = a.Value
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != Namespace {
				if err := d.Skip(); err != nil {
					return err
				}
				continue
			}
			switch t.Name.Local {
			case "element":
				el := &Element{}
				if err := d.DecodeElement(el, &t); err != nil {
					return err
				}
				g.Particles = append(g.Particles, Particle{Element: el})
			case "sequence", "choice", "all":
				sub := &Group{}
				if err := d.DecodeElement(sub, &t); err != nil {
					return err
				}
				g.Particles = append(g.Particles, Particle{Group: sub})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// Attribute is an xs:attribute declaration.
type Attribute struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
	Use  string `xml:"use,attr"`

	Annotation *Annotation `xml:"http://www.w3.org/2001/XMLSchema annotation"`
	SimpleType *SimpleType `xml:"http://www.w3.org/2001/XMLSchema simpleType"`
}

// AttributeGroup is an xs:attributeGroup definition or reference.
type AttributeGroup struct {
	Name string `xml:"name,attr"`
	Ref  string `xml:"ref,attr"`

	Attributes []*Attribute `xml:"http://www.w3.org/2001/XMLSchema attribute"`
}

// SimpleType is an xs:simpleType definition, named or inline.
type SimpleType struct {
	Name string `xml:"name,attr"`

	Annotation  *Annotation  `xml:"http://www.w3.org/2001/XMLSchema annotation"`
	Restriction *Restriction `xml:"http://www.w3.org/2001/XMLSchema restriction"`
}

// Restriction is an xs:restriction with its constraining facets.
type Restriction struct {
	Base string `xml:"base,attr"`

	Facets []Facet `xml:",any"`
}

// Facet is one constraining facet such as xs:pattern or xs:enumeration.
type Facet struct {
	XMLName xml.Name
	Value   string `xml:"value,attr"`
}

// Content is an xs:simpleContent or xs:complexContent wrapper.
type Content struct {
	Extension   *Extension `xml:"http://www.w3.org/2001/XMLSchema extension"`
	Restriction *Extension `xml:"http://www.w3.org/2001/XMLSchema restriction"`
}

// Derivation returns whichever derivation the content declares.
func (c *Content) Derivation() *Extension {
	if c.Extension != nil {
		return c.Extension
	}
	return c.Restriction
}

// Extension models both xs:extension and xs:restriction inside a content
// wrapper: a base type, an optional content group, attributes and facets.
type Extension struct {
	Base string `xml:"base,attr"`

	Sequence        *Group            `xml:"http://www.w3.org/2001/XMLSchema sequence"`
	Choice          *Group            `xml:"http://www.w3.org/2001/XMLSchema choice"`
	All             *Group            `xml:"http://www.w3.org/2001/XMLSchema all"`
	Attributes      []*Attribute      `xml:"http://www.w3.org/2001/XMLSchema attribute"`
	AttributeGroups []*AttributeGroup `xml:"http://www.w3.org/2001/XMLSchema attributeGroup"`
	Facets          []Facet           `xml:",any"`
}

// ContentGroup returns the content model group of the derivation, if any.
func (x *Extension) ContentGroup() *Group {
	switch {
	case x.Sequence != nil:
		return x.Sequence
	case x.Choice != nil:
		return x.Choice
	case x.All != nil:
		return x.All
	}
	return nil
}

// Annotation is an xs:annotation holding documentation text.
type Annotation struct {
	Documentation []string `xml:"http://www.w3.org/2001/XMLSchema documentation"`
}

// Text returns the first documentation entry, trimmed by the caller.
func (a *Annotation) Text() string {
	if a == nil || len(a.Documentation) == 0 {
		return ""
	}
	return a.Documentation[0]
}
