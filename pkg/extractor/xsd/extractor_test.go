package xsd

import (
	"testing"

	assert2 "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
)

const schemaHead = `<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns:tns="urn:test" targetNamespace="urn:test">`

func extract(t *testing.T, doc string, cfg *config.ParseConfig) field.List {
	t.Helper()

	e, err := New([]byte(doc), cfg)
	require.NoError(t, err)

	fields, err := e.Extract()
	require.NoError(t, err)
	return fields
}

func TestExtractElementsAndAttributes(t *testing.T) {
	assert := assert2.New(t)

	doc := schemaHead + `
  <xs:element name="Test" type="tns:TestType"/>
  <xs:complexType name="TestType">
    <xs:sequence>
      <xs:element name="Elem1" type="xs:string"/>
      <xs:element name="Elem2" type="xs:int"/>
    </xs:sequence>
    <xs:attribute name="Attr1" type="xs:string" use="required"/>
    <xs:attribute name="Attr2" type="xs:boolean"/>
  </xs:complexType>
</xs:schema>`

	fields := extract(t, doc, nil)
	assert.Equal([]string{
		"test",
		"test.elem1",
		"test.elem2",
		"test.attr1",
		"test.attr2",
	}, fields.Paths())

	root := fields[0]
	assert.Equal(field.CategoryElement, root.Category)
	assert.Equal("TestType", root.Type)
	assert.Equal(field.TypeObject, root.BaseType)
	assert.True(root.Required)

	assert.Equal("int", fields[2].Type)
	assert.Equal(field.TypeInteger, fields[2].BaseType)

	attr1 := fields.Find("test.attr1")
	assert.Equal(field.CategoryAttribute, attr1.Category)
	assert.True(attr1.Required)
	assert.Equal("1", attr1.Cardinality.String())

	attr2 := fields.Find("test.attr2")
	assert.False(attr2.Required)
	assert.Equal(field.TypeBoolean, attr2.BaseType)
}

func TestExtractKeepCase(t *testing.T) {
	doc := schemaHead + `
  <xs:element name="OrderHeader" type="xs:string"/>
</xs:schema>`

	t.Run("folded", func(t *testing.T) {
		assert := assert2.New(t)
		fields := extract(t, doc, nil)
		assert.Equal([]string{"orderHeader"}, fields.Paths())
	})

	t.Run("kept", func(t *testing.T) {
		assert := assert2.New(t)
		fields := extract(t, doc, &config.ParseConfig{KeepCase: true})
		assert.Equal([]string{"OrderHeader"}, fields.Paths())
	})
}

func TestExtractChoice(t *testing.T) {
	assert := assert2.New(t)

	doc := schemaHead + `
  <xs:element name="Payment" type="tns:PaymentType"/>
  <xs:complexType name="PaymentType">
    <xs:sequence>
      <xs:choice>
        <xs:element name="Card" type="xs:string"/>
        <xs:element name="Iban" type="xs:string"/>
      </xs:choice>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

	fields := extract(t, doc, nil)
	assert.Equal([]string{"payment", "payment.card", "payment.iban"}, fields.Paths())

	card := fields.Find("payment.card")
	iban := fields.Find("payment.iban")

	// both branches are documented, neither is required
	assert.False(card.Required)
	assert.False(iban.Required)
	assert.Equal(0, card.Cardinality.Min)
	assert.NotEmpty(card.Group)
	assert.Equal(card.Group, iban.Group)
}

func TestExtractRecursiveType(t *testing.T) {
	assert := assert2.New(t)

	doc := schemaHead + `
  <xs:element name="Node" type="tns:NodeType"/>
  <xs:complexType name="NodeType">
    <xs:sequence>
      <xs:element name="Value" type="xs:string"/>
      <xs:element name="Child" type="tns:NodeType" minOccurs="0"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

	fields := extract(t, doc, nil)
	assert.Equal([]string{"node", "node.value", "node.child"}, fields.Paths())

	child := fields.Find("node.child")
	assert.True(child.Recursive)
	assert.Equal("NodeType", child.Type)

	t.Run("one-extra-level", func(t *testing.T) {
		assert := assert2.New(t)
		fields := extract(t, doc, &config.ParseConfig{MaxRecursionLevels: 1})
		assert.Equal([]string{
			"node",
			"node.value",
			"node.child",
			"node.child.value",
			"node.child.child",
		}, fields.Paths())
		assert.True(fields.Find("node.child.child").Recursive)
	})
}

func TestExtractRepeatedElement(t *testing.T) {
	assert := assert2.New(t)

	doc := schemaHead + `
  <xs:element name="Order" type="tns:OrderType"/>
  <xs:complexType name="OrderType">
    <xs:sequence>
      <xs:element name="Item" type="tns:ItemType" minOccurs="0" maxOccurs="unbounded"/>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="ItemType">
    <xs:sequence>
      <xs:element name="Sku" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

	fields := extract(t, doc, nil)
	assert.Equal([]string{"order", "order.item", "order.item.[].sku"}, fields.Paths())

	item := fields.Find("order.item")
	assert.Equal("0..n", item.Cardinality.String())
	assert.Equal("ItemType", item.Type)
	assert.Equal(field.TypeObject, item.BaseType)
}

func TestExtractFacets(t *testing.T) {
	assert := assert2.New(t)

	doc := schemaHead + `
  <xs:element name="Code" type="tns:NarrowCode"/>
  <xs:element name="Status">
    <xs:simpleType>
      <xs:restriction base="xs:string">
        <xs:enumeration value="OPEN"/>
        <xs:enumeration value="CLOSED"/>
      </xs:restriction>
    </xs:simpleType>
  </xs:element>
  <xs:simpleType name="BaseCode">
    <xs:restriction base="xs:string">
      <xs:maxLength value="10"/>
      <xs:pattern value="[A-Z]+"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:simpleType name="NarrowCode">
    <xs:restriction base="tns:BaseCode">
      <xs:maxLength value="5"/>
    </xs:restriction>
  </xs:simpleType>
</xs:schema>`

	fields := extract(t, doc, nil)

	code := fields.Find("code")
	assert.Equal("NarrowCode", code.Type)
	assert.Equal(field.TypeString, code.BaseType)
	// the derived facet overrides the inherited one of the same kind
	assert.Equal("5", code.Constraints[field.ConstraintMaxLength])
	assert.Equal("[A-Z]+", code.Constraints[field.ConstraintPattern])

	status := fields.Find("status")
	assert.Equal("OPEN|CLOSED", status.Constraints[field.ConstraintEnum])
}

func TestExtractComplexContentExtension(t *testing.T) {
	assert := assert2.New(t)

	doc := schemaHead + `
  <xs:element name="Thing" type="tns:DerivedType"/>
  <xs:complexType name="BaseType">
    <xs:sequence>
      <xs:element name="Id" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
  <xs:complexType name="DerivedType">
    <xs:complexContent>
      <xs:extension base="tns:BaseType">
        <xs:sequence>
          <xs:element name="Extra" type="xs:string"/>
        </xs:sequence>
      </xs:extension>
    </xs:complexContent>
  </xs:complexType>
</xs:schema>`

	fields := extract(t, doc, nil)
	assert.Equal([]string{"thing", "thing.id", "thing.extra"}, fields.Paths())
}

func TestExtractSimpleContent(t *testing.T) {
	assert := assert2.New(t)

	doc := schemaHead + `
  <xs:element name="Amount" type="tns:AmountType"/>
  <xs:complexType name="AmountType">
    <xs:simpleContent>
      <xs:extension base="xs:decimal">
        <xs:attribute name="currency" type="xs:string" use="required"/>
      </xs:extension>
    </xs:simpleContent>
  </xs:complexType>
</xs:schema>`

	fields := extract(t, doc, nil)
	assert.Equal([]string{"amount", "amount.currency"}, fields.Paths())

	amount := fields.Find("amount")
	assert.Equal("AmountType", amount.Type)
	assert.Equal(field.TypeNumber, amount.BaseType)

	currency := fields.Find("amount.currency")
	assert.Equal(field.CategoryAttribute, currency.Category)
	assert.True(currency.Required)
}

func TestExtractElementRef(t *testing.T) {
	assert := assert2.New(t)

	doc := schemaHead + `
  <xs:element name="Wrapper" type="tns:WrapperType"/>
  <xs:element name="Shared" type="xs:string"/>
  <xs:complexType name="WrapperType">
    <xs:sequence>
      <xs:element ref="tns:Shared"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

	fields := extract(t, doc, nil)
	assert.Contains(fields.Paths(), "wrapper.shared")
}

func TestExtractMaxLevels(t *testing.T) {
	assert := assert2.New(t)

	doc := schemaHead + `
  <xs:element name="Test" type="tns:TestType"/>
  <xs:complexType name="TestType">
    <xs:sequence>
      <xs:element name="Inner" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

	fields := extract(t, doc, &config.ParseConfig{MaxLevels: 1})
	assert.Equal([]string{"test"}, fields.Paths())
}

func TestExtractWSDL(t *testing.T) {
	assert := assert2.New(t)

	doc := `<?xml version="1.0"?>
<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"
             xmlns:xs="http://www.w3.org/2001/XMLSchema"
             xmlns:tns="urn:test" targetNamespace="urn:test">
  <types>
    <xs:schema targetNamespace="urn:test">
      <xs:element name="Ping" type="xs:string"/>
    </xs:schema>
  </types>
</definitions>`

	fields := extract(t, doc, nil)
	assert.Equal([]string{"ping"}, fields.Paths())
	assert.Equal(field.TypeString, fields[0].BaseType)
}

func TestExtractErrors(t *testing.T) {
	t.Run("malformed-xml", func(t *testing.T) {
		assert := assert2.New(t)
		_, err := New([]byte("<xs:schema"), nil)
		assert.Error(err)

		var parseErr *extractor.ParseError
		assert.ErrorAs(err, &parseErr)
	})

	t.Run("unexpected-root", func(t *testing.T) {
		assert := assert2.New(t)
		_, err := New([]byte(`<foo/>`), nil)
		assert.Error(err)
	})

	t.Run("unknown-prefix", func(t *testing.T) {
		assert := assert2.New(t)
		doc := schemaHead + `
  <xs:element name="Bad" type="missing:Thing"/>
</xs:schema>`
		e, err := New([]byte(doc), nil)
		assert.NoError(err)

		_, err = e.Extract()
		var refErr *extractor.UnresolvedReferenceError
		assert.ErrorAs(err, &refErr)
		assert.Equal("missing:Thing", refErr.Ref)
	})

	t.Run("unresolved-type", func(t *testing.T) {
		assert := assert2.New(t)
		doc := schemaHead + `
  <xs:element name="Bad" type="tns:Missing"/>
</xs:schema>`
		e, err := New([]byte(doc), nil)
		assert.NoError(err)

		_, err = e.Extract()
		var refErr *extractor.UnresolvedReferenceError
		assert.ErrorAs(err, &refErr)
	})

	t.Run("invalid-occurs", func(t *testing.T) {
		assert := assert2.New(t)
		doc := schemaHead + `
  <xs:element name="Bad" type="xs:string" minOccurs="x"/>
</xs:schema>`
		e, err := New([]byte(doc), nil)
		assert.NoError(err)

		_, err = e.Extract()
		var parseErr *extractor.ParseError
		assert.ErrorAs(err, &parseErr)
	})
}

func TestExtractDeterminism(t *testing.T) {
	assert := assert2.New(t)

	doc := schemaHead + `
  <xs:element name="Test" type="tns:TestType"/>
  <xs:complexType name="TestType">
    <xs:sequence>
      <xs:element name="B" type="xs:string"/>
      <xs:element name="A" type="xs:string"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

	first := extract(t, doc, nil)
	second := extract(t, doc, nil)
	assert.Equal(first.Paths(), second.Paths())

	// declaration order, not sorted
	assert.Equal([]string{"test", "test.b", "test.a"}, first.Paths())
}
