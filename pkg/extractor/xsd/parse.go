package xsd

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor"
)

// wsdlDefinitions lifts the first xs:schema out of a WSDL types section.
// Root attributes are kept so namespace bindings declared on the definitions
// element stay resolvable inside the lifted schema.
type wsdlDefinitions struct {
	Attrs []xml.Attr `xml:",any,attr"`
	Types struct {
		Schemas []*Schema `xml:"http://www.w3.org/2001/XMLSchema schema"`
	} `xml:"types"`
}

// parse reads an XSD document, or a WSDL document with an embedded schema,
// into the document model. It returns the schema and any namespace-bearing
// attributes inherited from an enclosing WSDL root.
func parse(data []byte) (*Schema, []xml.Attr, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil, &extractor.ParseError{Err: errors.New("no schema element found")}
			}
			return nil, nil, &extractor.ParseError{Err: err}
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case start.Name.Space == Namespace && start.Name.Local == "schema":
			schema := &Schema{}
			if err := dec.DecodeElement(schema, &start); err != nil {
				return nil, nil, &extractor.ParseError{Err: err}
			}
			return schema, nil, nil

		case start.Name.Local == "definitions":
			// WSDL wrapper
			def := &wsdlDefinitions{}
			if err := dec.DecodeElement(def, &start); err != nil {
				return nil, nil, &extractor.ParseError{Err: err}
			}
			if len(def.Types.Schemas) == 0 {
				return nil, nil, &extractor.ParseError{Err: errors.New("wsdl document has no embedded schema")}
			}
			return def.Types.Schemas[0], def.Attrs, nil

		default:
			return nil, nil, &extractor.ParseError{
				Err: fmt.Errorf("unexpected root element %q", start.Name.Local),
			}
		}
	}
}

// bindings builds a prefix to namespace URI map from xmlns declarations.
// Later declarations override earlier ones, so parent attributes must come
// first.
func bindings(attrSets ...[]xml.Attr) map[string]string {
	res := make(map[string]string)
	for _, attrs := range attrSets {
		for _, a := range attrs {
			switch {
			case a.Name.Space == "xmlns":
				res[a.Name.Local] = a.Value
			case a.Name.Space == "" && a.Name.Local == "xmlns":
				res[""] = a.Value
			}
		}
	}
	return res
}
