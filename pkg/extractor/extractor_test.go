package extractor

import (
	"testing"

	assert2 "github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		name     string
		filePath string
		data     string
		expected Format
	}{
		{"xsd-extension", "schema.xsd", "", FormatXSD},
		{"wsdl-extension", "service.wsdl", "", FormatXSD},
		{"yaml-extension", "api.yml", "", FormatOpenAPI},
		{"xml-content", "schema.txt", `<?xml version="1.0"?><xs:schema/>`, FormatXSD},
		{"jsonschema-content", "schema.json", `{"type": "object"}`, FormatJSONSchema},
		{"openapi-content", "api.json", `{"openapi": "3.0.0"}`, FormatOpenAPI},
		{"swagger-content", "api.json", `{"swagger": "2.0"}`, FormatOpenAPI},
		{"empty", "unknown.txt", "", FormatUnknown},
		{"garbage", "unknown.txt", "not a schema", FormatUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert2.New(t)
			assert.Equal(tc.expected, DetectFormat(tc.filePath, []byte(tc.data)))
		})
	}
}

func TestErrors(t *testing.T) {
	assert := assert2.New(t)

	parseErr := &ParseError{Path: "a.b", Err: assert2.AnError}
	assert.Contains(parseErr.Error(), "a.b")
	assert.ErrorIs(parseErr, assert2.AnError)

	refErr := &UnresolvedReferenceError{Path: "a.b", Ref: "tns:Missing"}
	assert.Contains(refErr.Error(), "tns:Missing")
	assert.Contains(refErr.Error(), "a.b")
}
