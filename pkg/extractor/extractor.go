package extractor

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
)

// Extractor normalizes one schema document into the canonical field list.
// Implementations exist per schema dialect and are selected by input format.
type Extractor interface {
	Extract() (field.List, error)
}

// Format is the schema dialect of an input document.
type Format string

const (
	FormatXSD        Format = "xsd"
	FormatJSONSchema Format = "jsonschema"
	FormatOpenAPI    Format = "openapi"
	FormatUnknown    Format = ""
)

// DetectFormat guesses the schema dialect from the file name and, when that
// is not conclusive, from the document content.
func DetectFormat(filePath string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xsd", ".wsdl":
		return FormatXSD
	case ".yml", ".yaml":
		return FormatOpenAPI
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '<' {
		return FormatXSD
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		var probe struct {
			OpenAPI string `json:"openapi"`
			Swagger string `json:"swagger"`
		}
		if err := json.Unmarshal(trimmed, &probe); err == nil && (probe.OpenAPI != "" || probe.Swagger != "") {
			return FormatOpenAPI
		}
		return FormatJSONSchema
	}
	return FormatUnknown
}
