// Package forge ties the extractors and the mapping engine together behind
// one format-dispatching entry point.
package forge

import (
	"fmt"
	"os"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor/jsonschema"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor/openapi"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/extractor/xsd"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/mapping"
)

// UnknownFormatError is returned when an input document matches none of the
// supported schema dialects.
type UnknownFormatError struct {
	Path string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("cannot detect schema format of %s", e.Path)
}

// Extract normalizes one schema document into a field list, selecting the
// extractor by the detected dialect.
func Extract(filePath string, data []byte, cfg *config.ParseConfig) (field.List, extractor.Format, error) {
	format := extractor.DetectFormat(filePath, data)

	ex, err := newExtractor(format, data, cfg)
	if err != nil {
		return nil, format, err
	}
	if ex == nil {
		return nil, format, &UnknownFormatError{Path: filePath}
	}

	fields, err := ex.Extract()
	return fields, format, err
}

// ExtractFile reads and extracts one schema document from disk.
func ExtractFile(filePath string, cfg *config.ParseConfig) (field.List, extractor.Format, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, extractor.FormatUnknown, err
	}
	return Extract(filePath, data, cfg)
}

// MapFiles extracts a source and a target schema and maps their fields.
func MapFiles(sourcePath, targetPath string, cfg *config.Config) (*mapping.Result, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	source, _, err := ExtractFile(sourcePath, cfg.Extract)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", sourcePath, err)
	}
	target, _, err := ExtractFile(targetPath, cfg.Extract)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", targetPath, err)
	}

	return mapping.NewEngine(cfg.Match).Map(source, target)
}

func newExtractor(format extractor.Format, data []byte, cfg *config.ParseConfig) (extractor.Extractor, error) {
	switch format {
	case extractor.FormatXSD:
		return xsd.New(data, cfg)
	case extractor.FormatJSONSchema:
		return jsonschema.New(data, cfg)
	case extractor.FormatOpenAPI:
		return openapi.New(data, cfg)
	default:
		return nil, nil
	}
}
