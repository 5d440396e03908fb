package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/export"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/mapping"
)

var errXLSXNeedsOutput = errors.New("xlsx format requires --output")

// outputFormat resolves the output format from the explicit flag, then the
// output file extension, falling back to csv.
func outputFormat(format, output string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".xlsx":
		return "xlsx"
	case ".json":
		return "json"
	}
	return "csv"
}

func writeFields(fields field.List, output, format string, cfg *config.ExportConfig) error {
	switch outputFormat(format, output) {
	case "xlsx":
		if output == "" {
			return errXLSXNeedsOutput
		}
		wb, err := export.FieldsWorkbook(fields, cfg)
		if err != nil {
			return err
		}
		defer wb.Close()
		return wb.SaveAs(output)
	case "json":
		w, closeFn, err := openOutput(output)
		if err != nil {
			return err
		}
		defer closeFn()
		return export.WriteFieldsJSON(w, fields)
	default:
		w, closeFn, err := openOutput(output)
		if err != nil {
			return err
		}
		defer closeFn()
		return export.WriteFieldsCSV(w, fields, cfg)
	}
}

func writeMapping(res *mapping.Result, output, format string, cfg *config.ExportConfig) error {
	switch outputFormat(format, output) {
	case "xlsx":
		if output == "" {
			return errXLSXNeedsOutput
		}
		wb, err := export.MappingWorkbook(res, cfg)
		if err != nil {
			return err
		}
		defer wb.Close()
		return wb.SaveAs(output)
	case "json":
		w, closeFn, err := openOutput(output)
		if err != nil {
			return err
		}
		defer closeFn()
		return export.WriteMappingJSON(w, res)
	default:
		w, closeFn, err := openOutput(output)
		if err != nil {
			return err
		}
		defer closeFn()
		return export.WriteMappingCSV(w, res)
	}
}

func openOutput(output string) (*os.File, func(), error) {
	if output == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
