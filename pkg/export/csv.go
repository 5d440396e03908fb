package export

import (
	"encoding/csv"
	"io"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/mapping"
)

// WriteFieldsCSV renders one extracted schema as CSV rows in list order.
func WriteFieldsCSV(w io.Writer, fields field.List, cfg *config.ExportConfig) error {
	cfg = exportConfigOrDefault(cfg)

	cw := csv.NewWriter(w)
	if err := cw.Write(fieldHeader(cfg.MaxLevels)); err != nil {
		return err
	}
	for _, f := range fields {
		if err := cw.Write(fieldRow(f, cfg.MaxLevels)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMappingCSV renders a mapping result as CSV rows in entry order.
func WriteMappingCSV(w io.Writer, res *mapping.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mappingHeader()); err != nil {
		return err
	}
	for _, e := range res.Entries {
		if err := cw.Write(mappingRow(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
