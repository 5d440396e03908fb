package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/mapping"
)

// FieldsWorkbook builds a workbook with one sheet listing the extracted
// fields, one row per field in list order. The caller owns the file and is
// responsible for saving and closing it.
func FieldsWorkbook(fields field.List, cfg *config.ExportConfig) (*excelize.File, error) {
	cfg = exportConfigOrDefault(cfg)

	rows := make([][]string, 0, len(fields)+1)
	rows = append(rows, fieldHeader(cfg.MaxLevels))
	for _, f := range fields {
		rows = append(rows, fieldRow(f, cfg.MaxLevels))
	}
	return workbook(cfg.SheetName, rows)
}

// MappingWorkbook builds a workbook with one sheet per mapping result,
// one row per entry in result order.
func MappingWorkbook(res *mapping.Result, cfg *config.ExportConfig) (*excelize.File, error) {
	cfg = exportConfigOrDefault(cfg)

	rows := make([][]string, 0, len(res.Entries)+1)
	rows = append(rows, mappingHeader())
	for _, e := range res.Entries {
		rows = append(rows, mappingRow(e))
	}
	return workbook(cfg.SheetName, rows)
}

func workbook(sheet string, rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}
