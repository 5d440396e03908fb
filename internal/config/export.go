package config

const (
	// DefaultExportLevels is the number of level columns in the rendered sheet.
	DefaultExportLevels = 8

	DefaultSheetName = "Mapping"
)

// ExportConfig defines the spreadsheet rendering configuration.
type ExportConfig struct {
	MaxLevels int    `koanf:"maxLevels" yaml:"maxLevels"`
	SheetName string `koanf:"sheetName" yaml:"sheetName"`
}

func NewExportConfig() *ExportConfig {
	return &ExportConfig{
		MaxLevels: DefaultExportLevels,
		SheetName: DefaultSheetName,
	}
}

func (c *ExportConfig) ensureValues() {
	if c.MaxLevels <= 0 {
		c.MaxLevels = DefaultExportLevels
	}
	if c.SheetName == "" {
		c.SheetName = DefaultSheetName
	}
}
