package config

import (
	"log/slog"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// Config is the main configuration struct.
// Extract drives both schema extractors, Match drives the mapping engine and
// Export drives the spreadsheet renderers.
type Config struct {
	Extract *ParseConfig  `koanf:"extract" yaml:"extract"`
	Match   *MatchConfig  `koanf:"match" yaml:"match"`
	Export  *ExportConfig `koanf:"export" yaml:"export"`
}

// NewDefaultConfig creates a new default config in case the config file is
// missing, not found or any other error.
func NewDefaultConfig() *Config {
	return &Config{
		Extract: NewParseConfig(),
		Match:   NewMatchConfig(),
		Export:  NewExportConfig(),
	}
}

// MustConfig creates a new config from a YAML file path.
// On any error the default config is returned.
func MustConfig(filePath string) *Config {
	res := NewDefaultConfig()

	k := koanf.New(".")
	provider := file.Provider(filePath)
	if err := k.Load(provider, yaml.Parser()); err != nil {
		slog.Error("error loading config. using fallback", "error", err)
		return res
	}

	if err := k.Unmarshal("", res); err != nil {
		slog.Error("error loading config. using fallback", "error", err)
		return NewDefaultConfig()
	}
	res.ensureValues()

	return res
}

// NewConfigFromContent creates a new config from YAML content.
func NewConfigFromContent(content []byte) (*Config, error) {
	k := koanf.New(".")
	provider := rawbytes.Provider(content)
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return nil, err
	}

	cfg := NewDefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.ensureValues()

	return cfg, nil
}

func (c *Config) ensureValues() {
	if c.Extract == nil {
		c.Extract = NewParseConfig()
	}
	if c.Match == nil {
		c.Match = NewMatchConfig()
	}
	c.Match.ensureValues()
	if c.Export == nil {
		c.Export = NewExportConfig()
	}
	c.Export.ensureValues()
}
