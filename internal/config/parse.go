package config

// ParseConfig defines the extraction configuration shared by all extractors.
// MaxLevels is the maximum path depth to extract, 0 means unlimited.
// MaxRecursionLevels is the number of times a type already on the descent
// path may be re-entered before expansion stops. 0 means a re-entered type
// is recorded but its children are not expanded.
// KeepCase keeps schema names as declared instead of folding them to
// lowerCamel.
type ParseConfig struct {
	MaxLevels          int  `koanf:"maxLevels" yaml:"maxLevels"`
	MaxRecursionLevels int  `koanf:"maxRecursionLevels" yaml:"maxRecursionLevels"`
	KeepCase           bool `koanf:"keepCase" yaml:"keepCase"`
}

func NewParseConfig() *ParseConfig {
	return &ParseConfig{
		MaxLevels: 0,
	}
}
