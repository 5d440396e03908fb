package config

const (
	// DefaultThreshold is the acceptance threshold below which a candidate
	// pairing is not materialized as a match.
	DefaultThreshold = 0.7

	// DefaultSuggestionFloor is the lower bound for reviewer suggestions
	// built from fields left unmatched by the assignment.
	DefaultSuggestionFloor = 0.3

	DefaultNameWeight = 0.5
	DefaultPathWeight = 0.3
	DefaultTypeWeight = 0.2

	// DefaultIncompatibleCeiling caps the composite score of a pair whose
	// base types are incompatible, regardless of name similarity.
	DefaultIncompatibleCeiling = 0.2
)

// MatchConfig defines the scoring weights and thresholds of the mapping engine.
// All values are fixed per run; the engine itself holds no mutable state.
type MatchConfig struct {
	Threshold           float64 `koanf:"threshold" yaml:"threshold"`
	SuggestionFloor     float64 `koanf:"suggestionFloor" yaml:"suggestionFloor"`
	NameWeight          float64 `koanf:"nameWeight" yaml:"nameWeight"`
	PathWeight          float64 `koanf:"pathWeight" yaml:"pathWeight"`
	TypeWeight          float64 `koanf:"typeWeight" yaml:"typeWeight"`
	IncompatibleCeiling float64 `koanf:"incompatibleCeiling" yaml:"incompatibleCeiling"`
}

func NewMatchConfig() *MatchConfig {
	return &MatchConfig{
		Threshold:           DefaultThreshold,
		SuggestionFloor:     DefaultSuggestionFloor,
		NameWeight:          DefaultNameWeight,
		PathWeight:          DefaultPathWeight,
		TypeWeight:          DefaultTypeWeight,
		IncompatibleCeiling: DefaultIncompatibleCeiling,
	}
}

func (c *MatchConfig) ensureValues() {
	if c.Threshold <= 0 {
		c.Threshold = DefaultThreshold
	}
	if c.SuggestionFloor <= 0 {
		c.SuggestionFloor = DefaultSuggestionFloor
	}
	if c.NameWeight+c.PathWeight+c.TypeWeight <= 0 {
		c.NameWeight = DefaultNameWeight
		c.PathWeight = DefaultPathWeight
		c.TypeWeight = DefaultTypeWeight
	}
	if c.IncompatibleCeiling <= 0 {
		c.IncompatibleCeiling = DefaultIncompatibleCeiling
	}
}
