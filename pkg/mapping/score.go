package mapping

import (
	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
)

// typeFamily buckets base types so compatible kinds earn partial credit.
type typeFamily int

const (
	familyUnknown typeFamily = iota
	familyString
	familyNumeric
	familyBoolean
	familyObject
	familyArray
	familyTemporal
	familyBinary
)

var typeFamilies = map[string]typeFamily{
	field.TypeString:  familyString,
	field.TypeInteger: familyNumeric,
	field.TypeNumber:  familyNumeric,
	field.TypeBoolean: familyBoolean,
	field.TypeObject:  familyObject,
	field.TypeArray:   familyArray,
	"date":            familyTemporal,
	"dateTime":        familyTemporal,
	"time":            familyTemporal,
	"duration":        familyTemporal,
	"base64Binary":    familyBinary,
	"hexBinary":       familyBinary,
}

// nameScore compares the last path segments: the token overlap of the split
// identifiers blended with the edit similarity of the folded names, taking
// whichever view rates the pair higher.
func nameScore(a, b *field.Field) float64 {
	na, nb := normalizeName(a.Name()), normalizeName(b.Name())
	edit := levenshteinNormalized(na, nb)
	overlap := tokenOverlap(tokenize(a.Name()), tokenize(b.Name()))
	if overlap > edit {
		return overlap
	}
	return edit
}

func tokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	seen := make(map[string]bool, len(a))
	for _, t := range a {
		seen[t] = true
	}
	union := len(seen)
	shared := 0
	for _, t := range b {
		if seen[t] {
			seen[t] = false
			shared++
		} else {
			union++
		}
	}
	return float64(shared) / float64(union)
}

// pathScore compares the full paths positionally, rewarding shared ancestor
// names at matching depth. The per-level similarities are summed and divided
// by the longer depth so extra levels dilute the score.
func pathScore(a, b *field.Field) float64 {
	pa, pb := normalizePath(a.Path), normalizePath(b.Path)
	longest := len(pa)
	if len(pb) > longest {
		longest = len(pb)
	}
	if longest == 0 {
		return 0
	}

	depth := len(pa)
	if len(pb) < depth {
		depth = len(pb)
	}
	total := 0.0
	for i := 0; i < depth; i++ {
		total += levenshteinNormalized(pa[i], pb[i])
	}
	return total / float64(longest)
}

// typeScore rates base-type compatibility: identical types score 1, members
// of the same or convertible families score partial credit, incompatible
// types score 0. An empty base type on either side is rated neutral.
func typeScore(a, b *field.Field) float64 {
	ta, tb := a.BaseType, b.BaseType
	if ta == "" || tb == "" {
		return 0.5
	}
	if ta == tb {
		return 1
	}

	fa, fb := typeFamilies[ta], typeFamilies[tb]
	switch {
	case fa == familyUnknown || fb == familyUnknown:
		return 0.5
	case fa == fb:
		return 0.7
	case fa == familyTemporal && fb == familyString,
		fa == familyString && fb == familyTemporal,
		fa == familyBinary && fb == familyString,
		fa == familyString && fb == familyBinary:
		return 0.5
	default:
		return 0
	}
}

// composite combines the three terms with the configured weights, clamped
// to [0,1]. Incompatible base types cap the result regardless of how close
// the names are.
func composite(cfg *config.MatchConfig, s, t *field.Field) float64 {
	ts := typeScore(s, t)
	score := cfg.NameWeight*nameScore(s, t) + cfg.PathWeight*pathScore(s, t) + cfg.TypeWeight*ts

	if ts == 0 && score > cfg.IncompatibleCeiling {
		score = cfg.IncompatibleCeiling
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
