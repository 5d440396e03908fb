package export

import (
	"strconv"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/mapping"
)

// fieldHeader builds the header row of a field sheet: one column per path
// level followed by the descriptive columns.
func fieldHeader(maxLevels int) []string {
	row := make([]string, 0, maxLevels+6)
	for i := 1; i <= maxLevels; i++ {
		row = append(row, "Level"+strconv.Itoa(i))
	}
	return append(row, "Category", "Type", "Base Type", "Cardinality", "Details", "Description")
}

// fieldRow renders one field: its path spread over the level columns,
// padded to maxLevels, deeper levels cut off.
func fieldRow(f *field.Field, maxLevels int) []string {
	row := make([]string, 0, maxLevels+6)
	for i := 0; i < maxLevels; i++ {
		if i < len(f.Path) {
			row = append(row, f.Path[i])
		} else {
			row = append(row, "")
		}
	}
	return append(row,
		string(f.Category),
		f.Type,
		f.BaseType,
		f.Cardinality.String(),
		f.ConstraintString(),
		f.Description,
	)
}

func mappingHeader() []string {
	return []string{
		"Source Path", "Source Type", "Source Cardinality", "Source Details",
		"Target Path", "Target Type", "Target Cardinality", "Target Details",
		"Score", "Match", "Suggestions",
	}
}

func mappingRow(e mapping.Entry) []string {
	row := make([]string, 0, 11)
	row = appendSide(row, e.Source)
	row = appendSide(row, e.Target)

	score := ""
	if e.MatchType != mapping.MatchUnmatched {
		score = strconv.FormatFloat(e.Score, 'f', 3, 64)
	}

	return append(row, score, string(e.MatchType), suggestionCell(e.Suggestions))
}

func appendSide(row []string, mf *mapping.MappedField) []string {
	if mf == nil {
		return append(row, "", "", "", "")
	}
	return append(row, mf.Path, mf.Type, mf.Cardinality, mf.Details)
}

func suggestionCell(cands []mapping.Candidate) string {
	res := ""
	for i, c := range cands {
		if i > 0 {
			res += "; "
		}
		res += c.Path + " (" + strconv.FormatFloat(c.Score, 'f', 2, 64) + ")"
	}
	return res
}

func exportConfigOrDefault(cfg *config.ExportConfig) *config.ExportConfig {
	if cfg == nil {
		return config.NewExportConfig()
	}
	return cfg
}
