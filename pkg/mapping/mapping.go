package mapping

import (
	"fmt"
	"sort"

	"github.com/marlonoliveira182/the-forge-sub002/internal/config"
	"github.com/marlonoliveira182/the-forge-sub002/pkg/field"
)

// InvalidInputError is returned when the engine is called with a
// structurally invalid field list.
type InvalidInputError struct {
	Side string
	Err  error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s field list: %v", e.Side, e.Err)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// Engine computes a one-to-one correspondence between two field lists.
// It is a pure function over its inputs; the configuration is fixed at
// construction time.
type Engine struct {
	cfg *config.MatchConfig
}

func NewEngine(cfg *config.MatchConfig) *Engine {
	if cfg == nil {
		cfg = config.NewMatchConfig()
	}
	return &Engine{cfg: cfg}
}

// pair is one scored source/target combination.
type pair struct {
	s, t  int
	score float64
}

// Map scores every source/target pair, selects a one-to-one assignment and
// returns the complete result: every input field appears in exactly one
// entry, matched or unmatched.
func (e *Engine) Map(source, target field.List) (*Result, error) {
	if err := source.Validate(); err != nil {
		return nil, &InvalidInputError{Side: "source", Err: err}
	}
	if err := target.Validate(); err != nil {
		return nil, &InvalidInputError{Side: "target", Err: err}
	}

	scores := e.scoreMatrix(source, target)
	matched := e.assign(source, target, scores)

	res := &Result{}
	targetTaken := make([]bool, len(target))

	for si, f := range source {
		ti, ok := matched[si]
		if !ok {
			continue
		}
		targetTaken[ti] = true

		entry := Entry{
			Source:    newMappedField(f),
			Target:    newMappedField(target[ti]),
			Score:     scores[si][ti],
			MatchType: MatchFuzzy,
		}
		if isExact(f, target[ti]) {
			entry.MatchType = MatchExact
		}
		res.Entries = append(res.Entries, entry)
	}

	for si, f := range source {
		if _, ok := matched[si]; ok {
			continue
		}
		res.Entries = append(res.Entries, Entry{
			Source:      newMappedField(f),
			MatchType:   MatchUnmatched,
			Suggestions: e.suggestions(scores[si], target, targetTaken),
		})
	}

	for ti, f := range target {
		if targetTaken[ti] {
			continue
		}
		res.Entries = append(res.Entries, Entry{
			Target:    newMappedField(f),
			MatchType: MatchUnmatched,
		})
	}

	return res, nil
}

func (e *Engine) scoreMatrix(source, target field.List) [][]float64 {
	scores := make([][]float64, len(source))
	for si, s := range source {
		row := make([]float64, len(target))
		for ti, t := range target {
			row[ti] = composite(e.cfg, s, t)
		}
		scores[si] = row
	}
	return scores
}

// assign selects a one-to-one matching over all pairs at or above the
// acceptance threshold. Pairs are taken greedily in global score order,
// then a swap pass re-checks displaced fields: two matches trade targets
// whenever the trade raises the total without dropping either pair below
// the threshold.
func (e *Engine) assign(source, target field.List, scores [][]float64) map[int]int {
	var pairs []pair
	for si := range source {
		for ti := range target {
			if scores[si][ti] >= e.cfg.Threshold {
				pairs = append(pairs, pair{s: si, t: ti, score: scores[si][ti]})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		if a.score != b.score {
			return a.score > b.score
		}
		da := depthDiff(source[a.s], target[a.t])
		db := depthDiff(source[b.s], target[b.t])
		if da != db {
			return da < db
		}
		pa := source[a.s].JoinedPath() + "\x00" + target[a.t].JoinedPath()
		pb := source[b.s].JoinedPath() + "\x00" + target[b.t].JoinedPath()
		return pa < pb
	})

	matched := make(map[int]int)
	targetOf := make(map[int]int)
	for _, p := range pairs {
		if _, ok := matched[p.s]; ok {
			continue
		}
		if _, ok := targetOf[p.t]; ok {
			continue
		}
		matched[p.s] = p.t
		targetOf[p.t] = p.s
	}

	e.improve(matched, targetOf, len(source), len(target), scores)
	return matched
}

// improve repairs what a greedy pick leaves behind: an early pair can claim
// a target a later field needed, either stranding that field entirely or
// settling for a lower total. Bounded rounds of displacement and pair swaps
// run until neither finds anything to change.
func (e *Engine) improve(matched, targetOf map[int]int, nSource, nTarget int, scores [][]float64) {
	for round := 0; round < nSource+1; round++ {
		changed := e.displaceOnce(matched, targetOf, nSource, nTarget, scores)
		if e.swapOnce(matched, targetOf, scores) {
			changed = true
		}
		if !changed {
			return
		}
	}
}

// displaceOnce lets unmatched sources reclaim a taken target when the
// current holder has a free alternative at or above the threshold and the
// move raises the total score. One displacement per source per round.
func (e *Engine) displaceOnce(matched, targetOf map[int]int, nSource, nTarget int, scores [][]float64) bool {
	changed := false

	for si := 0; si < nSource; si++ {
		if _, ok := matched[si]; ok {
			continue
		}

		bestGain := 0.0
		bestT, bestAlt := -1, -1

		for ti := 0; ti < nTarget; ti++ {
			if scores[si][ti] < e.cfg.Threshold {
				continue
			}
			holder, taken := targetOf[ti]
			if !taken {
				// free target above the threshold: take it outright
				if gain := scores[si][ti]; gain > bestGain {
					bestGain, bestT, bestAlt = gain, ti, -1
				}
				continue
			}

			for tj := 0; tj < nTarget; tj++ {
				if _, occupied := targetOf[tj]; occupied || scores[holder][tj] < e.cfg.Threshold {
					continue
				}
				gain := scores[si][ti] + scores[holder][tj] - scores[holder][ti]
				if gain > bestGain {
					bestGain, bestT, bestAlt = gain, ti, tj
				}
			}
		}

		if bestT < 0 {
			continue
		}
		if holder, taken := targetOf[bestT]; taken {
			matched[holder] = bestAlt
			targetOf[bestAlt] = holder
		}
		matched[si] = bestT
		targetOf[bestT] = si
		changed = true
	}
	return changed
}

// swapOnce trades targets between two matched pairs whenever the trade
// raises the total without dropping either pair below the threshold.
func (e *Engine) swapOnce(matched, targetOf map[int]int, scores [][]float64) bool {
	sources := make([]int, 0, len(matched))
	for si := range matched {
		sources = append(sources, si)
	}
	sort.Ints(sources)

	changed := false
	for i := 0; i < len(sources); i++ {
		for j := i + 1; j < len(sources); j++ {
			a, b := sources[i], sources[j]
			ta, tb := matched[a], matched[b]

			curr := scores[a][ta] + scores[b][tb]
			swapped := scores[a][tb] + scores[b][ta]
			if swapped > curr &&
				scores[a][tb] >= e.cfg.Threshold &&
				scores[b][ta] >= e.cfg.Threshold {
				matched[a], matched[b] = tb, ta
				targetOf[tb], targetOf[ta] = a, b
				changed = true
			}
		}
	}
	return changed
}

// suggestions ranks the still-free targets scoring at or above the
// suggestion floor for one unmatched source, best first.
func (e *Engine) suggestions(row []float64, target field.List, taken []bool) []Candidate {
	var res []Candidate
	for ti, f := range target {
		if taken[ti] || row[ti] < e.cfg.SuggestionFloor {
			continue
		}
		res = append(res, Candidate{Path: f.JoinedPath(), Score: row[ti]})
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		return res[i].Path < res[j].Path
	})
	return res
}

func isExact(s, t *field.Field) bool {
	return s.JoinedPath() == t.JoinedPath() && s.BaseType == t.BaseType
}

func depthDiff(s, t *field.Field) int {
	d := s.Depth() - t.Depth()
	if d < 0 {
		return -d
	}
	return d
}

func newMappedField(f *field.Field) *MappedField {
	return &MappedField{
		Path:        f.JoinedPath(),
		Type:        f.Type,
		BaseType:    f.BaseType,
		Cardinality: f.Cardinality.String(),
		Description: f.Description,
		Details:     f.ConstraintString(),
	}
}
