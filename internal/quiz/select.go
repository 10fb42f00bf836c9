// Package quiz holds the practice-quiz bookkeeping: picking a random subset
// of a subject's questions, walking through it and scoring the answers.
package quiz

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"uniprep/internal/models"
)

const (
	AllUnits      = "all"
	AnyDifficulty = "any"
)

// Settings filter a question pool. A numeric Unit matches unitNo, any other
// value matches the topic; empty or "all" keeps every unit. Count <= 0 keeps
// every match.
type Settings struct {
	Unit       string
	Difficulty string
	Count      int
}

func (s Settings) matches(q models.Question) bool {
	unit := strings.TrimSpace(s.Unit)
	if unit != "" && !strings.EqualFold(unit, AllUnits) {
		if n, err := strconv.Atoi(unit); err == nil {
			if q.UnitNo != n {
				return false
			}
		} else if q.Topic != unit {
			return false
		}
	}

	difficulty := strings.TrimSpace(s.Difficulty)
	if difficulty != "" && !strings.EqualFold(difficulty, AnyDifficulty) && q.Difficulty != difficulty {
		return false
	}
	return true
}

func Filter(pool []models.Question, s Settings) []models.Question {
	out := make([]models.Question, 0, len(pool))
	for _, q := range pool {
		if s.matches(q) {
			out = append(out, q)
		}
	}
	return out
}

// Select filters pool, shuffles the matches and truncates them to s.Count.
// The pool is left untouched. A nil rng uses the shared source.
func Select(pool []models.Question, s Settings, rng *rand.Rand) []models.Question {
	selected := Filter(pool, s)
	swap := func(i, j int) { selected[i], selected[j] = selected[j], selected[i] }
	if rng != nil {
		rng.Shuffle(len(selected), swap)
	} else {
		rand.Shuffle(len(selected), swap)
	}

	if s.Count > 0 && s.Count < len(selected) {
		selected = selected[:s.Count]
	}
	return selected
}

// AvailableUnits lists the distinct unit numbers of pool in ascending order.
func AvailableUnits(pool []models.Question) []int {
	seen := make(map[int]struct{})
	units := []int{}
	for _, q := range pool {
		if _, ok := seen[q.UnitNo]; ok {
			continue
		}
		seen[q.UnitNo] = struct{}{}
		units = append(units, q.UnitNo)
	}
	sort.Ints(units)
	return units
}
