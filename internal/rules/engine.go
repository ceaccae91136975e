// Package rules implements the weighted indicator engine behind the
// social-engineering rule score. Each indicator is a named textual pattern
// with a non-negative weight; the engine's score is the weight of the
// triggered indicators normalized by the total catalog weight.
package rules

import (
	"regexp"
	"sort"
	"strings"
)

// Indicator is a single weighted pattern rule. A match on any phrase or
// pattern triggers the indicator; it contributes its weight at most once per
// message regardless of how many times its phrases occur.
type Indicator struct {
	ID          string
	Description string
	Weight      float64
	Phrases     []string
	Patterns    []*regexp.Regexp
}

// Matches reports whether the indicator triggers on the lowercased text
func (i Indicator) Matches(lower string) bool {
	for _, p := range i.Phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	for _, re := range i.Patterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// Engine scores message text against a fixed indicator catalog. The catalog
// is set once at construction and read-only afterwards; Score is a pure
// function of the text and the catalog.
type Engine struct {
	catalog     []Indicator
	totalWeight float64
}

// NewEngine creates an engine over the given catalog. Definition order is
// preserved but carries no meaning for scoring.
func NewEngine(catalog []Indicator) *Engine {
	total := 0.0
	for _, ind := range catalog {
		total += ind.Weight
	}
	return &Engine{catalog: catalog, totalWeight: total}
}

// NewDefaultEngine creates an engine over the built-in catalog
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultCatalog())
}

// Catalog returns the engine's indicator catalog
func (e *Engine) Catalog() []Indicator {
	return e.catalog
}

// Score evaluates every indicator exactly once against the text and returns
// the normalized score in [0,1] together with the sorted descriptions of the
// triggered indicators. Empty text, or an empty catalog, scores 0.
func (e *Engine) Score(text string) (float64, []string) {
	if text == "" || e.totalWeight == 0 {
		return 0, nil
	}

	lower := strings.ToLower(text)

	triggered := 0.0
	seen := make(map[string]struct{})
	var triggers []string
	for _, ind := range e.catalog {
		if !ind.Matches(lower) {
			continue
		}
		triggered += ind.Weight
		if _, dup := seen[ind.Description]; !dup {
			seen[ind.Description] = struct{}{}
			triggers = append(triggers, ind.Description)
		}
	}

	// Sorted for reproducible display and tests
	sort.Strings(triggers)

	return triggered / e.totalWeight, triggers
}
