package templates

import (
	"strings"

	"github.com/flowdraft/flowdraft/pkg/models"
)

// DefaultScoreFloor is the minimum score a template must reach to count as
// a match.
const DefaultScoreFloor = 0.2

// Matcher scores a library's templates against detected features and the
// normalized description text.
type Matcher struct {
	library *Library
	floor   float64
}

// NewMatcher creates a matcher with the default score floor.
func NewMatcher(library *Library) *Matcher {
	return &Matcher{library: library, floor: DefaultScoreFloor}
}

// WithFloor overrides the score floor. Callers that prefer synthesis from
// bare features can raise it; callers that always want a template can lower
// it.
func (m *Matcher) WithFloor(floor float64) *Matcher {
	return &Matcher{library: m.library, floor: floor}
}

// BestMatch returns the highest-scoring template, or nil when no template
// reaches the floor. Ties keep the first-registered template.
func (m *Matcher) BestMatch(features models.FeatureMatch, text string) (*Template, float64) {
	var (
		best      *Template
		bestScore float64
	)

	for _, template := range m.library.All() {
		score := m.Score(template, features, text)
		if score > bestScore {
			best = template
			bestScore = score
		}
	}

	if bestScore < m.floor {
		return nil, bestScore
	}

	return best, bestScore
}

// Score computes one template's score. Hand-built templates score by
// feature coverage, corpus-derived templates by node-type overlap; both mix
// in word overlap with the template name.
func (m *Matcher) Score(template *Template, features models.FeatureMatch, text string) float64 {
	overlap := wordOverlap(text, template.Name)

	if template.Source == SourceCorpus {
		return 0.6*nodeTypeCoverage(template, features) + 0.4*overlap
	}

	return 0.7*featureCoverage(template, features) + 0.3*overlap
}

func featureCoverage(template *Template, features models.FeatureMatch) float64 {
	if len(template.Features) == 0 {
		return 0
	}

	matched := 0

	for _, feature := range template.Features {
		if features.Has(feature) {
			matched++
		}
	}

	return float64(matched) / float64(len(template.Features))
}

func nodeTypeCoverage(template *Template, features models.FeatureMatch) float64 {
	required := features.NodeTypes()
	if len(required) == 0 {
		return 0
	}

	available := make(map[string]bool)
	for _, nodeType := range template.AllNodeTypes() {
		available[nodeType] = true
	}

	matched := 0

	for _, nodeType := range required {
		if available[nodeType] {
			matched++
		}
	}

	return float64(matched) / float64(len(required))
}

// wordOverlap is the Jaccard index over lower-cased whitespace tokens.
func wordOverlap(a, b string) float64 {
	wordsA := tokenSet(a)
	wordsB := tokenSet(b)

	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0

	for word := range wordsA {
		if wordsB[word] {
			intersection++
		}
	}

	union := len(wordsA) + len(wordsB) - intersection

	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		set[strings.Trim(word, ".,!?;:")] = true
	}

	return set
}
