package normalize

import (
	"slices"
	"strings"
)

var actionVerbs = []string{
	"send", "fetch", "create", "update", "post", "notify", "sync",
	"publish", "generate", "monitor", "collect", "import", "export",
}

var workflowNouns = []string{
	"workflow", "automation", "pipeline", "trigger", "webhook",
	"schedule", "integration", "notification",
}

var genericTerms = []string{"thing", "stuff", "something", "whatever"}

// score computes the confidence for a normalized description. Untouched,
// mid-length, action-oriented text scores highest; any non-empty result is
// clamped to a floor.
func score(text string, info *Info) float64 {
	confidence := 1.0

	// Heavier transformations mean we understood the input less.
	penalties := map[string]float64{
		"default":  0.45,
		"coerce":   0.2,
		"expand":   0.25,
		"sanitize": 0.15,
		"rewrite":  0.2,
		"industry": 0.0,
		"collapse": 0.05,
		"truncate": 0.1,
	}

	for _, applied := range info.Applied {
		confidence -= penalties[applied]
	}

	// Mid-length descriptions carry the most signal.
	switch length := len(text); {
	case length < 10:
		confidence -= 0.2
	case length <= 400:
		confidence += 0.1
	case length > 2000:
		confidence -= 0.1
	}

	words := strings.Fields(strings.ToLower(text))

	if containsAny(words, actionVerbs) {
		confidence += 0.1
	}

	if containsAny(words, workflowNouns) {
		confidence += 0.05
	}

	if info.hasApplied("industry") {
		confidence += 0.05
	}

	if containsAny(words, genericTerms) {
		confidence -= 0.1
	}

	if confidence > 1.0 {
		confidence = 1.0
	}

	if info.Rejected {
		return 0
	}

	if confidence < confidenceFloor && text != "" {
		confidence = confidenceFloor
	}

	return confidence
}

func (i *Info) hasApplied(name string) bool {
	return slices.Contains(i.Applied, name)
}

func containsAny(words, needles []string) bool {
	for _, word := range words {
		trimmed := strings.Trim(word, ".,!?;:")
		if slices.Contains(needles, trimmed) {
			return true
		}
	}

	return false
}
