package synth

import (
	"math/rand"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var stopWords = map[string]bool{
	"the": true, "and": true, "with": true, "from": true, "into": true,
	"when": true, "then": true, "that": true, "this": true, "every": true,
	"each": true, "send": true, "make": true, "have": true, "will": true,
	"automated": true, "workflow": true, "automation": true,
}

var nameSuffixes = []string{"Workflow", "Automation"}

// WorkflowName derives a display name from the description: the first few
// content words, title-cased, plus a generic suffix. The suffix choice is
// random on purpose; naming may vary between calls, structure may not.
func WorkflowName(text string) string {
	titler := cases.Title(language.English)

	var words []string

	for _, word := range strings.Fields(strings.ToLower(text)) {
		trimmed := strings.Trim(word, ".,!?;:&#")
		if len(trimmed) <= 3 || stopWords[trimmed] {
			continue
		}

		words = append(words, titler.String(trimmed))
		if len(words) == 3 {
			break
		}
	}

	suffix := nameSuffixes[rand.Intn(len(nameSuffixes))]

	if len(words) == 0 {
		return "Generated " + suffix
	}

	return strings.Join(words, " ") + " " + suffix
}

// nameAllocator hands out workflow-unique node names. Names double as
// connection-map keys, so collisions would corrupt the graph.
type nameAllocator struct {
	used map[string]int
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{used: make(map[string]int)}
}

// Allocate returns the label itself on first use, then "label 2",
// "label 3", and so on.
func (a *nameAllocator) Allocate(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "Node"
	}

	count := a.used[label]
	a.used[label] = count + 1

	if count == 0 {
		return label
	}

	candidate := label + " " + strconv.Itoa(count+1)
	for a.used[candidate] > 0 {
		count++
		a.used[label] = count + 1
		candidate = label + " " + strconv.Itoa(count+1)
	}

	a.used[candidate] = 1

	return candidate
}
