package normalize

import "strings"

// genericExpansions replaces single generic nouns with a concrete phrase the
// rest of the pipeline can work with.
var genericExpansions = map[string]string{
	"thing":      "data processing workflow",
	"stuff":      "data handling workflow",
	"workflow":   "automated data processing workflow",
	"process":    "automated business process workflow",
	"automation": "general purpose automation workflow",
	"task":       "scheduled task execution workflow",
	"data":       "data transformation workflow",
	"job":        "recurring job execution workflow",
}

// industries maps industry keywords to the label prepended to the rewritten
// description, checked in order.
var industries = []struct {
	keyword string
	label   string
}{
	{"healthcare", "healthcare"},
	{"medical", "healthcare"},
	{"finance", "finance"},
	{"banking", "finance"},
	{"ecommerce", "e-commerce"},
	{"e-commerce", "e-commerce"},
	{"shop", "e-commerce"},
	{"marketing", "marketing"},
	{"hr ", "human resources"},
	{"recruiting", "human resources"},
	{"logistics", "logistics"},
	{"education", "education"},
}

// rewrite expands single generic nouns and prefixes an industry label when
// one is recognizable. Texts that are already specific pass through.
func rewrite(text string, info *Info) string {
	lowered := strings.ToLower(strings.TrimSpace(text))

	if expansion, ok := genericExpansions[lowered]; ok {
		text = expansion
		lowered = expansion

		info.Applied = append(info.Applied, "rewrite")
	}

	for _, industry := range industries {
		if strings.Contains(lowered, industry.keyword) &&
			!strings.HasPrefix(lowered, industry.label) {
			text = industry.label + " " + text
			info.Applied = append(info.Applied, "industry")

			break
		}
	}

	return text
}
