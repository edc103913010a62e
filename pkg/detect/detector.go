// Package detect maps free-text descriptions to workflow features and
// candidate node types.
package detect

import (
	"strings"

	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/registry"
)

// Feature pairs a feature name with the keywords that reveal it and the node
// types that can implement it, in preference order.
type Feature struct {
	Name      string
	Keywords  []string
	NodeTypes []string
}

// Detector tests descriptions against a fixed, ordered feature table.
// Definition order only matters as a deterministic tie-break when keyword
// sets overlap.
type Detector struct {
	features []Feature
}

// NewDetector creates a detector with the built-in feature table.
func NewDetector() *Detector {
	return &Detector{features: defaultFeatures()}
}

// Detect returns the features whose keywords occur in the text. A single
// keyword hit is enough per feature. Empty or whitespace-only text yields an
// empty match.
func (d *Detector) Detect(text string) models.FeatureMatch {
	match := make(models.FeatureMatch)

	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return match
	}

	for _, feature := range d.features {
		for _, keyword := range feature.Keywords {
			if strings.Contains(lowered, keyword) {
				match[feature.Name] = feature.NodeTypes
				break
			}
		}
	}

	return match
}

// Features exposes the feature table in definition order.
func (d *Detector) Features() []Feature {
	return d.features
}

func defaultFeatures() []Feature {
	return []Feature{
		{
			Name:      "slack",
			Keywords:  []string{"slack", "channel message"},
			NodeTypes: []string{registry.TypeSlack},
		},
		{
			Name:      "email",
			Keywords:  []string{"email", "e-mail", "mail to", "inbox"},
			NodeTypes: []string{registry.TypeEmailSend},
		},
		{
			Name:      "telegram",
			Keywords:  []string{"telegram"},
			NodeTypes: []string{registry.TypeTelegram},
		},
		{
			Name:      "openai",
			Keywords:  []string{"openai", "gpt", "chatgpt", "ai generate", "summarize", "llm"},
			NodeTypes: []string{registry.TypeOpenAI},
		},
		{
			Name:      "http",
			Keywords:  []string{"http", "api call", "rest", "fetch", "request", "endpoint"},
			NodeTypes: []string{registry.TypeHTTPRequest},
		},
		{
			Name:      "schedule",
			Keywords:  []string{"schedule", "every day", "daily", "hourly", "weekly", "cron", "interval"},
			NodeTypes: []string{registry.TypeScheduleTrigger},
		},
		{
			Name:      "webhook",
			Keywords:  []string{"webhook", "incoming request", "when called"},
			NodeTypes: []string{registry.TypeWebhook},
		},
		{
			Name:      "rss",
			Keywords:  []string{"rss", "feed", "news articles", "blog posts"},
			NodeTypes: []string{registry.TypeRSSFeedRead},
		},
		{
			Name:      "database",
			Keywords:  []string{"database", "postgres", "sql", "query"},
			NodeTypes: []string{registry.TypePostgres},
		},
		{
			Name:      "spreadsheet",
			Keywords:  []string{"google sheet", "spreadsheet", "sheet row"},
			NodeTypes: []string{registry.TypeGoogleSheets},
		},
		{
			Name:      "publish",
			Keywords:  []string{"wordpress", "publish", "blog post", "cms"},
			NodeTypes: []string{registry.TypeWordpress},
		},
		{
			Name:      "parse",
			Keywords:  []string{"xml", "parse", "extract"},
			NodeTypes: []string{registry.TypeXML},
		},
		{
			Name:      "transform",
			Keywords:  []string{"transform", "format", "map fields", "clean up data"},
			NodeTypes: []string{registry.TypeSet, registry.TypeCode},
		},
		{
			Name:      "condition",
			Keywords:  []string{"if ", "condition", "filter", "only when"},
			NodeTypes: []string{registry.TypeIf},
		},
		{
			Name:      "code",
			Keywords:  []string{"javascript", "custom code", "script"},
			NodeTypes: []string{registry.TypeCode},
		},
	}
}
