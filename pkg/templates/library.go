package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/flowdraft/flowdraft/pkg/registry"
)

// Library is an ordered, immutable-after-load collection of templates.
// Registration order is the matcher's tie-break, so load order matters and
// must be deterministic.
type Library struct {
	templates []*Template
	byID      map[string]*Template
	validate  *validator.Validate
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{
		byID:     make(map[string]*Template),
		validate: validator.New(),
	}
}

// Register appends a template. Duplicate ids are rejected to keep the
// tie-break order unambiguous.
func (l *Library) Register(template *Template) error {
	if err := l.validate.Struct(template); err != nil {
		return fmt.Errorf("invalid template %q: %w", template.ID, err)
	}

	if _, exists := l.byID[template.ID]; exists {
		return fmt.Errorf("template %q already registered", template.ID)
	}

	l.templates = append(l.templates, template)
	l.byID[template.ID] = template

	return nil
}

// Get returns a template by id.
func (l *Library) Get(id string) (*Template, bool) {
	template, ok := l.byID[id]
	return template, ok
}

// All returns the templates in registration order.
func (l *Library) All() []*Template {
	return l.templates
}

// Len returns the number of registered templates.
func (l *Library) Len() int {
	return len(l.templates)
}

// LoadDir registers every *.json template file in the directory, in
// lexical filename order. Each file holds a single template object.
func (l *Library) LoadDir(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read template directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		payload, err := os.ReadFile(filepath.Join(path, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read template file %q: %w", entry.Name(), err)
		}

		var template Template
		if err := json.Unmarshal(payload, &template); err != nil {
			return fmt.Errorf("failed to parse template file %q: %w", entry.Name(), err)
		}

		if err := l.Register(&template); err != nil {
			return err
		}
	}

	return nil
}

// RegisterBuiltin loads the hand-built template set shipped with the
// service.
func (l *Library) RegisterBuiltin() error {
	for _, template := range builtinTemplates() {
		if err := l.Register(template); err != nil {
			return err
		}
	}

	return nil
}

func builtinTemplates() []*Template {
	return []*Template{
		{
			ID:       "webhook-slack-notify",
			Name:     "Webhook Slack Notification",
			Source:   SourceBuiltin,
			Features: []string{"webhook", "slack"},
			Nodes: []TemplateNode{
				{Type: registry.TypeWebhook, Label: "Webhook"},
				{Type: registry.TypeSet, Label: "Prepare Message"},
				{Type: registry.TypeSlack, Label: "Notify Slack"},
			},
		},
		{
			ID:       "content-generation-pipeline",
			Name:     "RSS Content Generation Pipeline",
			Source:   SourceBuiltin,
			Features: []string{"rss", "openai", "parse", "publish"},
			Nodes: []TemplateNode{
				{Type: registry.TypeRSSFeedRead, Label: "Read Feed"},
				{Type: registry.TypeOpenAI, Label: "Generate Content"},
				{Type: registry.TypeXML, Label: "Parse Article"},
				{Type: registry.TypeWordpress, Label: "Publish Post"},
			},
		},
		{
			ID:       "scheduled-api-report",
			Name:     "Scheduled API Report",
			Source:   SourceBuiltin,
			Features: []string{"schedule", "http", "spreadsheet"},
			Nodes: []TemplateNode{
				{Type: registry.TypeScheduleTrigger, Label: "Schedule"},
				{Type: registry.TypeHTTPRequest, Label: "Fetch Data"},
				{Type: registry.TypeSet, Label: "Shape Rows"},
				{Type: registry.TypeGoogleSheets, Label: "Append Rows"},
			},
		},
		{
			ID:       "ai-email-summary",
			Name:     "AI Email Summary",
			Source:   SourceBuiltin,
			Features: []string{"openai", "email"},
			Nodes: []TemplateNode{
				{Type: registry.TypeOpenAI, Label: "Summarize"},
				{Type: registry.TypeEmailSend, Label: "Send Summary"},
			},
		},
		{
			ID:       "database-sync",
			Name:     "Database Sync Pipeline",
			Source:   SourceBuiltin,
			Features: []string{"database", "http", "transform"},
			Nodes: []TemplateNode{
				{Type: registry.TypeHTTPRequest, Label: "Fetch Records"},
				{Type: registry.TypeCode, Label: "Map Records"},
				{Type: registry.TypePostgres, Label: "Upsert"},
			},
		},
		{
			ID:       "conditional-alerting",
			Name:     "Conditional Alerting",
			Source:   SourceBuiltin,
			Features: []string{"condition", "slack", "email"},
			Nodes: []TemplateNode{
				{Type: registry.TypeIf, Label: "Check Severity"},
				{Type: registry.TypeSlack, Label: "Alert Channel"},
				{Type: registry.TypeEmailSend, Label: "Alert Oncall"},
			},
		},
	}
}
