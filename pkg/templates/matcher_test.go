package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowdraft/flowdraft/pkg/models"
	"github.com/flowdraft/flowdraft/pkg/registry"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()

	library := NewLibrary()
	require.NoError(t, library.RegisterBuiltin())

	return library
}

func TestRegister_DuplicateID(t *testing.T) {
	library := newTestLibrary(t)

	err := library.Register(&Template{
		ID:     "webhook-slack-notify",
		Name:   "Duplicate",
		Source: SourceBuiltin,
		Nodes:  []TemplateNode{{Type: registry.TypeSlack}},
	})
	assert.Error(t, err)
}

func TestRegister_InvalidTemplate(t *testing.T) {
	library := NewLibrary()

	err := library.Register(&Template{ID: "no-nodes", Name: "No Nodes", Source: SourceBuiltin})
	assert.Error(t, err)
}

func TestBestMatch_FeatureTemplate(t *testing.T) {
	library := newTestLibrary(t)
	matcher := NewMatcher(library)

	features := models.FeatureMatch{
		"webhook": {registry.TypeWebhook},
		"slack":   {registry.TypeSlack},
	}

	template, score := matcher.BestMatch(features, "send a slack notification from a webhook")
	require.NotNil(t, template)
	assert.Equal(t, "webhook-slack-notify", template.ID)
	assert.Greater(t, score, 0.5)
}

func TestBestMatch_NoMatchBelowFloor(t *testing.T) {
	library := newTestLibrary(t)
	matcher := NewMatcher(library)

	template, score := matcher.BestMatch(models.FeatureMatch{}, "zzz qqq")
	assert.Nil(t, template)
	assert.Less(t, score, DefaultScoreFloor)
}

func TestBestMatch_CorpusTemplate(t *testing.T) {
	library := NewLibrary()
	require.NoError(t, library.Register(&Template{
		ID:     "corpus-1",
		Name:   "Slack Alert",
		Source: SourceCorpus,
		Nodes: []TemplateNode{
			{Type: registry.TypeWebhook},
			{Type: registry.TypeSlack},
		},
	}))

	matcher := NewMatcher(library)
	features := models.FeatureMatch{
		"slack": {registry.TypeSlack},
	}

	template, score := matcher.BestMatch(features, "post a slack alert")
	require.NotNil(t, template)
	assert.Equal(t, "corpus-1", template.ID)
	assert.Greater(t, score, 0.5)
}

func TestBestMatch_TieKeepsFirstRegistered(t *testing.T) {
	library := NewLibrary()

	for _, id := range []string{"first", "second"} {
		require.NoError(t, library.Register(&Template{
			ID:       id,
			Name:     "Identical Name",
			Source:   SourceBuiltin,
			Features: []string{"slack"},
			Nodes:    []TemplateNode{{Type: registry.TypeSlack}},
		}))
	}

	matcher := NewMatcher(library)
	features := models.FeatureMatch{"slack": {registry.TypeSlack}}

	template, _ := matcher.BestMatch(features, "identical name")
	require.NotNil(t, template)
	assert.Equal(t, "first", template.ID)
}

func TestScore_FeatureCoverageWeights(t *testing.T) {
	library := NewLibrary()
	matcher := NewMatcher(library)

	template := &Template{
		ID:       "t",
		Name:     "unrelated words",
		Source:   SourceBuiltin,
		Features: []string{"slack", "email"},
		Nodes:    []TemplateNode{{Type: registry.TypeSlack}},
	}

	// Half feature coverage, zero name overlap: 0.7 * 0.5.
	features := models.FeatureMatch{"slack": {registry.TypeSlack}}
	score := matcher.Score(template, features, "ping the team")
	assert.InDelta(t, 0.35, score, 0.001)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	payload := `{
		"id": "from-disk",
		"name": "From Disk",
		"source": "corpus",
		"nodes": [{"type": "n8n-nodes-base.slack", "label": "Notify"}]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(payload), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0o600))

	library := NewLibrary()
	require.NoError(t, library.LoadDir(dir))

	template, ok := library.Get("from-disk")
	require.True(t, ok)
	assert.Equal(t, SourceCorpus, template.Source)
	assert.Equal(t, []string{registry.TypeSlack}, template.AllNodeTypes())
}

func TestLoadDir_BadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o600))

	library := NewLibrary()
	assert.Error(t, library.LoadDir(dir))
}
