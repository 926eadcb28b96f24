package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTemplates(t *testing.T) {
	templates := ListTemplates()
	require.Len(t, templates, 4)

	ids := make([]string, 0, len(templates))
	for _, tpl := range templates {
		ids = append(ids, tpl.ID)
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Description)
	}
	assert.Equal(t, []string{"professional", "meeting_minutes", "transcript_only", "summary_only"}, ids)
}

func TestTemplatePresets(t *testing.T) {
	professional, ok := TemplateByID("professional")
	require.True(t, ok)
	assert.True(t, professional.Options.IncludeTranscript)
	assert.True(t, professional.Options.IncludeSummary)
	assert.True(t, professional.Options.IncludeKeyPoints)
	assert.True(t, professional.Options.IncludeActionItems)
	assert.True(t, professional.Options.IncludeMetadata)

	minutes, ok := TemplateByID("meeting_minutes")
	require.True(t, ok)
	assert.False(t, minutes.Options.IncludeTranscript)
	assert.True(t, minutes.Options.IncludeSummary)
	assert.True(t, minutes.Options.IncludeKeyPoints)
	assert.True(t, minutes.Options.IncludeActionItems)
	assert.True(t, minutes.Options.IncludeMetadata)

	transcript, ok := TemplateByID("transcript_only")
	require.True(t, ok)
	assert.True(t, transcript.Options.IncludeTranscript)
	assert.False(t, transcript.Options.IncludeSummary)
	assert.True(t, transcript.Options.IncludeMetadata)

	summary, ok := TemplateByID("summary_only")
	require.True(t, ok)
	assert.False(t, summary.Options.IncludeTranscript)
	assert.True(t, summary.Options.IncludeSummary)

	_, ok = TemplateByID("nope")
	assert.False(t, ok)
}

func TestListTemplatesReturnsCopies(t *testing.T) {
	first := ListTemplates()
	first[0].Options.IncludeTranscript = false
	first[0].Name = "mutated"

	again := ListTemplates()
	assert.True(t, again[0].Options.IncludeTranscript)
	assert.Equal(t, "Professional Report", again[0].Name)
}
