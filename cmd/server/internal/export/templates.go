package export

import "github.com/meetscribe/export-server/cmd/server/internal/models"

// Template is a named preset of export options. Consumers copy the
// options as a starting point and override individual fields.
type Template struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Options     models.ExportOptions `json:"options"`
}

var templateCatalog = []Template{
	{
		ID:          "professional",
		Name:        "Professional Report",
		Description: "All sections with metadata, suited for distribution",
		Options: models.ExportOptions{
			IncludeTranscript:  true,
			IncludeSummary:     true,
			IncludeKeyPoints:   true,
			IncludeActionItems: true,
			IncludeMetadata:    true,
		},
	},
	{
		ID:          "meeting_minutes",
		Name:        "Meeting Minutes",
		Description: "Summary, key points and action items without the transcript",
		Options: models.ExportOptions{
			IncludeSummary:     true,
			IncludeKeyPoints:   true,
			IncludeActionItems: true,
			IncludeMetadata:    true,
		},
	},
	{
		ID:          "transcript_only",
		Name:        "Transcript Only",
		Description: "Full transcript with meeting metadata",
		Options: models.ExportOptions{
			IncludeTranscript: true,
			IncludeMetadata:   true,
		},
	},
	{
		ID:          "summary_only",
		Name:        "Summary Only",
		Description: "Summary, key points and action items",
		Options: models.ExportOptions{
			IncludeSummary:     true,
			IncludeKeyPoints:   true,
			IncludeActionItems: true,
			IncludeMetadata:    true,
		},
	},
}

// ListTemplates returns the fixed template catalog in order. The slice
// and its options are copies; callers may mutate them freely.
func ListTemplates() []Template {
	out := make([]Template, len(templateCatalog))
	copy(out, templateCatalog)
	return out
}

// TemplateByID looks up one template preset.
func TemplateByID(id string) (Template, bool) {
	for _, t := range templateCatalog {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
