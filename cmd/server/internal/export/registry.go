// Package export is the meeting export pipeline: the format registry,
// the template catalog, the progress bus and the coordinator that turns
// one stored meeting into a downloadable document.
package export

import (
	"github.com/meetscribe/export-server/cmd/server/internal/generate"
	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// FormatInfo describes one entry of the format registry.
type FormatInfo struct {
	Format      models.ExportFormat `json:"format"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	MIMEType    string              `json:"mime_type"`
	Supported   bool                `json:"supported"`
}

// formatDescriptor holds the static metadata of one known format.
type formatDescriptor struct {
	name        string
	description string
	mimeType    string
}

var formatTable = map[models.ExportFormat]formatDescriptor{
	models.FormatPDF: {
		name:        "PDF Document",
		description: "Paginated document with headings and branding",
		mimeType:    "application/pdf",
	},
	models.FormatDOCX: {
		name:        "Word Document",
		description: "Editable WordprocessingML document",
		mimeType:    "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
	models.FormatText: {
		name:        "Plain Text",
		description: "Unformatted text export",
		mimeType:    "text/plain",
	},
	models.FormatMarkdown: {
		name:        "Markdown",
		description: "Markdown export for wikis and notes",
		mimeType:    "text/markdown",
	},
	models.FormatJSON: {
		name:        "JSON Data",
		description: "Structured data export",
		mimeType:    "application/json",
	},
}

// MIMETypeOf returns the MIME type of a format. Values outside the
// closed enumeration fall back to the generic binary type; that path is
// unreachable through typed callers but guards malformed boundary input.
func MIMETypeOf(f models.ExportFormat) string {
	if d, ok := formatTable[f]; ok {
		return d.mimeType
	}
	return "application/octet-stream"
}

// Registry holds one generator instance per known format and answers
// capability and metadata queries over the closed format set.
type Registry struct {
	generators map[models.ExportFormat]generate.Generator
}

// NewRegistry builds the default registry: PDF and DOCX generators plus
// one text-family generator instance per text mode.
func NewRegistry() *Registry {
	return &Registry{
		generators: map[models.ExportFormat]generate.Generator{
			models.FormatPDF:      generate.NewPDFGenerator(),
			models.FormatDOCX:     generate.NewDOCXGenerator(),
			models.FormatText:     generate.NewTextGenerator(generate.ModePlainText),
			models.FormatMarkdown: generate.NewTextGenerator(generate.ModeMarkdown),
			models.FormatJSON:     generate.NewTextGenerator(generate.ModeStructured),
		},
	}
}

// Generator returns the generator registered for a format.
func (r *Registry) Generator(f models.ExportFormat) (generate.Generator, bool) {
	g, ok := r.generators[f]
	return g, ok
}

// ListFormats returns all five known formats in fixed order, probing
// each generator's capability without side effects.
func (r *Registry) ListFormats() []FormatInfo {
	out := make([]FormatInfo, 0, len(models.KnownFormats))
	for _, f := range models.KnownFormats {
		d := formatTable[f]
		supported := false
		if g, ok := r.generators[f]; ok {
			supported = g.Supported()
		}
		out = append(out, FormatInfo{
			Format:      f,
			Name:        d.name,
			Description: d.description,
			MIMEType:    d.mimeType,
			Supported:   supported,
		})
	}
	return out
}
