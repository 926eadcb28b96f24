package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// TextMode selects how the shared text-family generator renders a
// meeting: plain text, markdown, or structured data (JSON).
type TextMode string

const (
	ModePlainText  TextMode = "plain-text"
	ModeMarkdown   TextMode = "markdown"
	ModeStructured TextMode = "structured-data"
)

// TextGenerator produces txt, md and json documents. One instance serves
// one mode; the registry holds an instance per format.
type TextGenerator struct {
	mode TextMode
	ext  string
}

// NewTextGenerator creates a generator for the given mode.
func NewTextGenerator(mode TextMode) *TextGenerator {
	ext := "txt"
	switch mode {
	case ModeMarkdown:
		ext = "md"
	case ModeStructured:
		ext = "json"
	}
	return &TextGenerator{mode: mode, ext: ext}
}

// Supported always holds: text rendering has no environment requirements.
func (g *TextGenerator) Supported() bool { return true }

// Generate renders the meeting into the generator's mode.
func (g *TextGenerator) Generate(ctx context.Context, m *models.Meeting, opts models.ExportOptions) (*GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	var content []byte
	var err error
	switch g.mode {
	case ModeMarkdown:
		content = []byte(renderMarkdown(composeDocument(m, opts)))
	case ModeStructured:
		content, err = renderStructured(m, opts)
		if err != nil {
			return nil, fmt.Errorf("render structured document: %w", err)
		}
	default:
		content = []byte(renderPlainText(composeDocument(m, opts)))
	}

	return &GenerationResult{
		Content:          content,
		Filename:         baseFilename(m, g.ext),
		Size:             int64(len(content)),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

func renderMarkdown(doc document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	if doc.Company != "" {
		fmt.Fprintf(&b, "> %s\n\n", doc.Company)
	}
	for i, sec := range doc.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", sec.Heading)
		for _, line := range sec.Lines {
			b.WriteString(line)
			b.WriteString("\n")
			// transcript style: blank line between utterances
			if sec.Heading == "Transcript" {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func renderPlainText(doc document) string {
	var b strings.Builder
	b.WriteString(doc.Title + "\n")
	b.WriteString(strings.Repeat("=", len(doc.Title)) + "\n")
	if doc.Company != "" {
		b.WriteString(doc.Company + "\n")
	}
	for _, sec := range doc.Sections {
		b.WriteString("\n" + sec.Heading + "\n")
		b.WriteString(strings.Repeat("-", len(sec.Heading)) + "\n")
		for _, line := range sec.Lines {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// structuredMeeting is the JSON projection of a meeting under export
// options; omitted sections are absent, not empty.
type structuredMeeting struct {
	Title        string                     `json:"title"`
	Company      string                     `json:"company,omitempty"`
	Date         string                     `json:"date,omitempty"`
	DurationMin  int                        `json:"duration_min,omitempty"`
	Participants []string                   `json:"participants,omitempty"`
	Summary      string                     `json:"summary,omitempty"`
	KeyPoints    []string                   `json:"key_points,omitempty"`
	ActionItems  []models.ActionItem        `json:"action_items,omitempty"`
	Transcript   []models.TranscriptSegment `json:"transcript,omitempty"`
}

func renderStructured(m *models.Meeting, opts models.ExportOptions) ([]byte, error) {
	doc := structuredMeeting{Title: m.Title}
	if opts.Branding != nil {
		doc.Company = opts.Branding.CompanyName
	}
	if opts.IncludeMetadata {
		doc.Date = m.Date.Format(time.RFC3339)
		doc.DurationMin = m.DurationMin
		doc.Participants = m.Participants
	}
	if opts.IncludeSummary {
		doc.Summary = m.Summary
	}
	if opts.IncludeKeyPoints {
		doc.KeyPoints = m.KeyPoints
	}
	if opts.IncludeActionItems {
		doc.ActionItems = m.ActionItems
	}
	if opts.IncludeTranscript {
		doc.Transcript = m.Transcript
	}
	return json.MarshalIndent(doc, "", "  ")
}
