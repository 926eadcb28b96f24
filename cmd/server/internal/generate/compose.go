package generate

import (
	"fmt"
	"strings"

	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// document is the format-neutral projection of a meeting under a set of
// export options. All generators consume it so section selection lives
// in exactly one place.
type document struct {
	Title    string
	Company  string
	Sections []section
}

type section struct {
	Heading string
	Lines   []string
}

func composeDocument(m *models.Meeting, opts models.ExportOptions) document {
	doc := document{Title: m.Title}
	if doc.Title == "" {
		doc.Title = "Meeting Notes"
	}
	if opts.Branding != nil {
		doc.Company = opts.Branding.CompanyName
	}

	if opts.IncludeMetadata {
		lines := []string{
			fmt.Sprintf("Date: %s", m.Date.Format("2006-01-02 15:04")),
			fmt.Sprintf("Duration: %d min", m.DurationMin),
		}
		if len(m.Participants) > 0 {
			lines = append(lines, "Participants: "+strings.Join(m.Participants, ", "))
		}
		doc.Sections = append(doc.Sections, section{Heading: "Details", Lines: lines})
	}

	if opts.IncludeSummary && m.Summary != "" {
		doc.Sections = append(doc.Sections, section{Heading: "Summary", Lines: splitLines(m.Summary)})
	}

	if opts.IncludeKeyPoints && len(m.KeyPoints) > 0 {
		lines := make([]string, 0, len(m.KeyPoints))
		for _, p := range m.KeyPoints {
			lines = append(lines, "- "+p)
		}
		doc.Sections = append(doc.Sections, section{Heading: "Key Points", Lines: lines})
	}

	if opts.IncludeActionItems && len(m.ActionItems) > 0 {
		lines := make([]string, 0, len(m.ActionItems))
		for _, a := range m.ActionItems {
			line := "- " + a.Text
			if a.Owner != "" {
				line += " (" + a.Owner
				if a.Due != "" {
					line += ", due " + a.Due
				}
				line += ")"
			} else if a.Due != "" {
				line += " (due " + a.Due + ")"
			}
			lines = append(lines, line)
		}
		doc.Sections = append(doc.Sections, section{Heading: "Action Items", Lines: lines})
	}

	if opts.IncludeTranscript && len(m.Transcript) > 0 {
		lines := make([]string, 0, len(m.Transcript))
		for _, s := range m.Transcript {
			ts := ""
			if s.Timestamp != "" {
				ts = "[" + s.Timestamp + "] "
			}
			spk := ""
			if s.Speaker != "" {
				spk = s.Speaker + ": "
			}
			lines = append(lines, ts+spk+strings.TrimSpace(s.Text))
		}
		doc.Sections = append(doc.Sections, section{Heading: "Transcript", Lines: lines})
	}

	return doc
}

func splitLines(s string) []string {
	raw := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimRight(l, " \t"); l != "" {
			out = append(out, l)
		}
	}
	return out
}
