// Package generate renders meeting records into downloadable document bytes.
// Each format family implements the Generator capability interface; the
// export registry dispatches over a closed format set.
package generate

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// GenerationResult is the raw per-format output before normalization:
// document bytes, a suggested filename, the byte size and the measured
// generation time. PageCount is populated by the PDF generator only.
type GenerationResult struct {
	Content          []byte
	Filename         string
	Size             int64
	ProcessingTimeMs int64
	PageCount        int
}

// Generator is the capability contract of one format family: a
// side-effect-free probe plus the generation operation itself.
type Generator interface {
	// Supported reports whether the format can be generated in this
	// environment. It must be synchronous and side-effect free.
	Supported() bool

	Generate(ctx context.Context, m *models.Meeting, opts models.ExportOptions) (*GenerationResult, error)
}

// baseFilename derives a filesystem-safe filename from the meeting title
// and date, e.g. "weekly_sync_2026-08-24.pdf".
func baseFilename(m *models.Meeting, ext string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return '_'
		}
	}, strings.TrimSpace(m.Title))
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "meeting"
	}
	return fmt.Sprintf("%s_%s.%s", slug, m.Date.Format("2006-01-02"), ext)
}
