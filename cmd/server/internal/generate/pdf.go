package generate

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// pdfLinesPerPage is the layout budget of one A4-ish page at 11pt with
// 14pt leading inside the fixed margins below.
const pdfLinesPerPage = 48

// PDFGenerator emits a minimal self-contained PDF: one content stream
// per page, Helvetica only, no compression. Page count is derived from
// the rendered line count.
type PDFGenerator struct{}

// NewPDFGenerator creates the PDF format generator.
func NewPDFGenerator() *PDFGenerator { return &PDFGenerator{} }

// Supported always holds: the writer has no external dependencies.
func (g *PDFGenerator) Supported() bool { return true }

// Generate renders the meeting into PDF bytes.
func (g *PDFGenerator) Generate(ctx context.Context, m *models.Meeting, opts models.ExportOptions) (*GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	lines := flattenLines(composeDocument(m, opts))
	pages := paginate(lines, pdfLinesPerPage)
	content := writePDF(pages)

	return &GenerationResult{
		Content:          content,
		Filename:         baseFilename(m, "pdf"),
		Size:             int64(len(content)),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		PageCount:        len(pages),
	}, nil
}

func flattenLines(doc document) []string {
	lines := []string{doc.Title}
	if doc.Company != "" {
		lines = append(lines, doc.Company)
	}
	for _, sec := range doc.Sections {
		lines = append(lines, "", sec.Heading, "")
		lines = append(lines, sec.Lines...)
	}
	return lines
}

func paginate(lines []string, perPage int) [][]string {
	if len(lines) == 0 {
		return [][]string{{}}
	}
	var pages [][]string
	for len(lines) > 0 {
		n := perPage
		if n > len(lines) {
			n = len(lines)
		}
		pages = append(pages, lines[:n])
		lines = lines[n:]
	}
	return pages
}

// writePDF assembles a PDF 1.4 document. Object layout: 1 catalog,
// 2 page tree, 3 font, then a (page, contents) object pair per page.
func writePDF(pages [][]string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for i, page := range pages {
		pageObj := 4 + 2*i
		contentObj := pageObj + 1
		writeObj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentObj))

		var stream strings.Builder
		stream.WriteString("BT\n/F1 11 Tf\n14 TL\n54 788 Td\n")
		for _, line := range page {
			fmt.Fprintf(&stream, "(%s) Tj\nT*\n", escapePDFString(line))
		}
		stream.WriteString("ET")
		writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", stream.Len(), stream.String()))
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOffset)

	return buf.Bytes()
}

var pdfStringEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

func escapePDFString(s string) string {
	return pdfStringEscaper.Replace(s)
}
