package generate

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// DOCXGenerator emits a minimal WordprocessingML package: the three
// mandatory parts plus one document body with styled paragraphs.
type DOCXGenerator struct{}

// NewDOCXGenerator creates the DOCX format generator.
func NewDOCXGenerator() *DOCXGenerator { return &DOCXGenerator{} }

// Supported always holds: the writer has no external dependencies.
func (g *DOCXGenerator) Supported() bool { return true }

// Generate renders the meeting into DOCX bytes.
func (g *DOCXGenerator) Generate(ctx context.Context, m *models.Meeting, opts models.ExportOptions) (*GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	content, err := writeDOCX(composeDocument(m, opts))
	if err != nil {
		return nil, fmt.Errorf("write docx package: %w", err)
	}

	return &GenerationResult{
		Content:          content,
		Filename:         baseFilename(m, "docx"),
		Size:             int64(len(content)),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func writeDOCX(doc document) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name, body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/document.xml", renderDocumentXML(doc)},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderDocumentXML(doc document) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	writePara(&b, doc.Title, 32, true)
	if doc.Company != "" {
		writePara(&b, doc.Company, 0, true)
	}
	for _, sec := range doc.Sections {
		writePara(&b, sec.Heading, 26, true)
		for _, line := range sec.Lines {
			writePara(&b, line, 0, false)
		}
	}

	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr></w:body></w:document>`)
	return b.String()
}

// writePara emits one paragraph; sz is the half-point font size (0 keeps
// the default), bold marks headings.
func writePara(b *strings.Builder, text string, sz int, bold bool) {
	b.WriteString("<w:p><w:r>")
	if sz > 0 || bold {
		b.WriteString("<w:rPr>")
		if bold {
			b.WriteString("<w:b/>")
		}
		if sz > 0 {
			fmt.Fprintf(b, `<w:sz w:val="%d"/>`, sz)
		}
		b.WriteString("</w:rPr>")
	}
	fmt.Fprintf(b, `<w:t xml:space="preserve">%s</w:t>`, xmlEscape(text))
	b.WriteString("</w:r></w:p>")
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
