package models

// ExportFormat identifies one of the five supported document formats.
type ExportFormat string

const (
	FormatPDF      ExportFormat = "pdf"
	FormatDOCX     ExportFormat = "docx"
	FormatText     ExportFormat = "txt"
	FormatMarkdown ExportFormat = "md"
	FormatJSON     ExportFormat = "json"
)

// KnownFormats lists every supported format in presentation order.
var KnownFormats = []ExportFormat{FormatPDF, FormatDOCX, FormatText, FormatMarkdown, FormatJSON}

// Valid reports whether f is one of the five known formats.
func (f ExportFormat) Valid() bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatText, FormatMarkdown, FormatJSON:
		return true
	}
	return false
}

// TextFamily reports whether f is word-countable text output (txt/md/json).
func (f ExportFormat) TextFamily() bool {
	return f == FormatText || f == FormatMarkdown || f == FormatJSON
}

// BrandColors is an optional color triple applied by generators that
// support styling.
type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// Branding carries optional company branding for generated documents.
type Branding struct {
	LogoRef     string       `json:"logo_ref,omitempty"`
	CompanyName string       `json:"company_name,omitempty"`
	Colors      *BrandColors `json:"colors,omitempty"`
}

// ExportOptions is the immutable input of one export call. All section
// toggles are independent; no combination is invalid.
type ExportOptions struct {
	Format             ExportFormat `json:"format" binding:"required"`
	IncludeTranscript  bool         `json:"include_transcript"`
	IncludeSummary     bool         `json:"include_summary"`
	IncludeKeyPoints   bool         `json:"include_key_points"`
	IncludeActionItems bool         `json:"include_action_items"`
	IncludeMetadata    bool         `json:"include_metadata"`
	Template           string       `json:"template,omitempty"`
	Branding           *Branding    `json:"branding,omitempty"`
}

// ExportStage is one of the four checkpoints emitted during an export.
type ExportStage string

const (
	StagePreparing  ExportStage = "preparing"
	StageGenerating ExportStage = "generating"
	StageFinalizing ExportStage = "finalizing"
	StageComplete   ExportStage = "complete"
)

// ExportProgress is one stage-progress event. ExportID correlates events
// of a single export so concurrent exports stay distinguishable.
type ExportProgress struct {
	ExportID               string      `json:"export_id"`
	Stage                  ExportStage `json:"stage"`
	Progress               int         `json:"progress"` // 0-100
	Message                string      `json:"message"`
	EstimatedTimeRemaining int64       `json:"estimated_time_remaining_ms,omitempty"`
}

// ResultMetadata carries format-dependent extras: PageCount for PDF,
// WordCount for the text family.
type ResultMetadata struct {
	PageCount *int `json:"page_count,omitempty"`
	WordCount *int `json:"word_count,omitempty"`
}

// ExportResult is the normalized outcome of one export call. The caller
// owns it after return.
type ExportResult struct {
	ExportID         string          `json:"export_id"`
	Content          []byte          `json:"-"`
	MIMEType         string          `json:"mime_type"`
	Filename         string          `json:"filename"`
	Size             int64           `json:"size"`
	Format           ExportFormat    `json:"format"`
	ProcessingTimeMs int64           `json:"processing_time_ms"`
	Metadata         *ResultMetadata `json:"metadata,omitempty"`
}
