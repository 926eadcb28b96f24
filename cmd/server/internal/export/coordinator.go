package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/meetscribe/export-server/cmd/server/internal/generate"
	"github.com/meetscribe/export-server/cmd/server/internal/models"
	"github.com/meetscribe/export-server/pkg/logger"
	"github.com/meetscribe/export-server/pkg/metrics"
)

// MeetingSource resolves meeting records. A nil meeting with a nil error
// means the ID is unknown.
type MeetingSource interface {
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
}

// HistoryRecord is one append-only entry of the export history sink.
type HistoryRecord struct {
	ExportID  string              `json:"export_id"`
	MeetingID string              `json:"meeting_id"`
	Format    models.ExportFormat `json:"format"`
	Filename  string              `json:"filename"`
	Size      int64               `json:"size"`
	CreatedAt time.Time           `json:"created_at"`
}

// HistorySink records completed exports. Writes are best-effort: the
// coordinator logs failures and never lets them affect a result.
type HistorySink interface {
	Append(ctx context.Context, rec HistoryRecord) error
}

// DownloadSink materializes a result's byte buffer exactly once,
// returning a host reference (e.g. a file path).
type DownloadSink interface {
	Save(result *models.ExportResult) (string, error)
}

// Coordinator drives the export state machine: validate, resolve,
// dispatch, normalize, record, report.
type Coordinator struct {
	source   MeetingSource
	registry *Registry
	bus      *Bus
	history  HistorySink
	download DownloadSink
	log      *slog.Logger
	sem      *semaphore.Weighted
}

// CoordinatorConfig wires the coordinator's collaborators. History and
// Download are optional; MaxConcurrent caps simultaneous generator
// invocations across independent calls (0 means unlimited).
type CoordinatorConfig struct {
	Source        MeetingSource
	Registry      *Registry
	Bus           *Bus
	History       HistorySink
	Download      DownloadSink
	Logger        *slog.Logger
	MaxConcurrent int
}

// NewCoordinator creates an export coordinator.
func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	c := &Coordinator{
		source:   cfg.Source,
		registry: cfg.Registry,
		bus:      cfg.Bus,
		history:  cfg.History,
		download: cfg.Download,
		log:      cfg.Logger,
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if cfg.MaxConcurrent > 0 {
		c.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrent))
	}
	return c
}

// Bus exposes the progress bus, e.g. for SSE bridging.
func (c *Coordinator) Bus() *Bus { return c.bus }

// ExportMeeting turns one stored meeting into a downloadable document,
// emitting preparing(10) → generating(30) → finalizing(90) →
// complete(100) progress along the way. Fatal errors are wrapped as
// "Export failed: <cause>" with the cause preserved.
func (c *Coordinator) ExportMeeting(ctx context.Context, meetingID string, opts models.ExportOptions) (*models.ExportResult, error) {
	exportID := uuid.NewString()
	estimate := EstimateExportTime(meetingID, opts.Format).Milliseconds()
	start := time.Now()

	c.emit(exportID, models.StagePreparing, 10, "Preparing export...", estimate)

	meeting, err := c.source.GetByID(ctx, meetingID)
	if err != nil {
		return nil, c.fail(exportID, meetingID, opts.Format, start, fmt.Errorf("resolve meeting %s: %w", meetingID, err))
	}
	if meeting == nil {
		return nil, c.fail(exportID, meetingID, opts.Format, start, fmt.Errorf("%w: %s", ErrMeetingNotFound, meetingID))
	}

	c.emit(exportID, models.StageGenerating, 30,
		fmt.Sprintf("Generating %s document...", strings.ToUpper(string(opts.Format))), estimate)

	gen, ok := c.registry.Generator(opts.Format)
	if !ok {
		return nil, c.fail(exportID, meetingID, opts.Format, start, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format))
	}

	if c.sem != nil {
		if err := c.sem.Acquire(ctx, 1); err != nil {
			return nil, c.fail(exportID, meetingID, opts.Format, start, err)
		}
	}
	genRes, err := gen.Generate(ctx, meeting, opts)
	if c.sem != nil {
		c.sem.Release(1)
	}
	if err != nil {
		return nil, c.fail(exportID, meetingID, opts.Format, start, err)
	}

	c.emit(exportID, models.StageFinalizing, 90, "Finalizing document...", 0)

	result := c.normalize(exportID, opts.Format, genRes)

	if c.history != nil {
		rec := HistoryRecord{
			ExportID:  exportID,
			MeetingID: meetingID,
			Format:    opts.Format,
			Filename:  result.Filename,
			Size:      result.Size,
			CreatedAt: time.Now(),
		}
		if err := c.history.Append(ctx, rec); err != nil {
			// best-effort path: the export already succeeded
			c.log.Warn("export history write failed", "export_id", exportID, "error", err)
			metrics.RecordHistoryWriteFailure()
		}
	}

	c.emit(exportID, models.StageComplete, 100, "Export complete", 0)

	metrics.RecordExport(string(opts.Format), "success")
	metrics.RecordExportDuration(string(opts.Format), time.Since(start).Seconds())
	logger.LogExportEvent(c.log, meetingID, string(opts.Format), string(models.StageComplete), time.Since(start).Milliseconds(), "")

	return result, nil
}

// ExportMeetingsBatch exports the given meetings strictly in input
// order, one at a time. The first failing export aborts the batch; no
// partial results are returned.
func (c *Coordinator) ExportMeetingsBatch(ctx context.Context, meetingIDs []string, opts models.ExportOptions) ([]*models.ExportResult, error) {
	total := len(meetingIDs)
	metrics.RecordBatchSize(total)
	batchID := uuid.NewString()

	results := make([]*models.ExportResult, 0, total)
	for i, id := range meetingIDs {
		c.emit(batchID, models.StagePreparing, i*100/total,
			fmt.Sprintf("Processing meeting %d of %d...", i+1, total), 0)

		res, err := c.ExportMeeting(ctx, id, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// DownloadExport bridges a finished result to the host environment
// through the configured sink: one reference is created, handed over,
// and released by the sink before it returns.
func (c *Coordinator) DownloadExport(result *models.ExportResult) (string, error) {
	if c.download == nil {
		return "", ErrNoDownloadSink
	}
	return c.download.Save(result)
}

// exportTimeTable holds the content-independent per-format estimates.
var exportTimeTable = map[models.ExportFormat]time.Duration{
	models.FormatPDF:      2000 * time.Millisecond,
	models.FormatDOCX:     1500 * time.Millisecond,
	models.FormatText:     500 * time.Millisecond,
	models.FormatMarkdown: 500 * time.Millisecond,
	models.FormatJSON:     300 * time.Millisecond,
}

// EstimateExportTime returns a content-independent duration estimate
// for exporting any meeting in the given format.
func EstimateExportTime(meetingID string, format models.ExportFormat) time.Duration {
	if d, ok := exportTimeTable[format]; ok {
		return d
	}
	return 1000 * time.Millisecond
}

// normalize projects a generator-specific result into the common shape.
func (c *Coordinator) normalize(exportID string, format models.ExportFormat, genRes *generate.GenerationResult) *models.ExportResult {
	result := &models.ExportResult{
		ExportID:         exportID,
		Content:          genRes.Content,
		MIMEType:         MIMETypeOf(format),
		Filename:         genRes.Filename,
		Size:             genRes.Size,
		Format:           format,
		ProcessingTimeMs: genRes.ProcessingTimeMs,
	}

	switch {
	case format == models.FormatPDF:
		pages := genRes.PageCount
		result.Metadata = &models.ResultMetadata{PageCount: &pages}
	case format.TextFamily():
		words := len(strings.Fields(string(genRes.Content)))
		result.Metadata = &models.ResultMetadata{WordCount: &words}
	}
	return result
}

func (c *Coordinator) emit(exportID string, stage models.ExportStage, progress int, message string, estimateMs int64) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(models.ExportProgress{
		ExportID:               exportID,
		Stage:                  stage,
		Progress:               progress,
		Message:                message,
		EstimatedTimeRemaining: estimateMs,
	})
}

// fail wraps a fatal error, records metrics and logs it. No terminal
// progress event is emitted on failure.
func (c *Coordinator) fail(exportID, meetingID string, format models.ExportFormat, start time.Time, cause error) error {
	metrics.RecordExport(string(format), "failed")
	logger.LogExportEvent(c.log, meetingID, string(format), "failed", time.Since(start).Milliseconds(), cause.Error())
	return fmt.Errorf("Export failed: %w", cause)
}
