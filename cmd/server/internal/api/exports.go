package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetscribe/export-server/cmd/server/internal/export"
	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// exportRequest is the wire form of export options. Section toggles are
// pointers so a template preset can pre-fill them and the request can
// still override individual fields.
type exportRequest struct {
	Format             models.ExportFormat `json:"format" binding:"required"`
	Template           string              `json:"template"`
	IncludeTranscript  *bool               `json:"include_transcript"`
	IncludeSummary     *bool               `json:"include_summary"`
	IncludeKeyPoints   *bool               `json:"include_key_points"`
	IncludeActionItems *bool               `json:"include_action_items"`
	IncludeMetadata    *bool               `json:"include_metadata"`
	Branding           *models.Branding    `json:"branding"`
}

// toOptions resolves the request against its template preset: the
// preset (when named and known) supplies defaults, explicit fields win.
func (r exportRequest) toOptions() models.ExportOptions {
	opts := models.ExportOptions{}
	if tpl, ok := export.TemplateByID(r.Template); ok {
		opts = tpl.Options
	}
	opts.Format = r.Format
	opts.Template = r.Template
	opts.Branding = r.Branding

	if r.IncludeTranscript != nil {
		opts.IncludeTranscript = *r.IncludeTranscript
	}
	if r.IncludeSummary != nil {
		opts.IncludeSummary = *r.IncludeSummary
	}
	if r.IncludeKeyPoints != nil {
		opts.IncludeKeyPoints = *r.IncludeKeyPoints
	}
	if r.IncludeActionItems != nil {
		opts.IncludeActionItems = *r.IncludeActionItems
	}
	if r.IncludeMetadata != nil {
		opts.IncludeMetadata = *r.IncludeMetadata
	}
	return opts
}

// HandleListFormats GET /api/v1/export/formats
func HandleListFormats(reg *export.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		successResponse(c, gin.H{"formats": reg.ListFormats()})
	}
}

// HandleListTemplates GET /api/v1/export/templates
func HandleListTemplates() gin.HandlerFunc {
	return func(c *gin.Context) {
		successResponse(c, gin.H{"templates": export.ListTemplates()})
	}
}

// HandleEstimateExportTime GET /api/v1/export/estimate?meeting_id=&format=
func HandleEstimateExportTime() gin.HandlerFunc {
	return func(c *gin.Context) {
		meetingID := c.Query("meeting_id")
		format := models.ExportFormat(c.Query("format"))
		estimate := export.EstimateExportTime(meetingID, format)
		successResponse(c, gin.H{
			"meeting_id":   meetingID,
			"format":       format,
			"estimated_ms": estimate.Milliseconds(),
		})
	}
}

// HandleExportMeeting POST /api/v1/meetings/:id/export
// With ?download=true the generated document is streamed back with its
// declared MIME type; otherwise the normalized result metadata is
// returned as JSON.
func HandleExportMeeting(coord *export.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req exportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequestResponse(c, "invalid export options: "+err.Error())
			return
		}

		result, err := coord.ExportMeeting(c.Request.Context(), id, req.toOptions())
		if err != nil {
			switch {
			case errors.Is(err, export.ErrMeetingNotFound):
				notFoundResponse(c, "meeting")
			case errors.Is(err, export.ErrUnsupportedFormat):
				badRequestResponse(c, err.Error())
			default:
				internalErrorResponse(c, err)
			}
			return
		}

		if c.Query("download") == "true" {
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
			c.Data(http.StatusOK, result.MIMEType, result.Content)
			return
		}
		successResponse(c, result)
	}
}

// batchExportRequest is the wire form of a batch export call.
type batchExportRequest struct {
	MeetingIDs []string `json:"meeting_ids" binding:"required,min=1"`
	exportRequest
}

// HandleExportBatch POST /api/v1/export/batch
// Meetings are exported strictly in request order; the first failure
// aborts the whole batch.
func HandleExportBatch(coord *export.Coordinator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req batchExportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequestResponse(c, "invalid batch request: "+err.Error())
			return
		}

		results, err := coord.ExportMeetingsBatch(c.Request.Context(), req.MeetingIDs, req.toOptions())
		if err != nil {
			switch {
			case errors.Is(err, export.ErrMeetingNotFound):
				notFoundResponse(c, "meeting")
			case errors.Is(err, export.ErrUnsupportedFormat):
				badRequestResponse(c, err.Error())
			default:
				internalErrorResponse(c, err)
			}
			return
		}

		successResponse(c, gin.H{
			"count":   len(results),
			"results": results,
		})
	}
}
