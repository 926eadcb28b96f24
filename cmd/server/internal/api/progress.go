package api

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/meetscribe/export-server/cmd/server/internal/export"
	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// HandleExportProgress GET /api/v1/export/progress
// Streams progress events as SSE. An optional export_id query filters
// the stream to one export's events.
func HandleExportProgress(bus *export.Bus) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := c.Query("export_id")

		events := make(chan models.ExportProgress, 32)
		unsubscribe := bus.Subscribe(func(ev models.ExportProgress) {
			if filter != "" && ev.ExportID != filter {
				return
			}
			select {
			case events <- ev:
			default:
				// slow consumer: drop rather than stall the export
			}
		})
		defer unsubscribe()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case ev := <-events:
				c.SSEvent("progress", ev)
				return ev.Stage != models.StageComplete || filter == ""
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
