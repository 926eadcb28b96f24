package api

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meetscribe/export-server/cmd/server/internal/export"
)

// HistoryReader serves recent export history rows.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]export.HistoryRecord, error)
}

// HandleExportHistory GET /api/v1/export/history?limit=
func HandleExportHistory(store HistoryReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 0 {
			badRequestResponse(c, "invalid limit")
			return
		}

		records, err := store.Recent(c.Request.Context(), limit)
		if err != nil {
			internalErrorResponse(c, err)
			return
		}
		if records == nil {
			records = []export.HistoryRecord{}
		}
		successResponse(c, gin.H{"history": records})
	}
}
