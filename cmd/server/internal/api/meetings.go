package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meetscribe/export-server/cmd/server/internal/meetings"
	"github.com/meetscribe/export-server/cmd/server/internal/models"
	"github.com/meetscribe/export-server/pkg/logger"
)

// persist saves the registry to disk; failures are logged, never fatal
// to the request that already mutated in-memory state.
func persist(reg *meetings.Registry) {
	if err := meetings.SaveMeetings(reg); err != nil {
		logger.L().Warn("failed to persist meetings", "error", err)
	}
}

// HandleListMeetings GET /api/v1/meetings
func HandleListMeetings(reg *meetings.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		successResponse(c, gin.H{"meetings": reg.List()})
	}
}

// HandleGetMeeting GET /api/v1/meetings/:id
func HandleGetMeeting(reg *meetings.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		m := reg.Get(c.Param("id"))
		if m == nil {
			notFoundResponse(c, "meeting")
			return
		}
		successResponse(c, m)
	}
}

// HandleCreateMeeting POST /api/v1/meetings
func HandleCreateMeeting(reg *meetings.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var m models.Meeting
		if err := c.ShouldBindJSON(&m); err != nil {
			badRequestResponse(c, "invalid meeting: "+err.Error())
			return
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.Date.IsZero() {
			m.Date = time.Now()
		}
		if existing := reg.Get(m.ID); existing != nil {
			errorResponse(c, http.StatusConflict, "meeting already exists")
			return
		}

		reg.Set(&m)
		persist(reg)
		c.JSON(http.StatusCreated, &m)
	}
}

// HandleUpdateMeeting PUT /api/v1/meetings/:id
func HandleUpdateMeeting(reg *meetings.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if reg.Get(id) == nil {
			notFoundResponse(c, "meeting")
			return
		}

		var m models.Meeting
		if err := c.ShouldBindJSON(&m); err != nil {
			badRequestResponse(c, "invalid meeting: "+err.Error())
			return
		}
		m.ID = id

		reg.Set(&m)
		persist(reg)
		successResponse(c, &m)
	}
}

// HandleDeleteMeeting DELETE /api/v1/meetings/:id
func HandleDeleteMeeting(reg *meetings.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m := reg.Delete(c.Param("id")); m == nil {
			notFoundResponse(c, "meeting")
			return
		}
		persist(reg)
		successResponse(c, gin.H{"success": true})
	}
}
