package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meetscribe/export-server/cmd/server/internal/config"
	"github.com/meetscribe/export-server/cmd/server/internal/export"
	"github.com/meetscribe/export-server/cmd/server/internal/meetings"
	"github.com/meetscribe/export-server/cmd/server/internal/middleware"
)

// Deps bundles everything the router needs.
type Deps struct {
	Coordinator *export.Coordinator
	Registry    *export.Registry
	Meetings    *meetings.Registry
	History     HistoryReader
	Config      *config.Config
}

// NewRouter assembles the gin engine: middleware, health/metrics and
// the versioned API. Mutating routes require a bearer token unless auth
// is disabled in config.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	if len(deps.Config.Security.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(deps.Config.Security.CORSAllowedOrigins))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := func(c *gin.Context) { c.Next() }
	if !deps.Config.Security.AuthDisabled {
		auth = middleware.BearerAuth([]byte(deps.Config.Security.JWTSecret))
	}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/export/formats", HandleListFormats(deps.Registry))
		v1.GET("/export/templates", HandleListTemplates())
		v1.GET("/export/estimate", HandleEstimateExportTime())
		v1.GET("/export/progress", HandleExportProgress(deps.Coordinator.Bus()))
		if deps.History != nil {
			v1.GET("/export/history", HandleExportHistory(deps.History))
		}

		v1.GET("/meetings", HandleListMeetings(deps.Meetings))
		v1.GET("/meetings/:id", HandleGetMeeting(deps.Meetings))

		v1.POST("/meetings", auth, HandleCreateMeeting(deps.Meetings))
		v1.PUT("/meetings/:id", auth, HandleUpdateMeeting(deps.Meetings))
		v1.DELETE("/meetings/:id", auth, HandleDeleteMeeting(deps.Meetings))

		v1.POST("/meetings/:id/export", auth, HandleExportMeeting(deps.Coordinator))
		v1.POST("/export/batch", auth, HandleExportBatch(deps.Coordinator))
	}

	return r
}
