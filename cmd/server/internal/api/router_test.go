package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetscribe/export-server/cmd/server/internal/config"
	"github.com/meetscribe/export-server/cmd/server/internal/export"
	"github.com/meetscribe/export-server/cmd/server/internal/meetings"
	"github.com/meetscribe/export-server/cmd/server/internal/middleware"
	"github.com/meetscribe/export-server/cmd/server/internal/models"
	"github.com/meetscribe/export-server/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if _, err := logger.Init(logger.Config{Level: "error", Environment: "dev"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

const testSecret = "0123456789abcdef0123456789abcdef"

func testDeps(t *testing.T, authDisabled bool) Deps {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = "dev"
	cfg.Data.MeetingsDir = t.TempDir()
	cfg.Security.JWTSecret = testSecret
	cfg.Security.AuthDisabled = authDisabled
	config.GlobalConfig = cfg
	meetings.InitPaths()

	reg := meetings.NewRegistry()
	reg.Set(&models.Meeting{
		ID:          "m1",
		Title:       "Kickoff",
		Date:        time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		DurationMin: 30,
		Summary:     "Project kickoff and scoping.",
		KeyPoints:   []string{"Scope agreed"},
	})
	reg.Set(&models.Meeting{
		ID:      "m2",
		Title:   "Retro",
		Date:    time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		Summary: "Sprint retro.",
	})

	formatRegistry := export.NewRegistry()
	coord := export.NewCoordinator(export.CoordinatorConfig{
		Source:   reg,
		Registry: formatRegistry,
		Bus:      export.NewBus(slog.Default()),
		Logger:   slog.Default(),
	})

	return Deps{
		Coordinator: coord,
		Registry:    formatRegistry,
		Meetings:    reg,
		Config:      cfg,
	}
}

func doJSON(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListFormatsEndpoint(t *testing.T) {
	r := NewRouter(testDeps(t, true))
	w := doJSON(r, http.MethodGet, "/api/v1/export/formats", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Formats []export.FormatInfo `json:"formats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Formats, 5)
	assert.Equal(t, models.FormatPDF, resp.Formats[0].Format)
	assert.Equal(t, "application/pdf", resp.Formats[0].MIMEType)
}

func TestListTemplatesEndpoint(t *testing.T) {
	r := NewRouter(testDeps(t, true))
	w := doJSON(r, http.MethodGet, "/api/v1/export/templates", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Templates []export.Template `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Templates, 4)
}

func TestEstimateEndpoint(t *testing.T) {
	r := NewRouter(testDeps(t, true))
	w := doJSON(r, http.MethodGet, "/api/v1/export/estimate?meeting_id=m1&format=pdf", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"estimated_ms":2000`)

	w = doJSON(r, http.MethodGet, "/api/v1/export/estimate?meeting_id=m1&format=weird", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"estimated_ms":1000`)
}

func TestExportMeetingEndpoint(t *testing.T) {
	r := NewRouter(testDeps(t, true))

	w := doJSON(r, http.MethodPost, "/api/v1/meetings/m1/export", gin.H{
		"format":          "txt",
		"include_summary": true,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res models.ExportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.FormatText, res.Format)
	assert.Equal(t, "text/plain", res.MIMEType)
	assert.NotEmpty(t, res.ExportID)
	require.NotNil(t, res.Metadata)
	assert.NotNil(t, res.Metadata.WordCount)
}

func TestExportMeetingDownload(t *testing.T) {
	r := NewRouter(testDeps(t, true))

	w := doJSON(r, http.MethodPost, "/api/v1/meetings/m1/export?download=true", gin.H{
		"format":   "md",
		"template": "summary_only",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/markdown", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "# Kickoff")
	assert.Contains(t, w.Body.String(), "Project kickoff")
}

func TestExportMeetingTemplateOverride(t *testing.T) {
	r := NewRouter(testDeps(t, true))

	// transcript_only preset, but summary explicitly switched on
	w := doJSON(r, http.MethodPost, "/api/v1/meetings/m1/export?download=true", gin.H{
		"format":          "txt",
		"template":        "transcript_only",
		"include_summary": true,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Project kickoff")
}

func TestExportMeetingNotFoundEndpoint(t *testing.T) {
	r := NewRouter(testDeps(t, true))
	w := doJSON(r, http.MethodPost, "/api/v1/meetings/ghost/export", gin.H{"format": "pdf"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportMeetingUnsupportedFormatEndpoint(t *testing.T) {
	r := NewRouter(testDeps(t, true))
	w := doJSON(r, http.MethodPost, "/api/v1/meetings/m1/export", gin.H{"format": "xlsx"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportBatchEndpoint(t *testing.T) {
	r := NewRouter(testDeps(t, true))

	w := doJSON(r, http.MethodPost, "/api/v1/export/batch", gin.H{
		"meeting_ids":     []string{"m1", "m2"},
		"format":          "json",
		"include_summary": true,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)

	// fail-fast surfaces the missing meeting
	w = doJSON(r, http.MethodPost, "/api/v1/export/batch", gin.H{
		"meeting_ids": []string{"m1", "ghost", "m2"},
		"format":      "txt",
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMeetingsCRUDEndpoints(t *testing.T) {
	r := NewRouter(testDeps(t, true))

	w := doJSON(r, http.MethodPost, "/api/v1/meetings", gin.H{
		"title":   "New Meeting",
		"summary": "Fresh notes.",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Meeting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	w = doJSON(r, http.MethodGet, "/api/v1/meetings/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/meetings", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Meeting")

	w = doJSON(r, http.MethodDelete, "/api/v1/meetings/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/meetings/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthRequiredOnMutatingRoutes(t *testing.T) {
	r := NewRouter(testDeps(t, false))

	w := doJSON(r, http.MethodPost, "/api/v1/meetings/m1/export", gin.H{"format": "txt"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// read-only routes stay open
	w = doJSON(r, http.MethodGet, "/api/v1/export/formats", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	tok, err := middleware.GenerateToken("ana", []byte(testSecret))
	require.NoError(t, err)
	w = doJSON(r, http.MethodPost, "/api/v1/meetings/m1/export", gin.H{"format": "txt"}, map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", tok),
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthz(t *testing.T) {
	r := NewRouter(testDeps(t, true))
	w := doJSON(r, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
