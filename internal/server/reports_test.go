package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/opengovlab/drishti/internal/config"
	reportdomain "github.com/opengovlab/drishti/internal/report/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportServiceStub struct {
	generate   func(ctx context.Context, req reportdomain.GenerateReportRequest) (reportdomain.GenerateReportResponse, error)
	getByID    func(ctx context.Context, id snowflake.ID) (reportdomain.Report, error)
	list       func(ctx context.Context, req reportdomain.ListReportsRequest) (reportdomain.ListReportsResponse, error)
	download   func(ctx context.Context, id snowflake.ID) (reportdomain.DownloadArtifact, error)
	deleteFn   func(ctx context.Context, id snowflake.ID) error
	statistics func(ctx context.Context, req reportdomain.StatisticsRequest) (reportdomain.Statistics, error)
}

func (s *reportServiceStub) Generate(ctx context.Context, req reportdomain.GenerateReportRequest) (reportdomain.GenerateReportResponse, error) {
	return s.generate(ctx, req)
}

func (s *reportServiceStub) GetByID(ctx context.Context, id snowflake.ID) (reportdomain.Report, error) {
	return s.getByID(ctx, id)
}

func (s *reportServiceStub) List(ctx context.Context, req reportdomain.ListReportsRequest) (reportdomain.ListReportsResponse, error) {
	return s.list(ctx, req)
}

func (s *reportServiceStub) Download(ctx context.Context, id snowflake.ID) (reportdomain.DownloadArtifact, error) {
	return s.download(ctx, id)
}

func (s *reportServiceStub) Delete(ctx context.Context, id snowflake.ID) error {
	return s.deleteFn(ctx, id)
}

func (s *reportServiceStub) Statistics(ctx context.Context, req reportdomain.StatisticsRequest) (reportdomain.Statistics, error) {
	return s.statistics(ctx, req)
}

func setupTestServer(t *testing.T, stub *reportServiceStub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin:       engine,
		Cfg:       config.Config{},
		ReportSvc: stub,
	})
	srv.RegisterAPIRoutes()
	return engine
}

func perform(engine *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestGenerateReportHandler(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	reportID := node.Generate()

	stub := &reportServiceStub{
		generate: func(ctx context.Context, req reportdomain.GenerateReportRequest) (reportdomain.GenerateReportResponse, error) {
			assert.Equal(t, 2025, req.Year)
			assert.Equal(t, "Delhi", req.State)
			return reportdomain.GenerateReportResponse{
				ReportID:    reportID,
				PDFURL:      fmt.Sprintf("http://localhost:8080/api/reports/%d/download", reportID),
				FileSize:    "12.40 KB",
				Status:      reportdomain.StatusCompleted,
				GeneratedAt: time.Now().UTC(),
			}, nil
		},
	}
	engine := setupTestServer(t, stub)

	rec := perform(engine, http.MethodPost, "/api/reports/generate",
		`{"year":2025,"month":1,"state":"Delhi","district":"Central Delhi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, reportID.String(), resp["reportId"])
	assert.Equal(t, "COMPLETED", resp["status"])
}

func TestGenerateReportHandlerBadBody(t *testing.T) {
	stub := &reportServiceStub{
		generate: func(ctx context.Context, req reportdomain.GenerateReportRequest) (reportdomain.GenerateReportResponse, error) {
			t.Fatal("service must not be called for an unparseable body")
			return reportdomain.GenerateReportResponse{}, nil
		},
	}
	engine := setupTestServer(t, stub)

	rec := perform(engine, http.MethodPost, "/api/reports/generate", `{"year":"not a number"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
}

func TestGenerateReportHandlerConflict(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	existingID := node.Generate()

	stub := &reportServiceStub{
		generate: func(ctx context.Context, req reportdomain.GenerateReportRequest) (reportdomain.GenerateReportResponse, error) {
			return reportdomain.GenerateReportResponse{}, &reportdomain.ReportExistsError{ExistingID: existingID}
		},
	}
	engine := setupTestServer(t, stub)

	rec := perform(engine, http.MethodPost, "/api/reports/generate",
		`{"year":2025,"month":1,"state":"Delhi","district":"Central Delhi"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Error    errorPayload `json:"error"`
		ReportID string       `json:"reportId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "conflict", resp.Error.Type)
	assert.Equal(t, existingID.String(), resp.ReportID)
}

func TestGenerateReportHandlerValidationError(t *testing.T) {
	stub := &reportServiceStub{
		generate: func(ctx context.Context, req reportdomain.GenerateReportRequest) (reportdomain.GenerateReportResponse, error) {
			return reportdomain.GenerateReportResponse{}, reportdomain.ErrInvalidMonth
		},
	}
	engine := setupTestServer(t, stub)

	rec := perform(engine, http.MethodPost, "/api/reports/generate",
		`{"year":2025,"month":13,"state":"Delhi","district":"Central Delhi"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	assert.Equal(t, "invalid_month", resp.Error.Code)
}

func TestGenerateReportHandlerNoFindings(t *testing.T) {
	stub := &reportServiceStub{
		generate: func(ctx context.Context, req reportdomain.GenerateReportRequest) (reportdomain.GenerateReportResponse, error) {
			return reportdomain.GenerateReportResponse{}, reportdomain.ErrNoFindings
		},
	}
	engine := setupTestServer(t, stub)

	rec := perform(engine, http.MethodPost, "/api/reports/generate",
		`{"year":2025,"month":1,"state":"Goa","district":"North Goa"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no_findings", resp.Error.Code)
}

func TestGetReportHandler(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	reportID := node.Generate()

	stub := &reportServiceStub{
		getByID: func(ctx context.Context, id snowflake.ID) (reportdomain.Report, error) {
			if id != reportID {
				return reportdomain.Report{}, reportdomain.ErrNotFound
			}
			return reportdomain.Report{ID: reportID, Title: "Aadhaar Intelligence Report - Delhi Central Delhi"}, nil
		},
	}
	engine := setupTestServer(t, stub)

	rec := perform(engine, http.MethodGet, fmt.Sprintf("/api/reports/%d", reportID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = perform(engine, http.MethodGet, fmt.Sprintf("/api/reports/%d", node.Generate()), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "report_not_found", resp.Error.Code)

	rec = perform(engine, http.MethodGet, "/api/reports/not-an-id", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadReportHandler(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	reportID := node.Generate()
	pdfBytes := []byte("%PDF-1.4\nstub\n%%EOF")

	stub := &reportServiceStub{
		download: func(ctx context.Context, id snowflake.ID) (reportdomain.DownloadArtifact, error) {
			if id != reportID {
				return reportdomain.DownloadArtifact{}, reportdomain.ErrArtifactAbsent
			}
			return reportdomain.DownloadArtifact{Filename: "report_2025_01.pdf", Data: pdfBytes}, nil
		},
	}
	engine := setupTestServer(t, stub)

	rec := perform(engine, http.MethodGet, fmt.Sprintf("/api/reports/%d/download", reportID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report_2025_01.pdf")
	assert.Equal(t, pdfBytes, rec.Body.Bytes())

	rec = perform(engine, http.MethodGet, fmt.Sprintf("/api/reports/%d/download", node.Generate()), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "artifact_not_found", resp.Error.Code)
}

func TestDeleteReportHandler(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	reportID := node.Generate()

	var deleted snowflake.ID
	stub := &reportServiceStub{
		deleteFn: func(ctx context.Context, id snowflake.ID) error {
			deleted = id
			return nil
		},
	}
	engine := setupTestServer(t, stub)

	rec := perform(engine, http.MethodDelete, fmt.Sprintf("/api/reports/%d", reportID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reportID, deleted)
}

func TestListReportsHandler(t *testing.T) {
	var got reportdomain.ListReportsRequest
	stub := &reportServiceStub{
		list: func(ctx context.Context, req reportdomain.ListReportsRequest) (reportdomain.ListReportsResponse, error) {
			got = req
			return reportdomain.ListReportsResponse{Reports: []reportdomain.Report{}}, nil
		},
	}
	engine := setupTestServer(t, stub)

	rec := perform(engine, http.MethodGet, "/api/reports?year=2025&month=1&state=Delhi&page=2&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Year)
	assert.Equal(t, 2025, *got.Year)
	require.NotNil(t, got.Month)
	assert.Equal(t, 1, *got.Month)
	assert.Equal(t, "Delhi", got.State)
	assert.Equal(t, 2, got.Page.Page)
	assert.Equal(t, 5, got.Page.Limit)

	rec = perform(engine, http.MethodGet, "/api/reports?month=january", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReportStatisticsHandler(t *testing.T) {
	stub := &reportServiceStub{
		statistics: func(ctx context.Context, req reportdomain.StatisticsRequest) (reportdomain.Statistics, error) {
			return reportdomain.Statistics{TotalReports: 3, CompletedReports: 3, TotalFindings: 12}, nil
		},
	}
	engine := setupTestServer(t, stub)

	rec := perform(engine, http.MethodGet, "/api/reports/stats?year=2025&state=Delhi", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp reportdomain.Statistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.TotalReports)
	assert.Equal(t, int64(12), resp.TotalFindings)
}
