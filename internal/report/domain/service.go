package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	findingdomain "github.com/opengovlab/drishti/internal/finding/domain"
	"github.com/opengovlab/drishti/pkg/db/pagination"
)

var (
	ErrInvalidYear           = errors.New("invalid_year")
	ErrInvalidMonth          = errors.New("invalid_month")
	ErrInvalidState          = errors.New("invalid_state")
	ErrInvalidDistrict       = errors.New("invalid_district")
	ErrInvalidMetricCategory = errors.New("invalid_metric_category")
	ErrInvalidID             = errors.New("invalid_id")

	ErrReportExists   = errors.New("report_exists")
	ErrNoFindings     = errors.New("no_findings")
	ErrNotFound       = errors.New("report_not_found")
	ErrArtifactAbsent = errors.New("artifact_not_found")
)

// ReportExistsError carries the id of the report that already occupies the
// natural key. errors.Is(err, ErrReportExists) holds for it.
type ReportExistsError struct {
	ExistingID snowflake.ID
}

func (e *ReportExistsError) Error() string { return "report_exists" }

func (e *ReportExistsError) Unwrap() error { return ErrReportExists }

type GenerateReportRequest struct {
	Year           int
	Month          int
	State          string
	District       string
	MetricCategory string
	CreatedBy      string
}

type GenerateReportResponse struct {
	ReportID        snowflake.ID          `json:"reportId"`
	PDFURL          string                `json:"pdfUrl"`
	FileSize        string                `json:"fileSize"`
	Status          string                `json:"status"`
	GeneratedAt     time.Time             `json:"generatedAt"`
	FindingsSummary findingdomain.Summary `json:"findingsSummary"`
}

type ListReportsRequest struct {
	Year     *int
	Month    *int
	State    string
	District string
	Status   string
	Page     pagination.Pagination
}

type ListReportsFilter struct {
	Year     *int
	Month    *int
	State    string
	District string
	Status   string
}

type ListReportsResponse struct {
	Reports    []Report            `json:"reports"`
	Pagination pagination.PageInfo `json:"pagination"`
}

type StatisticsRequest struct {
	Year  *int
	State string
}

type Statistics struct {
	TotalReports     int64 `json:"totalReports"`
	CompletedReports int64 `json:"completedReports"`
	TotalFindings    int64 `json:"totalFindings"`
	CriticalFindings int64 `json:"criticalFindings"`
	HighFindings     int64 `json:"highFindings"`
}

// DownloadArtifact is the resolved artifact for streaming to the caller.
type DownloadArtifact struct {
	Filename string
	Data     []byte
}

type Service interface {
	Generate(ctx context.Context, req GenerateReportRequest) (GenerateReportResponse, error)
	GetByID(ctx context.Context, id snowflake.ID) (Report, error)
	List(ctx context.Context, req ListReportsRequest) (ListReportsResponse, error)
	Download(ctx context.Context, id snowflake.ID) (DownloadArtifact, error)
	Delete(ctx context.Context, id snowflake.ID) error
	Statistics(ctx context.Context, req StatisticsRequest) (Statistics, error)
}
