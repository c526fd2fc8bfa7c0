package pdf

import (
	"context"

	findingdomain "github.com/opengovlab/drishti/internal/finding/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

// ReportData is the bundle handed to the renderer: metadata, the
// PDF-shaped findings and the summary.
type ReportData struct {
	Year           int
	Month          int
	State          string
	District       string
	MetricCategory string
	GeneratedBy    string
	Findings       []ReportFinding
	Summary        findingdomain.Summary
}

// ReportFinding is one finding flattened for rendering, with display
// labels resolved per finding type.
type ReportFinding struct {
	FindingType    string
	Severity       string
	Title          string
	Description    string
	Confidence     float64
	Recommendation string
	DetectedAt     string

	Value1 *float64
	Value2 *float64
	Value3 *float64
	Label1 string
	Label2 string
	Label3 string
}

// Renderer turns a report bundle into a binary PDF document. It has no
// side effects.
type Renderer interface {
	RenderReport(ctx context.Context, data ReportData) ([]byte, error)
}
