package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type marotoRenderer struct{}

func New() Renderer {
	return &marotoRenderer{}
}

func (r *marotoRenderer) RenderReport(ctx context.Context, data ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	period := fmt.Sprintf("%s %d", time.Month(data.Month).String(), data.Year)

	m.AddRow(14,
		text.NewCol(12, "Aadhaar Intelligence Report", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(18,
		col.New(6).Add(
			text.New("Region: "+data.State+", "+data.District, props.Text{Top: 0}),
			text.New("Period: "+period, props.Text{Top: 5}),
			text.New("Generated by: "+data.GeneratedBy, props.Text{Top: 10}),
		),
		col.New(6).Add(
			text.New(categoryLine(data.MetricCategory), props.Text{Top: 0}),
			text.New("Generated at: "+time.Now().UTC().Format("2006-01-02 15:04 MST"), props.Text{Top: 5}),
		),
	)

	// Summary block
	m.AddRow(10,
		text.NewCol(12, "Summary", props.Text{Size: 14, Style: fontstyle.Bold}),
	)
	m.AddRow(10,
		text.NewCol(3, fmt.Sprintf("Total findings: %d", data.Summary.TotalFindings), props.Text{Size: 9}),
		text.NewCol(3, fmt.Sprintf("Anomalies: %d", data.Summary.Anomalies), props.Text{Size: 9}),
		text.NewCol(3, fmt.Sprintf("Patterns: %d", data.Summary.Patterns), props.Text{Size: 9}),
		text.NewCol(3, fmt.Sprintf("Trends: %d", data.Summary.Trends), props.Text{Size: 9}),
	)
	m.AddRow(10,
		text.NewCol(3, fmt.Sprintf("Predictions: %d", data.Summary.Predictions), props.Text{Size: 9}),
		text.NewCol(3, fmt.Sprintf("Critical: %d", data.Summary.Critical), props.Text{Size: 9}),
		text.NewCol(3, fmt.Sprintf("High: %d", data.Summary.High), props.Text{Size: 9}),
		text.NewCol(3, fmt.Sprintf("Medium / Low: %d / %d", data.Summary.Medium, data.Summary.Low), props.Text{Size: 9}),
	)

	m.AddRow(12,
		text.NewCol(12, "Detailed Findings", props.Text{Size: 14, Style: fontstyle.Bold, Top: 3}),
	)

	for i, f := range data.Findings {
		m.AddRow(8,
			text.NewCol(9, fmt.Sprintf("%d. %s", i+1, f.Title), props.Text{Size: 10, Style: fontstyle.Bold}),
			text.NewCol(3, fmt.Sprintf("[%s] %s", f.Severity, f.FindingType), props.Text{Size: 9, Align: align.Right}),
		)
		m.AddRow(10,
			text.NewCol(12, f.Description, props.Text{Size: 9}),
		)
		m.AddRow(8,
			text.NewCol(4, metricCell(f.Label1, f.Value1), props.Text{Size: 8}),
			text.NewCol(4, metricCell(f.Label2, f.Value2), props.Text{Size: 8}),
			text.NewCol(4, metricCell(f.Label3, f.Value3), props.Text{Size: 8}),
		)
		m.AddRow(8,
			text.NewCol(8, "Recommendation: "+f.Recommendation, props.Text{Size: 8}),
			text.NewCol(4, fmt.Sprintf("Confidence: %.2f | %s", f.Confidence, f.DetectedAt), props.Text{Size: 8, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return doc.GetBytes(), nil
}

func categoryLine(category string) string {
	if category == "" {
		return "Category: all"
	}
	return "Category: " + category
}

func metricCell(label string, value *float64) string {
	if label == "" || value == nil {
		return ""
	}
	return fmt.Sprintf("%s: %.2f", label, *value)
}
