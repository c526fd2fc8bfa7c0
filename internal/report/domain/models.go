package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	StatusCompleted = "COMPLETED"

	SectionTypeExecutiveSummary = "executive_summary"
)

// Report is the aggregate root. The natural key (year, month, state,
// district) is unique: at most one report exists per period and region.
type Report struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	ReportType  string       `gorm:"not null" json:"report_type"`
	GeneratedBy string       `gorm:"not null" json:"generated_by"`

	Year     int    `gorm:"not null;uniqueIndex:ux_reports_period_region" json:"year"`
	Month    int    `gorm:"not null;uniqueIndex:ux_reports_period_region" json:"month"`
	State    string `gorm:"not null;uniqueIndex:ux_reports_period_region" json:"state"`
	District string `gorm:"not null;uniqueIndex:ux_reports_period_region" json:"district"`

	Status string `gorm:"not null" json:"status"`

	PDFPath  string `gorm:"column:pdf_path" json:"pdf_path"`
	PDFURL   string `gorm:"column:pdf_url" json:"pdf_url"`
	FileSize string `json:"file_size"`

	// Denormalized counts copied from the generation summary. Never
	// recomputed after creation.
	TotalFindings int `gorm:"not null;default:0" json:"total_findings"`
	CriticalCount int `gorm:"not null;default:0" json:"critical_count"`
	HighCount     int `gorm:"not null;default:0" json:"high_count"`
	MediumCount   int `gorm:"not null;default:0" json:"medium_count"`
	LowCount      int `gorm:"not null;default:0" json:"low_count"`

	GeneratedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"generated_at"`

	Sections []ReportSection `gorm:"foreignKey:ReportID" json:"sections,omitempty"`
}

func (Report) TableName() string { return "reports" }

// ReportSection belongs to exactly one report. The storage layer does not
// cascade deletes; removal order is enforced in the repository.
type ReportSection struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ReportID    snowflake.ID `gorm:"not null;index" json:"report_id"`
	SectionType string       `gorm:"not null" json:"section_type"`
	Title       string       `gorm:"not null" json:"title"`
	OrderIndex  int          `gorm:"not null;default:1" json:"order_index"`
	SummaryText string       `json:"summary_text"`

	Items []ReportItem `gorm:"foreignKey:SectionID" json:"items,omitempty"`
}

func (ReportSection) TableName() string { return "report_sections" }

// ReportItem is immutable once created: bulk-inserted at generation time
// and only ever removed by the cascade delete.
type ReportItem struct {
	ID             snowflake.ID   `gorm:"primaryKey" json:"id"`
	SectionID      snowflake.ID   `gorm:"not null;index" json:"section_id"`
	ItemType       string         `gorm:"not null" json:"item_type"`
	Severity       string         `gorm:"not null" json:"severity"`
	State          string         `gorm:"not null" json:"state"`
	District       string         `gorm:"not null" json:"district"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `json:"description"`
	MetricSnapshot datatypes.JSON `json:"metric_snapshot"`
	Confidence     float64        `json:"confidence"`
	Recommendation string         `json:"recommendation"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ReportItem) TableName() string { return "report_items" }

// MetricSnapshot preserves traceability from an item back to its source
// table and row.
type MetricSnapshot struct {
	MetricCategory string   `json:"metricCategory"`
	AgeGroup       string   `json:"ageGroup"`
	Value1         *float64 `json:"value1"`
	Value2         *float64 `json:"value2"`
	Value3         *float64 `json:"value3"`
	SourceTable    string   `json:"sourceTable"`
	SourceID       int64    `json:"sourceId"`
}
