package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/opengovlab/drishti/internal/report/domain"
	"github.com/opengovlab/drishti/pkg/db/pagination"
	"gorm.io/gorm"
)

// severityOrder ranks item severities so critical sorts first. Stored
// severities are plain strings, so lexicographic ordering would be wrong.
const severityOrder = "CASE severity WHEN 'critical' THEN 4 WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC"

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByNaturalKey(ctx context.Context, db *gorm.DB, year, month int, state, district string) (*domain.Report, error) {
	var report domain.Report
	err := db.WithContext(ctx).
		Where("year = ? AND month = ? AND state = ? AND district = ?", year, month, state, district).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Report, error) {
	var report domain.Report
	err := db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Sections.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order(severityOrder)
		}).
		First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, report *domain.Report) error {
	return db.WithContext(ctx).Create(report).Error
}

func (r *repo) UpdatePDFURL(ctx context.Context, db *gorm.DB, id snowflake.ID, url string) error {
	return db.WithContext(ctx).
		Model(&domain.Report{}).
		Where("id = ?", id).
		Update("pdf_url", url).Error
}

func (r *repo) InsertSection(ctx context.Context, db *gorm.DB, section *domain.ReportSection) error {
	return db.WithContext(ctx).Create(section).Error
}

func (r *repo) InsertItems(ctx context.Context, db *gorm.DB, items []domain.ReportItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(items, 100).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListReportsFilter, page pagination.Pagination) ([]domain.Report, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Report{})
	if filter.Year != nil {
		stmt = stmt.Where("year = ?", *filter.Year)
	}
	if filter.Month != nil {
		stmt = stmt.Where("month = ?", *filter.Month)
	}
	if filter.State != "" {
		stmt = stmt.Where("state = ?", filter.State)
	}
	if filter.District != "" {
		stmt = stmt.Where("district = ?", filter.District)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []domain.Report
	err := stmt.
		Order("generated_at desc").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *repo) SectionIDs(ctx context.Context, db *gorm.DB, reportID snowflake.ID) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := db.WithContext(ctx).
		Model(&domain.ReportSection{}).
		Where("report_id = ?", reportID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repo) DeleteItems(ctx context.Context, db *gorm.DB, sectionIDs []snowflake.ID) error {
	if len(sectionIDs) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Where("section_id IN ?", sectionIDs).
		Delete(&domain.ReportItem{}).Error
}

func (r *repo) DeleteSections(ctx context.Context, db *gorm.DB, reportID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Delete(&domain.ReportSection{}).Error
}

func (r *repo) DeleteReport(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Report{}).Error
}

func (r *repo) Statistics(ctx context.Context, db *gorm.DB, req domain.StatisticsRequest) (domain.Statistics, error) {
	base := db.WithContext(ctx).Model(&domain.Report{})
	if req.Year != nil {
		base = base.Where("year = ?", *req.Year)
	}
	if req.State != "" {
		base = base.Where("state = ?", req.State)
	}

	var stats domain.Statistics
	if err := base.Session(&gorm.Session{}).Count(&stats.TotalReports).Error; err != nil {
		return domain.Statistics{}, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", domain.StatusCompleted).
		Count(&stats.CompletedReports).Error; err != nil {
		return domain.Statistics{}, err
	}

	var sums struct {
		TotalFindings int64
		CriticalCount int64
		HighCount     int64
	}
	err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_findings),0) AS total_findings, COALESCE(SUM(critical_count),0) AS critical_count, COALESCE(SUM(high_count),0) AS high_count").
		Scan(&sums).Error
	if err != nil {
		return domain.Statistics{}, err
	}
	stats.TotalFindings = sums.TotalFindings
	stats.CriticalFindings = sums.CriticalCount
	stats.HighFindings = sums.HighCount

	return stats, nil
}
