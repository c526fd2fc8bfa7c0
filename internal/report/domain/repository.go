package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/opengovlab/drishti/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	FindByNaturalKey(ctx context.Context, db *gorm.DB, year, month int, state, district string) (*Report, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Report, error)
	Insert(ctx context.Context, db *gorm.DB, report *Report) error
	UpdatePDFURL(ctx context.Context, db *gorm.DB, id snowflake.ID, url string) error
	InsertSection(ctx context.Context, db *gorm.DB, section *ReportSection) error
	InsertItems(ctx context.Context, db *gorm.DB, items []ReportItem) error
	List(ctx context.Context, db *gorm.DB, filter ListReportsFilter, page pagination.Pagination) ([]Report, int64, error)
	SectionIDs(ctx context.Context, db *gorm.DB, reportID snowflake.ID) ([]snowflake.ID, error)
	DeleteItems(ctx context.Context, db *gorm.DB, sectionIDs []snowflake.ID) error
	DeleteSections(ctx context.Context, db *gorm.DB, reportID snowflake.ID) error
	DeleteReport(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	Statistics(ctx context.Context, db *gorm.DB, req StatisticsRequest) (Statistics, error)
}
