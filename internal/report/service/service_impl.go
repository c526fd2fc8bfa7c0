package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/opengovlab/drishti/internal/artifact"
	"github.com/opengovlab/drishti/internal/cache"
	"github.com/opengovlab/drishti/internal/config"
	findingdomain "github.com/opengovlab/drishti/internal/finding/domain"
	"github.com/opengovlab/drishti/internal/providers/pdf"
	"github.com/opengovlab/drishti/internal/report/domain"
	"github.com/opengovlab/drishti/pkg/db"
	"github.com/opengovlab/drishti/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const statsCacheTTL = 2 * time.Minute

var metricCategories = map[string]struct{}{
	"enrolment":          {},
	"demographic_update": {},
	"biometric_update":   {},
	"authentication":     {},
}

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Cfg       config.Config
	Reporting *config.ReportingHolder
	Repo      domain.Repository
	Findings  findingdomain.Service
	Renderer  pdf.Renderer
	Artifacts artifact.Store
	Cache     *cache.Cache
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	cfg       config.Config
	reporting *config.ReportingHolder
	repo      domain.Repository
	findings  findingdomain.Service
	renderer  pdf.Renderer
	artifacts artifact.Store
	cache     *cache.Cache
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("report.service"),
		genID:     p.GenID,
		cfg:       p.Cfg,
		reporting: p.Reporting,
		repo:      p.Repo,
		findings:  p.Findings,
		renderer:  p.Renderer,
		artifacts: p.Artifacts,
		cache:     p.Cache,
	}
}

// Generate compiles a new report for one period and region. At most one
// report may exist per (year, month, state, district): the pre-check gives
// a fast conflict, and the unique index on reports makes the insert itself
// the authoritative check under concurrency.
func (s *Service) Generate(ctx context.Context, req domain.GenerateReportRequest) (domain.GenerateReportResponse, error) {
	req.State = strings.TrimSpace(req.State)
	req.District = strings.TrimSpace(req.District)
	req.MetricCategory = strings.TrimSpace(req.MetricCategory)

	if err := s.validateGenerate(req); err != nil {
		return domain.GenerateReportResponse{}, err
	}

	existing, err := s.repo.FindByNaturalKey(ctx, s.db, req.Year, req.Month, req.State, req.District)
	if err != nil {
		return domain.GenerateReportResponse{}, err
	}
	if existing != nil {
		return domain.GenerateReportResponse{}, &domain.ReportExistsError{ExistingID: existing.ID}
	}

	findings, err := s.findings.Gather(ctx, findingdomain.Filter{
		Year:           req.Year,
		Month:          req.Month,
		State:          req.State,
		District:       req.District,
		MetricCategory: req.MetricCategory,
	})
	if err != nil {
		return domain.GenerateReportResponse{}, err
	}
	if len(findings) == 0 {
		return domain.GenerateReportResponse{}, domain.ErrNoFindings
	}

	summary := findingdomain.Summarize(findings)

	pdfBytes, err := s.renderer.RenderReport(ctx, pdf.ReportData{
		Year:           req.Year,
		Month:          req.Month,
		State:          req.State,
		District:       req.District,
		MetricCategory: req.MetricCategory,
		GeneratedBy:    s.generatedBy(req.CreatedBy),
		Findings:       toPDFFindings(findings),
		Summary:        summary,
	})
	if err != nil {
		return domain.GenerateReportResponse{}, fmt.Errorf("render report: %w", err)
	}

	filename := fmt.Sprintf("report_%d_%02d_%s_%s_%d.pdf",
		req.Year, req.Month, req.State, req.District, time.Now().UnixMilli())
	pdfPath, err := s.artifacts.Write(filename, pdfBytes)
	if err != nil {
		return domain.GenerateReportResponse{}, fmt.Errorf("store artifact: %w", err)
	}
	fileSize := artifact.FormatFileSize(len(pdfBytes))

	now := time.Now().UTC()
	report := domain.Report{
		ID:            s.genID.Generate(),
		Title:         fmt.Sprintf("Aadhaar Intelligence Report - %s %s", req.State, req.District),
		ReportType:    s.reporting.Get().ReportType,
		GeneratedBy:   s.generatedBy(req.CreatedBy),
		Year:          req.Year,
		Month:         req.Month,
		State:         req.State,
		District:      req.District,
		Status:        domain.StatusCompleted,
		PDFPath:       pdfPath,
		PDFURL:        "",
		FileSize:      fileSize,
		TotalFindings: summary.TotalFindings,
		CriticalCount: summary.Critical,
		HighCount:     summary.High,
		MediumCount:   summary.Medium,
		LowCount:      summary.Low,
		GeneratedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &report); err != nil {
			return err
		}

		report.PDFURL = fmt.Sprintf("%s/api/reports/%d/download", s.cfg.BaseURL, report.ID)
		if err := s.repo.UpdatePDFURL(ctx, tx, report.ID, report.PDFURL); err != nil {
			return err
		}

		section := domain.ReportSection{
			ID:          s.genID.Generate(),
			ReportID:    report.ID,
			SectionType: domain.SectionTypeExecutiveSummary,
			Title:       "Detailed Findings",
			OrderIndex:  1,
			SummaryText: fmt.Sprintf("Analysis of %d findings including %d anomalies and %d patterns.",
				summary.TotalFindings, summary.Anomalies, summary.Patterns),
		}
		if err := s.repo.InsertSection(ctx, tx, &section); err != nil {
			return err
		}

		items, err := s.buildItems(section.ID, findings)
		if err != nil {
			return err
		}
		return s.repo.InsertItems(ctx, tx, items)
	})
	if err != nil {
		// The artifact was written before the transaction; drop it so a
		// failed persist does not leave an orphaned file.
		if delErr := s.artifacts.Delete(pdfPath); delErr != nil {
			s.log.Warn("failed to remove artifact after rollback", zap.String("path", pdfPath), zap.Error(delErr))
		}
		if db.IsDuplicateKeyErr(err) {
			return domain.GenerateReportResponse{}, s.conflictFor(ctx, req)
		}
		return domain.GenerateReportResponse{}, err
	}

	s.invalidateStats(ctx, report.Year, report.State)
	s.log.Info("report generated",
		zap.Int64("report_id", int64(report.ID)),
		zap.Int("year", report.Year),
		zap.Int("month", report.Month),
		zap.String("state", report.State),
		zap.String("district", report.District),
		zap.Int("findings", summary.TotalFindings),
	)

	return domain.GenerateReportResponse{
		ReportID:        report.ID,
		PDFURL:          report.PDFURL,
		FileSize:        report.FileSize,
		Status:          report.Status,
		GeneratedAt:     report.GeneratedAt,
		FindingsSummary: summary,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Report, error) {
	report, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Report{}, err
	}
	if report == nil {
		return domain.Report{}, domain.ErrNotFound
	}
	return *report, nil
}

func (s *Service) List(ctx context.Context, req domain.ListReportsRequest) (domain.ListReportsResponse, error) {
	page := req.Page.Normalize()
	reports, total, err := s.repo.List(ctx, s.db, domain.ListReportsFilter{
		Year:     req.Year,
		Month:    req.Month,
		State:    strings.TrimSpace(req.State),
		District: strings.TrimSpace(req.District),
		Status:   strings.TrimSpace(req.Status),
	}, page)
	if err != nil {
		return domain.ListReportsResponse{}, err
	}

	return domain.ListReportsResponse{
		Reports:    reports,
		Pagination: pagination.BuildPageInfo(page, total),
	}, nil
}

// Download resolves the stored artifact. A missing report row and a
// missing file on disk are distinct signals.
func (s *Service) Download(ctx context.Context, id snowflake.ID) (domain.DownloadArtifact, error) {
	report, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.DownloadArtifact{}, err
	}
	if report == nil || report.PDFPath == "" {
		return domain.DownloadArtifact{}, domain.ErrNotFound
	}

	if !s.artifacts.Exists(report.PDFPath) {
		return domain.DownloadArtifact{}, domain.ErrArtifactAbsent
	}

	data, err := s.artifacts.Read(report.PDFPath)
	if err != nil {
		return domain.DownloadArtifact{}, err
	}

	return domain.DownloadArtifact{
		Filename: filepath.Base(report.PDFPath),
		Data:     data,
	}, nil
}

// Delete removes the artifact file (best effort) and then the record
// graph in strict order: items, sections, report. The storage layer does
// not cascade.
func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	report, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if report == nil {
		return domain.ErrNotFound
	}

	if report.PDFPath != "" {
		if err := s.artifacts.Delete(report.PDFPath); err != nil {
			s.log.Warn("failed to delete report artifact",
				zap.Int64("report_id", int64(id)),
				zap.String("path", report.PDFPath),
				zap.Error(err),
			)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sectionIDs, err := s.repo.SectionIDs(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteItems(ctx, tx, sectionIDs); err != nil {
			return err
		}
		if err := s.repo.DeleteSections(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.DeleteReport(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.invalidateStats(ctx, report.Year, report.State)
	s.log.Info("report deleted", zap.Int64("report_id", int64(id)))
	return nil
}

// Statistics aggregates the denormalized per-report counts. This is an
// approximation from stored rollups, not a live re-aggregation of items.
func (s *Service) Statistics(ctx context.Context, req domain.StatisticsRequest) (domain.Statistics, error) {
	req.State = strings.TrimSpace(req.State)

	key := statsKey(req)
	var cached domain.Statistics
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	stats, err := s.repo.Statistics(ctx, s.db, req)
	if err != nil {
		return domain.Statistics{}, err
	}

	s.cache.SetJSON(ctx, key, stats, statsCacheTTL)
	return stats, nil
}

func (s *Service) validateGenerate(req domain.GenerateReportRequest) error {
	minYear := s.reporting.Get().MinYear
	currentYear := time.Now().Year()
	if req.Year < minYear || req.Year > currentYear {
		return domain.ErrInvalidYear
	}
	if req.Month < 1 || req.Month > 12 {
		return domain.ErrInvalidMonth
	}
	if req.State == "" {
		return domain.ErrInvalidState
	}
	if req.District == "" {
		return domain.ErrInvalidDistrict
	}
	if req.MetricCategory != "" {
		if _, ok := metricCategories[req.MetricCategory]; !ok {
			return domain.ErrInvalidMetricCategory
		}
	}
	return nil
}

func (s *Service) generatedBy(createdBy string) string {
	createdBy = strings.TrimSpace(createdBy)
	if createdBy == "" {
		return s.reporting.Get().DefaultGeneratedBy
	}
	return createdBy
}

// conflictFor resolves the winning report after an insert-time duplicate
// key error, so the conflict always references the persisted id.
func (s *Service) conflictFor(ctx context.Context, req domain.GenerateReportRequest) error {
	existing, err := s.repo.FindByNaturalKey(ctx, s.db, req.Year, req.Month, req.State, req.District)
	if err != nil || existing == nil {
		return &domain.ReportExistsError{}
	}
	return &domain.ReportExistsError{ExistingID: existing.ID}
}

func (s *Service) buildItems(sectionID snowflake.ID, findings []findingdomain.Finding) ([]domain.ReportItem, error) {
	items := make([]domain.ReportItem, 0, len(findings))
	for _, f := range findings {
		snapshot, err := json.Marshal(domain.MetricSnapshot{
			MetricCategory: f.MetricCategory,
			AgeGroup:       f.AgeGroup,
			Value1:         f.Value1,
			Value2:         f.Value2,
			Value3:         f.Value3,
			SourceTable:    f.SourceTable,
			SourceID:       f.SourceID,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal metric snapshot: %w", err)
		}
		items = append(items, domain.ReportItem{
			ID:             s.genID.Generate(),
			SectionID:      sectionID,
			ItemType:       string(f.FindingType),
			Severity:       string(f.Severity),
			State:          f.State,
			District:       f.District,
			Title:          f.Title,
			Description:    f.Description,
			MetricSnapshot: datatypes.JSON(snapshot),
			Confidence:     f.Confidence,
			Recommendation: f.Recommendation,
		})
	}
	return items, nil
}

func (s *Service) invalidateStats(ctx context.Context, year int, state string) {
	s.cache.Invalidate(ctx,
		statsKey(domain.StatisticsRequest{}),
		statsKey(domain.StatisticsRequest{Year: &year}),
		statsKey(domain.StatisticsRequest{State: state}),
		statsKey(domain.StatisticsRequest{Year: &year, State: state}),
	)
}

func statsKey(req domain.StatisticsRequest) string {
	year := 0
	if req.Year != nil {
		year = *req.Year
	}
	return cache.ReportStatsKey(year, req.State)
}

func toPDFFindings(findings []findingdomain.Finding) []pdf.ReportFinding {
	out := make([]pdf.ReportFinding, 0, len(findings))
	for _, f := range findings {
		label1, label2, label3 := f.FindingType.MetricLabels()
		out = append(out, pdf.ReportFinding{
			FindingType:    string(f.FindingType),
			Severity:       string(f.Severity),
			Title:          f.Title,
			Description:    f.Description,
			Confidence:     f.Confidence,
			Recommendation: f.Recommendation,
			DetectedAt:     f.DetectedAt.UTC().Format(time.RFC3339),
			Value1:         f.Value1,
			Value2:         f.Value2,
			Value3:         f.Value3,
			Label1:         label1,
			Label2:         label2,
			Label3:         label3,
		})
	}
	return out
}
