package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/opengovlab/drishti/internal/report/domain"
	"github.com/opengovlab/drishti/pkg/db/pagination"
)

type generateReportBody struct {
	Year           int    `json:"year" binding:"required"`
	Month          int    `json:"month" binding:"required"`
	State          string `json:"state" binding:"required"`
	District       string `json:"district" binding:"required"`
	MetricCategory string `json:"metricCategory"`
	CreatedBy      string `json:"createdBy"`
}

func (s *Server) GenerateReport(c *gin.Context) {
	var body generateReportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.reportSvc.Generate(c.Request.Context(), reportdomain.GenerateReportRequest{
		Year:           body.Year,
		Month:          body.Month,
		State:          body.State,
		District:       body.District,
		MetricCategory: body.MetricCategory,
		CreatedBy:      body.CreatedBy,
	})
	if err != nil {
		var exists *reportdomain.ReportExistsError
		if errors.As(err, &exists) {
			c.JSON(http.StatusConflict, gin.H{
				"error": errorPayload{
					Type:    "conflict",
					Message: "report already exists for this combination",
				},
				"reportId": exists.ExistingID,
			})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

type listReportsQuery struct {
	pagination.Pagination
	Year     string `form:"year"`
	Month    string `form:"month"`
	State    string `form:"state"`
	District string `form:"district"`
	Status   string `form:"status"`
}

func (s *Server) ListReports(c *gin.Context) {
	var query listReportsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	year, err := parseOptionalInt(query.Year)
	if err != nil {
		AbortWithError(c, reportdomain.ErrInvalidYear)
		return
	}
	month, err := parseOptionalInt(query.Month)
	if err != nil {
		AbortWithError(c, reportdomain.ErrInvalidMonth)
		return
	}

	resp, err := s.reportSvc.List(c.Request.Context(), reportdomain.ListReportsRequest{
		Year:     year,
		Month:    month,
		State:    query.State,
		District: query.District,
		Status:   query.Status,
		Page:     query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetReport(c *gin.Context) {
	id, err := parseReportID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	report, err := s.reportSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) DownloadReport(c *gin.Context) {
	id, err := parseReportID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	artifact, err := s.reportSvc.Download(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, "application/pdf", artifact.Data)
}

func (s *Server) DeleteReport(c *gin.Context) {
	id, err := parseReportID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.reportSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report deleted successfully"})
}

type statisticsQuery struct {
	Year  string `form:"year"`
	State string `form:"state"`
}

func (s *Server) GetReportStatistics(c *gin.Context) {
	var query statisticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	year, err := parseOptionalInt(query.Year)
	if err != nil {
		AbortWithError(c, reportdomain.ErrInvalidYear)
		return
	}

	stats, err := s.reportSvc.Statistics(c.Request.Context(), reportdomain.StatisticsRequest{
		Year:  year,
		State: query.State,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
