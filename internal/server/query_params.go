package server

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	reportdomain "github.com/opengovlab/drishti/internal/report/domain"
)

func parseOptionalInt(value string) (*int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseReportID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, reportdomain.ErrInvalidID
	}
	return id, nil
}
