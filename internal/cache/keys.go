package cache

import "fmt"

func ReportStatsKey(year int, state string) string {
	return fmt.Sprintf("reports:stats:%d:%s", year, state)
}
