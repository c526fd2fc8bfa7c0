package domain

// Summary aggregates a batch of findings by type and severity.
type Summary struct {
	TotalFindings int `json:"totalFindings"`
	Anomalies     int `json:"anomalies"`
	Patterns      int `json:"patterns"`
	Trends        int `json:"trends"`
	Predictions   int `json:"predictions"`
	Critical      int `json:"critical"`
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
}

// Summarize reduces findings into counts. The result does not depend on
// the order of the input.
func Summarize(findings []Finding) Summary {
	summary := Summary{TotalFindings: len(findings)}
	for _, f := range findings {
		switch f.FindingType {
		case FindingTypeAnomaly:
			summary.Anomalies++
		case FindingTypePattern:
			summary.Patterns++
		case FindingTypeTrend:
			summary.Trends++
		case FindingTypePrediction:
			summary.Predictions++
		}
		switch f.Severity {
		case SeverityCritical:
			summary.Critical++
		case SeverityHigh:
			summary.High++
		case SeverityMedium:
			summary.Medium++
		case SeverityLow:
			summary.Low++
		}
	}
	return summary
}
