package handler

// ReportSummaryDTO lists one available report.
type ReportSummaryDTO struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Exported bool   `json:"exported"`
}

// ReportDTO is a report result with rows keyed by column name. Columns keeps
// the query order.
type ReportDTO struct {
	Name    string                   `json:"name"`
	Label   string                   `json:"label"`
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}
