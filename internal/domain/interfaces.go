package domain

import "context"

// Report is one fixed analytical query.
type Report struct {
	Name  string
	Label string
	Query string
	Args  []interface{}
	// Export marks reports that are also written as NDJSON files.
	Export bool
}

// ReportRepository executes reports against the loaded tables.
type ReportRepository interface {
	Run(ctx context.Context, report Report) (*ResultSet, error)
}
