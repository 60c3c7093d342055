package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/locvowork/company_reporting/internal/domain"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

type reportRepository struct {
	db Querier
}

// NewReportRepository creates a new instance of ReportRepository
func NewReportRepository(db Querier) domain.ReportRepository {
	return &reportRepository{db: db}
}

// Run executes the report and materializes every row.
func (r *reportRepository) Run(ctx context.Context, report domain.Report) (*domain.ResultSet, error) {
	rows, err := r.db.QueryContext(ctx, report.Query, report.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run report %s: %w", report.Name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to get column types: %w", err)
	}

	rs := &domain.ResultSet{Columns: columns, Rows: [][]interface{}{}}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i := range values {
			values[i] = normalizeValue(values[i], columnTypes[i].DatabaseTypeName())
		}
		rs.Rows = append(rs.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return rs, nil
}

// normalizeValue turns driver values into plain JSON-friendly values.
func normalizeValue(v interface{}, dbType string) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		s := string(val)
		if isNumericType(dbType) {
			if d, err := decimal.NewFromString(s); err == nil {
				return d.InexactFloat64()
			}
		}
		return s
	case time.Time:
		return formatTime(val, dbType)
	default:
		return val
	}
}

// formatTime keeps the date-only layout only when it drops nothing.
func formatTime(t time.Time, dbType string) string {
	h, m, sec := t.Clock()
	if strings.EqualFold(dbType, "DATE") && h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339Nano)
}

// isNumericType lists the types lib/pq hands back as []byte text, as it does
// for PostgreSQL NUMERIC columns and aggregates over them.
func isNumericType(dbType string) bool {
	switch strings.ToUpper(dbType) {
	case "NUMERIC", "DECIMAL", "REAL", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE":
		return true
	}
	return false
}
