package sqlexcel

import (
	"context"
	"database/sql"
)

// DB is an interface that abstracts database operations
// This allows for easier testing and supports both *sql.DB and *sql.Tx
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// ExportConfig holds configuration for an export operation
type ExportConfig struct {
	// Display options
	IncludeHeaders bool
	FreezeHeader   bool
	AutoFilter     bool
	AutoFitColumns bool
	MaxColumnWidth int

	// Styling
	HeaderStyle *CellStyle
	DataStyle   *CellStyle
	// DateFormat applies to midnight times, DateTimeFormat to the rest.
	DateFormat     string
	DateTimeFormat string

	Sheets []SheetConfig
}

// SheetConfig holds configuration for a single sheet
type SheetConfig struct {
	Query     string
	Args      []interface{}
	SheetName string
	// Headers renames columns, keyed by result column name.
	Headers map[string]string
	// Widths fixes column widths, keyed by result column name.
	Widths map[string]float64
}

// CellStyle defines styling for cells
type CellStyle struct {
	FontName   string
	FontSize   float64
	FontBold   bool
	FontItalic bool
	FontColor  string

	FillColor   string
	FillPattern int

	Alignment     string // "left", "center", "right"
	VerticalAlign string // "top", "middle", "bottom"

	BorderStyle string
	BorderColor string

	NumberFormat string

	WrapText bool
}

// DefaultHeaderStyle returns a default style for headers
func DefaultHeaderStyle() *CellStyle {
	return &CellStyle{
		FontName:      "Arial",
		FontSize:      11,
		FontBold:      true,
		FontColor:     "#FFFFFF",
		FillColor:     "#4472C4",
		FillPattern:   1,
		Alignment:     "center",
		VerticalAlign: "middle",
	}
}

// DefaultDataStyle returns a default style for data cells
func DefaultDataStyle() *CellStyle {
	return &CellStyle{
		FontName:      "Arial",
		FontSize:      10,
		Alignment:     "left",
		VerticalAlign: "middle",
	}
}

// ExportOption is a functional option for Export operations
type ExportOption func(*ExportConfig) error

// SheetOption is a functional option for sheet configuration
type SheetOption func(*SheetConfig) error
