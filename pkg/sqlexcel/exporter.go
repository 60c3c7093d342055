package sqlexcel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Exporter runs SQL queries and writes each result as a worksheet.
type Exporter struct {
	db     DB
	config *ExportConfig
	err    error
}

// NewExporter creates a new query to Excel exporter
func NewExporter(db DB) *Exporter {
	return &Exporter{
		db: db,
		config: &ExportConfig{
			IncludeHeaders: true,
			AutoFitColumns: true,
			MaxColumnWidth: 50,
			DateFormat:     "2006-01-02",
			DateTimeFormat: "2006-01-02 15:04:05",
			HeaderStyle:    DefaultHeaderStyle(),
			DataStyle:      DefaultDataStyle(),
		},
	}
}

// AddSheet adds a sheet filled from query. Option errors surface from Export.
func (e *Exporter) AddSheet(query string, sheetName string, opts ...SheetOption) *Exporter {
	sheetCfg := SheetConfig{
		Query:     query,
		SheetName: sheetName,
	}

	for _, opt := range opts {
		if err := opt(&sheetCfg); err != nil && e.err == nil {
			e.err = fmt.Errorf("sheet %s: %w", sheetName, err)
		}
	}

	e.config.Sheets = append(e.config.Sheets, sheetCfg)
	return e
}

// Export executes every sheet query and writes the workbook to writer
func (e *Exporter) Export(ctx context.Context, writer io.Writer, opts ...ExportOption) error {
	if e.err != nil {
		return e.err
	}
	for _, opt := range opts {
		if err := opt(e.config); err != nil {
			return fmt.Errorf("applying export option: %w", err)
		}
	}
	if len(e.config.Sheets) == 0 {
		return errors.New("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheetCfg := range e.config.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheetCfg.SheetName); err != nil {
				return fmt.Errorf("naming sheet %s: %w", sheetCfg.SheetName, err)
			}
		} else if _, err := f.NewSheet(sheetCfg.SheetName); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sheetCfg.SheetName, err)
		}

		if err := e.exportSheet(ctx, f, sheetCfg); err != nil {
			return fmt.Errorf("exporting sheet %s: %w", sheetCfg.SheetName, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("writing Excel file: %w", err)
	}
	return nil
}

// ExportToFile exports to a file path
func (e *Exporter) ExportToFile(ctx context.Context, filepath string, opts ...ExportOption) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := e.Export(ctx, file, opts...); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// exportSheet exports a single sheet
func (e *Exporter) exportSheet(ctx context.Context, f *excelize.File, sheet SheetConfig) error {
	cfg := e.config
	sheetName := sheet.SheetName

	rows, err := e.db.QueryContext(ctx, sheet.Query, sheet.Args...)
	if err != nil {
		return fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("getting columns: %w", err)
	}

	headerStyleID, err := e.createStyle(f, cfg.HeaderStyle)
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	dataStyleID, err := e.createStyle(f, cfg.DataStyle)
	if err != nil {
		return fmt.Errorf("creating data style: %w", err)
	}

	columnWidths := make([]float64, len(columns))
	for i := range columnWidths {
		columnWidths[i] = 10.0 // Default width
	}

	rowNum := 1
	if cfg.IncludeHeaders {
		for colIdx, colName := range columns {
			header := colName
			if h, ok := sheet.Headers[colName]; ok {
				header = h
			}
			cell := columnIndexToName(colIdx) + "1"
			if err := f.SetCellValue(sheetName, cell, header); err != nil {
				return fmt.Errorf("setting header value: %w", err)
			}
			if err := f.SetCellStyle(sheetName, cell, cell, headerStyleID); err != nil {
				return fmt.Errorf("setting header style: %w", err)
			}
			if float64(len(header)) > columnWidths[colIdx] {
				columnWidths[colIdx] = float64(len(header))
			}
		}
		rowNum++
	}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}

		for colIdx, value := range values {
			cell := fmt.Sprintf("%s%d", columnIndexToName(colIdx), rowNum)
			displayValue := e.formatValue(value, cfg)

			if err := f.SetCellValue(sheetName, cell, displayValue); err != nil {
				return fmt.Errorf("setting cell value: %w", err)
			}
			if err := f.SetCellStyle(sheetName, cell, cell, dataStyleID); err != nil {
				return fmt.Errorf("setting cell style: %w", err)
			}

			if cfg.AutoFitColumns {
				valueLen := len(fmt.Sprintf("%v", displayValue))
				if float64(valueLen) > columnWidths[colIdx] {
					columnWidths[colIdx] = float64(valueLen)
				}
			}
		}
		rowNum++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	for i, colName := range columns {
		width, fixed := sheet.Widths[colName]
		if !fixed {
			if !cfg.AutoFitColumns {
				continue
			}
			width = columnWidths[i] * 1.2 // Add some padding
			if cfg.MaxColumnWidth > 0 && width > float64(cfg.MaxColumnWidth) {
				width = float64(cfg.MaxColumnWidth)
			}
		}
		col := columnIndexToName(i)
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	if cfg.FreezeHeader && cfg.IncludeHeaders {
		if err := f.SetPanes(sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("setting freeze panes: %w", err)
		}
	}

	if cfg.AutoFilter && cfg.IncludeHeaders && len(columns) > 0 {
		filterRange := fmt.Sprintf("A1:%s1", columnIndexToName(len(columns)-1))
		if err := f.AutoFilter(sheetName, filterRange, []excelize.AutoFilterOptions{}); err != nil {
			return fmt.Errorf("setting auto filter: %w", err)
		}
	}

	return nil
}

// createStyle creates an Excel style from a CellStyle
func (e *Exporter) createStyle(f *excelize.File, style *CellStyle) (int, error) {
	if style == nil {
		return 0, nil
	}

	excelStyle := &excelize.Style{
		Font: &excelize.Font{
			Bold:   style.FontBold,
			Italic: style.FontItalic,
			Size:   style.FontSize,
			Family: style.FontName,
		},
		Alignment: &excelize.Alignment{
			Horizontal: style.Alignment,
			Vertical:   style.VerticalAlign,
			WrapText:   style.WrapText,
		},
	}

	if style.FontColor != "" {
		excelStyle.Font.Color = strings.TrimPrefix(style.FontColor, "#")
	}

	if style.FillColor != "" {
		excelStyle.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: style.FillPattern,
			Color:   []string{strings.TrimPrefix(style.FillColor, "#")},
		}
	}

	if style.BorderStyle != "" {
		borderColor := "000000"
		if style.BorderColor != "" {
			borderColor = strings.TrimPrefix(style.BorderColor, "#")
		}
		excelStyle.Border = []excelize.Border{
			{Type: "left", Color: borderColor, Style: 1},
			{Type: "top", Color: borderColor, Style: 1},
			{Type: "bottom", Color: borderColor, Style: 1},
			{Type: "right", Color: borderColor, Style: 1},
		}
	}

	if style.NumberFormat != "" {
		excelStyle.CustomNumFmt = &style.NumberFormat
	}

	return f.NewStyle(excelStyle)
}

// formatValue formats a database value for Excel
func (e *Exporter) formatValue(value interface{}, cfg *ExportConfig) interface{} {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case time.Time:
		if h, m, sec := v.Clock(); h != 0 || m != 0 || sec != 0 || v.Nanosecond() != 0 {
			return v.Format(cfg.DateTimeFormat)
		}
		return v.Format(cfg.DateFormat)
	default:
		return v
	}
}

// columnIndexToName converts column index (0-based) to Excel column name
func columnIndexToName(index int) string {
	name := ""
	index++ // Convert to 1-based

	for index > 0 {
		index--
		name = string(rune('A'+index%26)) + name
		index /= 26
	}

	return name
}
