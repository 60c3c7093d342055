package service

import (
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/locvowork/company_reporting/internal/apperror"
	"github.com/locvowork/company_reporting/internal/repository"
	"github.com/locvowork/company_reporting/pkg/sqlexcel"
)

//go:embed report_template.yaml
var defaultTemplate string

// LoadReportTemplate reads the workbook layout from path, or the embedded
// default when path is empty.
func LoadReportTemplate(path string) (*sqlexcel.ReportTemplate, error) {
	var (
		tmpl *sqlexcel.ReportTemplate
		err  error
	)
	if path == "" {
		tmpl, err = sqlexcel.LoadTemplateFromString(defaultTemplate)
	} else {
		tmpl, err = sqlexcel.LoadTemplate(path)
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeValidation, "invalid report template", err)
	}
	for _, sheet := range tmpl.Sheets {
		if sheet.Report == "" {
			continue
		}
		if _, ok := repository.FindReport(sheet.Report); !ok {
			return nil, apperror.New(apperror.CodeValidation,
				fmt.Sprintf("report template sheet %q: unknown report %q", sheet.Name, sheet.Report))
		}
	}
	return tmpl, nil
}

// WorkbookWriter renders reports into xlsx workbooks laid out by a template.
type WorkbookWriter struct {
	db       sqlexcel.DB
	template *sqlexcel.ReportTemplate
}

func NewWorkbookWriter(db sqlexcel.DB, tmpl *sqlexcel.ReportTemplate) *WorkbookWriter {
	return &WorkbookWriter{db: db, template: tmpl}
}

// Write renders every template sheet. Sheets may name a report or carry raw SQL.
func (ww *WorkbookWriter) Write(ctx context.Context, w io.Writer) error {
	return ww.write(ctx, w, ww.template.Sheets)
}

// WriteFile renders every template sheet into path.
func (ww *WorkbookWriter) WriteFile(ctx context.Context, path string) error {
	exp, err := ww.exporter(ww.template.Sheets)
	if err != nil {
		return err
	}
	return exp.ExportToFile(ctx, path, ww.template.ExportOptions()...)
}

// WriteReport renders a single report as a one-sheet workbook. The sheet
// layout comes from the template when it lists the report.
func (ww *WorkbookWriter) WriteReport(ctx context.Context, w io.Writer, name string) error {
	sheet := sqlexcel.SheetTemplate{Name: sheetName(name), Report: name}
	for _, s := range ww.template.Sheets {
		if s.Report == name {
			sheet = s
			break
		}
	}
	return ww.write(ctx, w, []sqlexcel.SheetTemplate{sheet})
}

func (ww *WorkbookWriter) write(ctx context.Context, w io.Writer, sheets []sqlexcel.SheetTemplate) error {
	exp, err := ww.exporter(sheets)
	if err != nil {
		return err
	}
	return exp.Export(ctx, w, ww.template.ExportOptions()...)
}

func (ww *WorkbookWriter) exporter(sheets []sqlexcel.SheetTemplate) (*sqlexcel.Exporter, error) {
	exp := sqlexcel.NewExporter(ww.db)
	for i := range sheets {
		sheet := &sheets[i]
		query := sheet.Query
		opts := sheet.SheetOptions()
		if sheet.Report != "" {
			report, ok := repository.FindReport(sheet.Report)
			if !ok {
				return nil, apperror.New(apperror.CodeNotFound, fmt.Sprintf("report %s not found", sheet.Report))
			}
			query = report.Query
			opts = append(opts, sqlexcel.WithQueryArgs(report.Args...))
		}
		exp.AddSheet(query, sheet.Name, opts...)
	}
	return exp, nil
}

// sheetName trims a report name to the 31 characters a sheet title allows.
func sheetName(name string) string {
	r := []rune(name)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}
