package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/locvowork/company_reporting/internal/apperror"
	"github.com/locvowork/company_reporting/internal/database"
	"github.com/locvowork/company_reporting/internal/domain"
	"github.com/locvowork/company_reporting/internal/export"
	"github.com/locvowork/company_reporting/internal/logger"
	"github.com/locvowork/company_reporting/internal/repository"
)

// Options configures a ReportService.
type Options struct {
	DataDir   string
	OutputDir string
	// XLSXPath enables the workbook export when set.
	XLSXPath string
	// Workbook renders XLSXPath; required only when XLSXPath is set.
	Workbook *WorkbookWriter
	// Out receives report tables and export messages. Defaults to stdout.
	Out io.Writer
}

// ReportService runs the load, report and export pipeline.
type ReportService struct {
	schema   *database.SchemaManager
	loader   *database.CSVLoader
	repo     domain.ReportRepository
	exporter *export.JSONExporter
	workbook *WorkbookWriter
	xlsxPath string
	out      io.Writer
}

// NewReportService creates a new ReportService instance
func NewReportService(db database.DB, dialect database.Dialect, opts Options) *ReportService {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &ReportService{
		schema:   database.NewSchemaManager(db, dialect),
		loader:   database.NewCSVLoader(db, opts.DataDir),
		repo:     repository.NewReportRepository(db),
		exporter: export.NewJSONExporter(opts.OutputDir),
		workbook: opts.Workbook,
		xlsxPath: opts.XLSXPath,
		out:      out,
	}
}

// Run executes the whole pipeline. Export failures are reported and skipped;
// every other failure stops the run.
func (s *ReportService) Run(ctx context.Context) error {
	start := time.Now()

	if _, err := s.LoadAll(ctx); err != nil {
		return err
	}

	for _, report := range repository.Reports() {
		rs, err := s.RunReport(ctx, report)
		if err != nil {
			return err
		}
		if report.Export {
			s.ExportJSON(ctx, report, rs)
		}
	}

	if s.xlsxPath != "" && s.workbook != nil {
		s.ExportWorkbook(ctx)
	}

	logger.InfoLog(ctx, "Pipeline finished in %s", time.Since(start))
	return nil
}

// LoadAll validates every CSV header, rebuilds the schema and loads the
// seven files in order, verifying each table's row count.
func (s *ReportService) LoadAll(ctx context.Context) ([]domain.LoadResult, error) {
	sources := database.Sources()

	// Nothing is dropped until every header matches.
	if err := s.loader.ValidateAll(sources); err != nil {
		return nil, err
	}
	if err := s.schema.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset schema: %w", err)
	}

	results := make([]domain.LoadResult, 0, len(sources))
	for _, src := range sources {
		res, err := s.loader.Load(ctx, src)
		if err != nil {
			return results, fmt.Errorf("failed to load %s: %w", src.File, err)
		}
		if err := s.loader.Verify(ctx, res); err != nil {
			return results, fmt.Errorf("failed to verify %s: %w", src.File, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// RunReport executes report and prints its label and table.
func (s *ReportService) RunReport(ctx context.Context, report domain.Report) (*domain.ResultSet, error) {
	rs, err := s.repo.Run(ctx, report)
	if err != nil {
		return nil, err
	}
	logger.DebugLog(ctx, "Report %s returned %d rows", report.Name, len(rs.Rows))

	fmt.Fprintf(s.out, "\n%s:\n", report.Label)
	if err := export.WriteTable(s.out, rs); err != nil {
		return nil, fmt.Errorf("failed to print report %s: %w", report.Name, err)
	}
	return rs, nil
}

// ExportJSON writes rs as NDJSON and prints the outcome. It reports whether
// the file was written.
func (s *ReportService) ExportJSON(ctx context.Context, report domain.Report, rs *domain.ResultSet) bool {
	path, err := s.exporter.Export(report.Name, rs)
	file := filepath.Base(path)
	if err != nil {
		logger.WarnLog(ctx, "JSON export of %s failed: %v", file, err)
		fmt.Fprintf(s.out, "Erro ao criar '%s': %v\n", file, err)
		return false
	}
	fmt.Fprintf(s.out, "Arquivo '%s' criado com sucesso.\n", file)
	return true
}

// ExportWorkbook writes the workbook to the configured path and prints the outcome.
func (s *ReportService) ExportWorkbook(ctx context.Context) bool {
	file := filepath.Base(s.xlsxPath)
	if dir := filepath.Dir(s.xlsxPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.WarnLog(ctx, "Workbook export of %s failed: %v", file, err)
			fmt.Fprintf(s.out, "Erro ao criar '%s': %v\n", file, err)
			return false
		}
	}
	if err := s.workbook.WriteFile(ctx, s.xlsxPath); err != nil {
		logger.WarnLog(ctx, "Workbook export of %s failed: %v", file, err)
		fmt.Fprintf(s.out, "Erro ao criar '%s': %v\n", file, err)
		return false
	}
	fmt.Fprintf(s.out, "Arquivo '%s' criado com sucesso.\n", file)
	return true
}

// Reports lists the available reports in execution order.
func (s *ReportService) Reports() []domain.Report {
	return repository.Reports()
}

// Fetch runs the named report without printing it.
func (s *ReportService) Fetch(ctx context.Context, name string) (domain.Report, *domain.ResultSet, error) {
	report, ok := repository.FindReport(name)
	if !ok {
		return domain.Report{}, nil, apperror.New(apperror.CodeNotFound, fmt.Sprintf("report %s not found", name))
	}
	rs, err := s.repo.Run(ctx, report)
	if err != nil {
		return report, nil, err
	}
	return report, rs, nil
}
