package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/locvowork/company_reporting/internal/apperror"
	"github.com/locvowork/company_reporting/internal/domain"
	"github.com/locvowork/company_reporting/internal/logger"
	"github.com/locvowork/company_reporting/internal/repository/builder"
)

// Source pairs an input CSV file with its destination table.
type Source struct {
	File  string
	Table string
}

// Sources returns the seven inputs in load order.
func Sources() []Source {
	return []Source{
		{File: "funcionarios.csv", Table: TableEmployees},
		{File: "cargos.csv", Table: TableRoles},
		{File: "departamentos.csv", Table: TableDepartments},
		{File: "historico_salarios.csv", Table: TableSalaryHistory},
		{File: "dependentes.csv", Table: TableDependents},
		{File: "projetos_desenvolvidos.csv", Table: TableProjects},
		{File: "recursos_do_projeto.csv", Table: TableProjectResources},
	}
}

// CSVLoader appends CSV files into their tables.
type CSVLoader struct {
	db      DB
	dataDir string
}

func NewCSVLoader(db DB, dataDir string) *CSVLoader {
	return &CSVLoader{db: db, dataDir: dataDir}
}

// Path returns where the loader reads the source from.
func (l *CSVLoader) Path(src Source) string {
	return filepath.Join(l.dataDir, src.File)
}

// ValidateHeader reads only the header row of src and checks it against the
// table definition.
func (l *CSVLoader) ValidateHeader(src Source) error {
	table, ok := LookupTable(src.Table)
	if !ok {
		return apperror.New(apperror.CodeValidation, fmt.Sprintf("unknown table %s", src.Table))
	}

	r, closeFn, err := openCSV(l.Path(src))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src.File, err)
	}
	defer closeFn()

	header, err := readHeader(r)
	if err != nil {
		return apperror.Wrap(apperror.CodeValidation, fmt.Sprintf("%s: bad header", src.File), err)
	}
	if err := matchHeader(header, table.ColumnNames()); err != nil {
		return apperror.Wrap(apperror.CodeValidation, fmt.Sprintf("%s does not match table %s", src.File, src.Table), err)
	}
	return nil
}

// ValidateAll checks every header before anything is written.
func (l *CSVLoader) ValidateAll(sources []Source) error {
	for _, src := range sources {
		if err := l.ValidateHeader(src); err != nil {
			return err
		}
	}
	return nil
}

// Load appends every data row of src into its table. Rows are inserted one
// by one outside a transaction, so a failure leaves the rows before it in
// place. Empty cells become NULL; the engine types the remaining text.
func (l *CSVLoader) Load(ctx context.Context, src Source) (domain.LoadResult, error) {
	res := domain.LoadResult{File: src.File, Table: src.Table}

	table, ok := LookupTable(src.Table)
	if !ok {
		return res, apperror.New(apperror.CodeValidation, fmt.Sprintf("unknown table %s", src.Table))
	}

	r, closeFn, err := openCSV(l.Path(src))
	if err != nil {
		return res, fmt.Errorf("failed to open %s: %w", src.File, err)
	}
	defer closeFn()

	header, err := readHeader(r)
	if err != nil {
		return res, apperror.Wrap(apperror.CodeValidation, fmt.Sprintf("%s: bad header", src.File), err)
	}
	if err := matchHeader(header, table.ColumnNames()); err != nil {
		return res, apperror.Wrap(apperror.CodeValidation, fmt.Sprintf("%s does not match table %s", src.File, src.Table), err)
	}

	query, _, err := builder.NewSQLBuilder().
		Insert(src.Table, header...).
		Values(make([]interface{}, len(header))...).
		BuildSafe()
	if err != nil {
		return res, fmt.Errorf("failed to build insert into %s: %w", src.Table, err)
	}

	stmt, err := l.db.PrepareContext(ctx, query)
	if err != nil {
		return res, fmt.Errorf("failed to prepare insert into %s: %w", src.Table, err)
	}
	defer stmt.Close()

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("%s: %w", src.File, err)
		}
		line, _ := r.FieldPos(0)
		if len(record) != len(header) {
			return res, apperror.New(apperror.CodeValidation,
				fmt.Sprintf("%s line %d: expected %d fields, got %d", src.File, line, len(header), len(record)))
		}

		args := make([]interface{}, len(record))
		for i, v := range record {
			if v == "" {
				args[i] = nil
				continue
			}
			args[i] = v
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return res, fmt.Errorf("%s line %d: insert into %s: %w", src.File, line, src.Table, err)
		}
		res.Rows++
	}

	logger.InfoLog(ctx, "Loaded %d rows from %s into %s", res.Rows, src.File, src.Table)
	return res, nil
}

// CountRows returns the current row count of table.
func (l *CSVLoader) CountRows(ctx context.Context, table string) (int, error) {
	query, args := builder.NewSQLBuilder().Select("COUNT(*)").From(table).Build()

	var n int
	if err := l.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", table, err)
	}
	return n, nil
}

// Verify checks that the table holds exactly the rows loaded from its file.
func (l *CSVLoader) Verify(ctx context.Context, res domain.LoadResult) error {
	n, err := l.CountRows(ctx, res.Table)
	if err != nil {
		return err
	}
	if n != res.Rows {
		return fmt.Errorf("table %s has %d rows, %s had %d", res.Table, n, res.File, res.Rows)
	}
	return nil
}
