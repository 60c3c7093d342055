package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/locvowork/company_reporting/internal/domain"
	"github.com/locvowork/company_reporting/internal/logger"
)

const (
	TableEmployees        = "Funcionarios"
	TableRoles            = "Cargos"
	TableDepartments      = "Departamentos"
	TableSalaryHistory    = "Historico_salarios"
	TableDependents       = "Dependentes"
	TableProjects         = "Projetos_desenvolvidos"
	TableProjectResources = "Recursos_do_projeto"
)

// ColumnDef is one column of a table definition.
type ColumnDef struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
	// OneOf restricts the column to a fixed set of values via CHECK.
	OneOf []string
}

// ForeignKey is a declared, unenforced reference.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// TableDef describes one of the fixed tables.
type TableDef struct {
	Name        string
	Columns     []ColumnDef
	ForeignKeys []ForeignKey
}

// ColumnNames returns the column names in declaration order.
func (t TableDef) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// CreateSQL renders the CREATE TABLE statement.
func (t TableDef) CreateSQL() string {
	parts := make([]string, 0, len(t.Columns)+len(t.ForeignKeys))
	for _, c := range t.Columns {
		var sb strings.Builder
		sb.WriteString(c.Name)
		sb.WriteString(" ")
		sb.WriteString(c.Type)
		if c.PrimaryKey {
			sb.WriteString(" PRIMARY KEY")
		}
		if c.NotNull {
			sb.WriteString(" NOT NULL")
		}
		if len(c.OneOf) > 0 {
			quoted := make([]string, len(c.OneOf))
			for i, v := range c.OneOf {
				quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
			}
			sb.WriteString(fmt.Sprintf(" CHECK(%s IN (%s))", c.Name, strings.Join(quoted, ", ")))
		}
		parts = append(parts, sb.String())
	}
	for _, fk := range t.ForeignKeys {
		parts = append(parts, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)", fk.Column, fk.RefTable, fk.RefColumn))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", t.Name, strings.Join(parts, ",\n\t"))
}

func enumValues[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// Tables returns the seven table definitions in creation order. Referenced
// tables come before the tables that reference them.
func Tables() []TableDef {
	return []TableDef{
		{
			Name: TableEmployees,
			Columns: []ColumnDef{
				{Name: "id_funcionario", Type: "INTEGER", PrimaryKey: true},
				{Name: "nome_funcionario", Type: "TEXT", NotNull: true},
				{Name: "id_cargo", Type: "INTEGER"},
				{Name: "id_departamento", Type: "INTEGER"},
				{Name: "salario_real", Type: "REAL", NotNull: true},
				{Name: "data_admissao", Type: "DATE", NotNull: true},
			},
		},
		{
			Name: TableRoles,
			Columns: []ColumnDef{
				{Name: "id_cargo", Type: "INTEGER", PrimaryKey: true},
				{Name: "descricao_cargo", Type: "TEXT", NotNull: true},
				{Name: "salario_base", Type: "REAL", NotNull: true},
				{Name: "nivel_cargo", Type: "TEXT", NotNull: true},
				{Name: "carga_horaria", Type: "INTEGER", NotNull: true},
			},
		},
		{
			Name: TableDepartments,
			Columns: []ColumnDef{
				{Name: "id_departamento", Type: "INTEGER", PrimaryKey: true},
				{Name: "nome_departamento", Type: "TEXT", NotNull: true},
				{Name: "id_gerente", Type: "INTEGER"},
				{Name: "andar_localizacao", Type: "INTEGER", NotNull: true},
				{Name: "orcamento_anual", Type: "REAL", NotNull: true},
			},
		},
		{
			Name: TableSalaryHistory,
			Columns: []ColumnDef{
				{Name: "id_historico", Type: "INTEGER", PrimaryKey: true},
				{Name: "id_funcionario", Type: "INTEGER"},
				{Name: "mes", Type: "TEXT"},
				{Name: "ano", Type: "INTEGER"},
				{Name: "salario", Type: "REAL"},
			},
		},
		{
			Name: TableDependents,
			Columns: []ColumnDef{
				{Name: "id_dependente", Type: "INTEGER", PrimaryKey: true},
				{Name: "id_funcionario", Type: "INTEGER"},
				{Name: "nome_dependente", Type: "TEXT"},
				{Name: "idade", Type: "INTEGER"},
				{Name: "parentesco", Type: "TEXT"},
			},
		},
		{
			Name: TableProjects,
			Columns: []ColumnDef{
				{Name: "id_projeto", Type: "INTEGER", PrimaryKey: true},
				{Name: "nome_projeto", Type: "TEXT", NotNull: true},
				{Name: "descricao", Type: "TEXT"},
				{Name: "data_inicio", Type: "DATE"},
				{Name: "data_conclusao", Type: "DATE"},
				{Name: "id_funcionario", Type: "INTEGER"},
				{Name: "custo_projeto", Type: "REAL"},
				{Name: "status", Type: "TEXT", OneOf: enumValues(domain.ProjectStatuses)},
			},
			ForeignKeys: []ForeignKey{
				{Column: "id_funcionario", RefTable: TableEmployees, RefColumn: "id_funcionario"},
			},
		},
		{
			Name: TableProjectResources,
			Columns: []ColumnDef{
				{Name: "id_recurso", Type: "INTEGER", PrimaryKey: true},
				{Name: "id_projeto", Type: "INTEGER"},
				{Name: "descricao_recurso", Type: "TEXT"},
				{Name: "tipo_recurso", Type: "TEXT", OneOf: enumValues(domain.ResourceTypes)},
				{Name: "quantidade_utilizada", Type: "INTEGER"},
				{Name: "data_utilizacao", Type: "DATE"},
			},
			ForeignKeys: []ForeignKey{
				{Column: "id_projeto", RefTable: TableProjects, RefColumn: "id_projeto"},
			},
		},
	}
}

// LookupTable returns the definition of the named table.
func LookupTable(name string) (TableDef, bool) {
	for _, t := range Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return TableDef{}, false
}

// SchemaManager drops and recreates the fixed tables.
type SchemaManager struct {
	db      DB
	dialect Dialect
}

func NewSchemaManager(db DB, dialect Dialect) *SchemaManager {
	return &SchemaManager{db: db, dialect: dialect}
}

// Reset leaves every table present and empty. Tables are dropped in reverse
// creation order so referencing tables go first.
func (m *SchemaManager) Reset(ctx context.Context) error {
	tables := Tables()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := m.DropTable(ctx, tables[i].Name); err != nil {
			return err
		}
	}
	for _, t := range tables {
		if err := m.CreateTable(ctx, t); err != nil {
			return err
		}
	}
	logger.InfoLog(ctx, "Schema reset: %d tables recreated", len(tables))
	return nil
}

// DropTable removes the table if it exists.
func (m *SchemaManager) DropTable(ctx context.Context, name string) error {
	stmt := "DROP TABLE IF EXISTS " + name
	if m.dialect == DialectPostgres {
		stmt += " CASCADE"
	}
	if _, err := m.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	return nil
}

// CreateTable creates the table from its definition.
func (m *SchemaManager) CreateTable(ctx context.Context, t TableDef) error {
	if _, err := m.db.ExecContext(ctx, t.CreateSQL()); err != nil {
		return fmt.Errorf("failed to create table %s: %w", t.Name, err)
	}
	logger.DebugLog(ctx, "Created table %s", t.Name)
	return nil
}
