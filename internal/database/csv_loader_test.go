package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/company_reporting/internal/apperror"
	"github.com/locvowork/company_reporting/internal/domain"
)

const rolesHeader = "id_cargo,descricao_cargo,salario_base,nivel_cargo,carga_horaria\n"

var rolesSource = Source{File: "cargos.csv", Table: TableRoles}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestSources(t *testing.T) {
	sources := Sources()
	require.Len(t, sources, 7)
	for _, src := range sources {
		_, ok := LookupTable(src.Table)
		assert.True(t, ok, src.Table)
	}
	assert.Equal(t, "funcionarios.csv", sources[0].File)
	assert.Equal(t, "recursos_do_projeto.csv", sources[6].File)
}

func TestCSVLoader_ValidateHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "exact", content: rolesHeader},
		{name: "reordered", content: "carga_horaria,nivel_cargo,salario_base,descricao_cargo,id_cargo\n"},
		{name: "bom and spaces", content: "\xEF\xBB\xBFid_cargo, descricao_cargo ,salario_base,nivel_cargo,carga_horaria\n"},
		{name: "missing column", content: "id_cargo,descricao_cargo,salario_base,nivel_cargo\n", wantErr: "missing required header column: carga_horaria"},
		{name: "unknown column", content: rolesHeader[:len(rolesHeader)-1] + ",bonus\n", wantErr: "unexpected header column: bonus"},
		{name: "duplicate column", content: "id_cargo,id_cargo,descricao_cargo,salario_base,nivel_cargo,carga_horaria\n", wantErr: "duplicate header column: id_cargo"},
		{name: "empty file", content: "", wantErr: "missing header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, rolesSource.File, tt.content)

			err := NewCSVLoader(nil, dir).ValidateHeader(rolesSource)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), rolesSource.File)
			assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
		})
	}
}

func TestCSVLoader_ValidateAllStopsAtFirstMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, rolesSource.File, "id_cargo\n")

	err := NewCSVLoader(nil, dir).ValidateAll([]Source{rolesSource, {File: "departamentos.csv", Table: TableDepartments}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cargos.csv")
}

func TestCSVLoader_Load(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()
	require.NoError(t, NewSchemaManager(db, DialectSQLite).Reset(ctx))

	dir := t.TempDir()
	writeFile(t, dir, rolesSource.File, "nivel_cargo,id_cargo,descricao_cargo,salario_base,carga_horaria\n"+
		"Pleno,1,\"Analista, dados\",4500.50,40\n"+
		"Sênior,2,Gerente,9000,44\n")

	loader := NewCSVLoader(db, dir)
	res, err := loader.Load(ctx, rolesSource)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	require.NoError(t, loader.Verify(ctx, res))

	var (
		desc  string
		base  float64
		level string
	)
	require.NoError(t, db.QueryRow(`SELECT descricao_cargo, salario_base, nivel_cargo FROM Cargos WHERE id_cargo = 1`).
		Scan(&desc, &base, &level))
	assert.Equal(t, "Analista, dados", desc)
	assert.InDelta(t, 4500.50, base, 0.001)
	assert.Equal(t, "Pleno", level)
}

func TestCSVLoader_EmptyCellIsNull(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()
	require.NoError(t, NewSchemaManager(db, DialectSQLite).Reset(ctx))

	dir := t.TempDir()
	src := Source{File: "projetos_desenvolvidos.csv", Table: TableProjects}
	writeFile(t, dir, src.File, "id_projeto,nome_projeto,descricao,data_inicio,data_conclusao,id_funcionario,custo_projeto,status\n"+
		"1,CRM,,2024-02-01,,2,7000,Em Execução\n")

	_, err := NewCSVLoader(db, dir).Load(ctx, src)
	require.NoError(t, err)

	var desc, end interface{}
	require.NoError(t, db.QueryRow(`SELECT descricao, data_conclusao FROM Projetos_desenvolvidos`).Scan(&desc, &end))
	assert.Nil(t, desc)
	assert.Nil(t, end)
}

func TestCSVLoader_RaggedRow(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()
	require.NoError(t, NewSchemaManager(db, DialectSQLite).Reset(ctx))

	dir := t.TempDir()
	writeFile(t, dir, rolesSource.File, rolesHeader+"1,Analista,4500,Pleno,40\n2,Gerente,9000\n")

	loader := NewCSVLoader(db, dir)
	res, err := loader.Load(ctx, rolesSource)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	// rows before the failure stay in place
	assert.Equal(t, 1, res.Rows)
	n, err := loader.CountRows(ctx, TableRoles)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCSVLoader_DuplicateKeyLeavesPartialTable(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()
	require.NoError(t, NewSchemaManager(db, DialectSQLite).Reset(ctx))

	dir := t.TempDir()
	writeFile(t, dir, rolesSource.File, rolesHeader+"1,Analista,4500,Pleno,40\n2,Gerente,9000,Sênior,44\n1,Diretor,20000,Sênior,44\n")

	loader := NewCSVLoader(db, dir)
	_, err := loader.Load(ctx, rolesSource)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert into Cargos")

	n, err := loader.CountRows(ctx, TableRoles)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCSVLoader_VerifyMismatch(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()
	require.NoError(t, NewSchemaManager(db, DialectSQLite).Reset(ctx))

	err := NewCSVLoader(db, t.TempDir()).Verify(ctx, domain.LoadResult{File: rolesSource.File, Table: rolesSource.Table, Rows: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 0 rows")
}
