package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), Config{Driver: "sqlite3", Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestConfig_DSN(t *testing.T) {
	dsn, err := Config{Path: "empresa.db"}.DSN()
	require.NoError(t, err)
	assert.Equal(t, "empresa.db", dsn)

	dsn, err = Config{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", DBName: "empresa", SSLMode: "disable"}.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=empresa sslmode=disable", dsn)

	_, err = Config{Driver: "mysql"}.DSN()
	assert.Error(t, err)

	_, err = Config{Driver: "sqlite3"}.DSN()
	assert.Error(t, err)
}

func TestTables(t *testing.T) {
	tables := Tables()
	require.Len(t, tables, 7)
	assert.Equal(t, TableEmployees, tables[0].Name)
	assert.Equal(t, TableProjectResources, tables[6].Name)

	projects, ok := LookupTable(TableProjects)
	require.True(t, ok)
	ddl := projects.CreateSQL()
	assert.Contains(t, ddl, "CHECK(status IN ('Em Planejamento', 'Em Execução', 'Concluído', 'Cancelado'))")
	assert.Contains(t, ddl, "FOREIGN KEY (id_funcionario) REFERENCES Funcionarios(id_funcionario)")

	_, ok = LookupTable("Nope")
	assert.False(t, ok)
}

func TestSchemaManager_Reset(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()
	m := NewSchemaManager(db, DialectSQLite)

	require.NoError(t, m.Reset(ctx))
	_, err := db.Exec(`INSERT INTO Cargos VALUES (1, 'Analista', 3000, 'Pleno', 40)`)
	require.NoError(t, err)

	// a second reset leaves every table empty
	require.NoError(t, m.Reset(ctx))
	for _, tbl := range Tables() {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+tbl.Name).Scan(&n))
		assert.Zero(t, n, tbl.Name)
	}
}

func TestSchemaManager_CheckConstraint(t *testing.T) {
	db := openMemoryDB(t)
	require.NoError(t, NewSchemaManager(db, DialectSQLite).Reset(context.Background()))

	_, err := db.Exec(`INSERT INTO Projetos_desenvolvidos (id_projeto, nome_projeto, status) VALUES (1, 'X', 'Pausado')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO Recursos_do_projeto (id_recurso, tipo_recurso) VALUES (1, 'Material')`)
	assert.NoError(t, err)
}

func TestSchemaManager_PostgresDropCascade(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DROP TABLE IF EXISTS Funcionarios CASCADE").WillReturnResult(sqlmock.NewResult(0, 0))

	m := NewSchemaManager(db, DialectPostgres)
	require.NoError(t, m.DropTable(context.Background(), TableEmployees))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaManager_CreateFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range Tables() {
		mock.ExpectExec("DROP TABLE IF EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec("CREATE TABLE Funcionarios").WillReturnError(errors.New("disk full"))

	err = NewSchemaManager(db, DialectSQLite).Reset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create table Funcionarios")
	require.NoError(t, mock.ExpectationsWereMet())
}
