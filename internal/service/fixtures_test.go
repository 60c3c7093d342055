package service

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/locvowork/company_reporting/internal/database"
)

// fixtureFiles is a small company: Engenharia owns the completed projects,
// Bruno (RH) owns the project with the most dependents.
var fixtureFiles = map[string]string{
	"departamentos.csv": `id_departamento,nome_departamento,id_gerente,andar_localizacao,orcamento_anual
1,Engenharia,1,3,500000
2,RH,2,1,120000
3,Vendas,4,2,200000
`,
	"cargos.csv": `id_cargo,descricao_cargo,salario_base,nivel_cargo,carga_horaria
1,Desenvolvedor,6000,Pleno,40
2,Analista,4000,Junior,40
`,
	"funcionarios.csv": `id_funcionario,nome_funcionario,id_cargo,id_departamento,salario_real,data_admissao
1,Ana,1,1,8000,2020-01-01
2,Bruno,2,2,5000,2021-03-15
3,Carla,1,1,6000,2019-07-01
4,Davi,2,3,4000,2022-11-20
`,
	"historico_salarios.csv": `id_historico,id_funcionario,mes,ano,salario
1,1,Janeiro,2024,8000
2,2,Janeiro,2024,5000
3,3,Fevereiro,2024,6000
`,
	"dependentes.csv": `id_dependente,id_funcionario,nome_dependente,idade,parentesco
1,1,Lia,5,Filha
2,1,Rui,8,Filho
3,2,Eva,3,Filha
4,2,Gil,10,Filho
5,2,Ivo,40,Cônjuge
6,4,Noé,2,Filho
`,
	"projetos_desenvolvidos.csv": `id_projeto,nome_projeto,descricao,data_inicio,data_conclusao,id_funcionario,custo_projeto,status
1,Portal,Portal interno,2023-01-10,2023-06-30,1,10000,Concluído
2,App,"App móvel, v2",2023-02-01,2023-08-01,1,5000,Concluído
3,ERP,Migração,2023-03-01,2023-09-01,3,2000,Concluído
4,CRM,Novo CRM,2024-02-01,,2,7000,Em Execução
5,BI,Painéis,2024-05-01,,4,1000,Em Planejamento
6,Site,Site público,2024-03-01,2024-12-31,4,3000,Em Execução
`,
	"recursos_do_projeto.csv": `id_recurso,id_projeto,descricao_recurso,tipo_recurso,quantidade_utilizada,data_utilizacao
1,1,Notebook,Material,5,2023-01-15
2,2,Notebook,Material,3,2023-02-10
3,1,Servidor,Material,8,2023-01-20
4,4,Cabo,Material,2,2024-02-05
5,4,Licença,Material,1,2024-02-06
6,1,Consultoria,Humano,100,2023-03-01
7,3,Verba,Financeiro,50,2023-04-01
`,
}

func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	for name, content := range fixtureFiles {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

// writeFixturesWithCRMDates writes the fixtures with the CRM project dated
// in dd/mm/yyyy and given a completion timestamp.
func writeFixturesWithCRMDates(t *testing.T, dir string) {
	t.Helper()
	writeFixtures(t, dir)
	projects := strings.Replace(fixtureFiles["projetos_desenvolvidos.csv"],
		"4,CRM,Novo CRM,2024-02-01,,", "4,CRM,Novo CRM,01/02/2024,2024-02-01 10:30:00,", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "projetos_desenvolvidos.csv"), []byte(projects), 0o644))
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewDB(context.Background(), database.Config{
		Driver:       "sqlite3",
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
