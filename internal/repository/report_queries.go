package repository

import (
	"github.com/locvowork/company_reporting/internal/domain"
	"github.com/locvowork/company_reporting/internal/repository/builder"
)

const (
	ReportAvgSalaryByDepartment = "media_salario_por_departamento"
	ReportTopMaterialResources  = "recursos_materiais_mais_utilizados"
	ReportCostByDepartment      = "custo_total_projetos_por_departamento"
	ReportProjectsInProgress    = "projetos_em_execucao"
	ReportProjectMostDependents = "projeto_com_mais_dependentes"
)

func buildReport(name, label string, export bool, b *builder.SQLBuilder) domain.Report {
	query, args := b.Build()
	return domain.Report{Name: name, Label: label, Query: query, Args: args, Export: export}
}

// Reports returns the five fixed reports in execution order.
//
// Ties are broken explicitly: resources by description, projects by id.
// Grouped reports are ordered by department name so every engine returns
// the same sequence.
func Reports() []domain.Report {
	completed := string(domain.StatusCompleted)

	return []domain.Report{
		// An employee owning several completed projects is averaged once per project.
		buildReport(ReportAvgSalaryByDepartment,
			"Média dos salários dos funcionários responsáveis por projetos concluídos, agrupados por departamento", false,
			builder.NewSQLBuilder().
				Select("d.nome_departamento", "AVG(f.salario_real) AS media_salario").
				From("Projetos_desenvolvidos p").
				Join("INNER", "Funcionarios f", "p.id_funcionario = f.id_funcionario").
				Join("INNER", "Departamentos d", "f.id_departamento = d.id_departamento").
				Where("p.status = ?", completed).
				GroupBy("d.nome_departamento").
				OrderBy("d.nome_departamento ASC")),

		buildReport(ReportTopMaterialResources,
			"Três recursos materiais mais usados nos projetos", true,
			builder.NewSQLBuilder().
				Select("descricao_recurso", "SUM(quantidade_utilizada) AS total_utilizado").
				From("Recursos_do_projeto").
				Where("tipo_recurso = ?", string(domain.ResourceMaterial)).
				GroupBy("descricao_recurso").
				OrderBy("total_utilizado DESC").
				OrderBy("descricao_recurso ASC").
				Limit(3)),

		buildReport(ReportCostByDepartment,
			"Custo total dos projetos concluídos por departamento", true,
			builder.NewSQLBuilder().
				Select("d.nome_departamento", "SUM(p.custo_projeto) AS custo_total").
				From("Projetos_desenvolvidos p").
				Join("INNER", "Funcionarios f", "p.id_funcionario = f.id_funcionario").
				Join("INNER", "Departamentos d", "f.id_departamento = d.id_departamento").
				Where("p.status = ?", completed).
				GroupBy("d.nome_departamento").
				OrderBy("d.nome_departamento ASC")),

		buildReport(ReportProjectsInProgress,
			"Projetos em Execução com Detalhes", true,
			builder.NewSQLBuilder().
				// dates are read back as stored, not parsed by the driver
				Select("p.nome_projeto", "p.custo_projeto",
					"CAST(p.data_inicio AS TEXT) AS data_inicio",
					"CAST(p.data_conclusao AS TEXT) AS data_conclusao",
					"f.nome_funcionario").
				From("Projetos_desenvolvidos p").
				Join("INNER", "Funcionarios f", "p.id_funcionario = f.id_funcionario").
				Where("p.status = ?", string(domain.StatusInProgress)).
				OrderBy("p.id_projeto ASC")),

		buildReport(ReportProjectMostDependents,
			"Projeto com o Maior Número de Dependentes", false,
			builder.NewSQLBuilder().
				Select("p.nome_projeto", "COUNT(dep.id_dependente) AS num_dependentes").
				From("Projetos_desenvolvidos p").
				Join("INNER", "Funcionarios f", "p.id_funcionario = f.id_funcionario").
				Join("INNER", "Dependentes dep", "f.id_funcionario = dep.id_funcionario").
				GroupBy("p.id_projeto", "p.nome_projeto").
				OrderBy("num_dependentes DESC").
				OrderBy("p.id_projeto ASC").
				Limit(1)),
	}
}

// FindReport looks a report up by name.
func FindReport(name string) (domain.Report, bool) {
	for _, r := range Reports() {
		if r.Name == name {
			return r, true
		}
	}
	return domain.Report{}, false
}
