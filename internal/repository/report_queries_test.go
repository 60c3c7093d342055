package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReports(t *testing.T) {
	reports := Reports()
	require.Len(t, reports, 5)

	names := []string{
		ReportAvgSalaryByDepartment,
		ReportTopMaterialResources,
		ReportCostByDepartment,
		ReportProjectsInProgress,
		ReportProjectMostDependents,
	}
	var exported []string
	for i, r := range reports {
		assert.Equal(t, names[i], r.Name)
		assert.NotEmpty(t, r.Label)
		if r.Export {
			exported = append(exported, r.Name)
		}
	}
	assert.Equal(t, []string{ReportTopMaterialResources, ReportCostByDepartment, ReportProjectsInProgress}, exported)
}

func TestReports_TopMaterialResourcesQuery(t *testing.T) {
	r, ok := FindReport(ReportTopMaterialResources)
	require.True(t, ok)
	assert.Equal(t,
		"SELECT descricao_recurso, SUM(quantidade_utilizada) AS total_utilizado FROM Recursos_do_projeto"+
			" WHERE tipo_recurso = $1 GROUP BY descricao_recurso"+
			" ORDER BY total_utilizado DESC, descricao_recurso ASC LIMIT 3",
		r.Query)
	assert.Equal(t, []interface{}{"Material"}, r.Args)
}

func TestReports_StatusBoundAsArgument(t *testing.T) {
	for _, name := range []string{ReportAvgSalaryByDepartment, ReportCostByDepartment} {
		r, ok := FindReport(name)
		require.True(t, ok)
		assert.Contains(t, r.Query, "p.status = $1")
		assert.Equal(t, []interface{}{"Concluído"}, r.Args)
	}

	r, _ := FindReport(ReportProjectsInProgress)
	assert.Equal(t, []interface{}{"Em Execução"}, r.Args)
}

func TestReports_MostDependentsQuery(t *testing.T) {
	r, ok := FindReport(ReportProjectMostDependents)
	require.True(t, ok)
	assert.Contains(t, r.Query, "INNER JOIN Dependentes dep ON f.id_funcionario = dep.id_funcionario")
	assert.Contains(t, r.Query, "ORDER BY num_dependentes DESC, p.id_projeto ASC LIMIT 1")
	assert.Empty(t, r.Args)
}

func TestFindReport_Unknown(t *testing.T) {
	_, ok := FindReport("inexistente")
	assert.False(t, ok)
}
