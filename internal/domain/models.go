package domain

// ==================== ENUMS ====================

// ProjectStatus is the stored value of Projetos_desenvolvidos.status.
type ProjectStatus string

const (
	StatusPlanning   ProjectStatus = "Em Planejamento"
	StatusInProgress ProjectStatus = "Em Execução"
	StatusCompleted  ProjectStatus = "Concluído"
	StatusCancelled  ProjectStatus = "Cancelado"
)

// ProjectStatuses lists every accepted status in declaration order.
var ProjectStatuses = []ProjectStatus{StatusPlanning, StatusInProgress, StatusCompleted, StatusCancelled}

// ResourceType is the stored value of Recursos_do_projeto.tipo_recurso.
type ResourceType string

const (
	ResourceFinancial ResourceType = "Financeiro"
	ResourceMaterial  ResourceType = "Material"
	ResourceHuman     ResourceType = "Humano"
)

var ResourceTypes = []ResourceType{ResourceFinancial, ResourceMaterial, ResourceHuman}

// ==================== ENTITIES ====================

// Employee represents the Funcionarios table
type Employee struct {
	ID           int     `json:"id_funcionario" db:"id_funcionario"`
	Name         string  `json:"nome_funcionario" db:"nome_funcionario"`
	RoleID       *int    `json:"id_cargo" db:"id_cargo"`
	DepartmentID *int    `json:"id_departamento" db:"id_departamento"`
	Salary       float64 `json:"salario_real" db:"salario_real"`
	HireDate     string  `json:"data_admissao" db:"data_admissao"`
}

// Role represents the Cargos table
type Role struct {
	ID          int     `json:"id_cargo" db:"id_cargo"`
	Description string  `json:"descricao_cargo" db:"descricao_cargo"`
	BaseSalary  float64 `json:"salario_base" db:"salario_base"`
	Level       string  `json:"nivel_cargo" db:"nivel_cargo"`
	WeeklyHours int     `json:"carga_horaria" db:"carga_horaria"`
}

// Department represents the Departamentos table
type Department struct {
	ID           int     `json:"id_departamento" db:"id_departamento"`
	Name         string  `json:"nome_departamento" db:"nome_departamento"`
	ManagerID    *int    `json:"id_gerente" db:"id_gerente"`
	Floor        int     `json:"andar_localizacao" db:"andar_localizacao"`
	AnnualBudget float64 `json:"orcamento_anual" db:"orcamento_anual"`
}

// SalaryHistory represents the Historico_salarios table
type SalaryHistory struct {
	ID         int     `json:"id_historico" db:"id_historico"`
	EmployeeID int     `json:"id_funcionario" db:"id_funcionario"`
	Month      string  `json:"mes" db:"mes"`
	Year       int     `json:"ano" db:"ano"`
	Salary     float64 `json:"salario" db:"salario"`
}

// Dependent represents the Dependentes table
type Dependent struct {
	ID           int    `json:"id_dependente" db:"id_dependente"`
	EmployeeID   int    `json:"id_funcionario" db:"id_funcionario"`
	Name         string `json:"nome_dependente" db:"nome_dependente"`
	Age          int    `json:"idade" db:"idade"`
	Relationship string `json:"parentesco" db:"parentesco"`
}

// Project represents the Projetos_desenvolvidos table
type Project struct {
	ID          int           `json:"id_projeto" db:"id_projeto"`
	Name        string        `json:"nome_projeto" db:"nome_projeto"`
	Description string        `json:"descricao" db:"descricao"`
	StartDate   string        `json:"data_inicio" db:"data_inicio"`
	EndDate     string        `json:"data_conclusao" db:"data_conclusao"`
	EmployeeID  int           `json:"id_funcionario" db:"id_funcionario"`
	Cost        float64       `json:"custo_projeto" db:"custo_projeto"`
	Status      ProjectStatus `json:"status" db:"status"`
}

// ProjectResource represents the Recursos_do_projeto table
type ProjectResource struct {
	ID           int          `json:"id_recurso" db:"id_recurso"`
	ProjectID    int          `json:"id_projeto" db:"id_projeto"`
	Description  string       `json:"descricao_recurso" db:"descricao_recurso"`
	Type         ResourceType `json:"tipo_recurso" db:"tipo_recurso"`
	QuantityUsed int          `json:"quantidade_utilizada" db:"quantidade_utilizada"`
	DateUsed     string       `json:"data_utilizacao" db:"data_utilizacao"`
}

// ==================== REPORTING ====================

// ResultSet is a materialized query result. Columns keep the order of the
// SELECT list; each row holds one normalized value per column.
type ResultSet struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"-"`
}

// Records returns the rows as column-name keyed maps.
func (rs *ResultSet) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		rec := make(map[string]interface{}, len(rs.Columns))
		for i, col := range rs.Columns {
			rec[col] = row[i]
		}
		out = append(out, rec)
	}
	return out
}

// Column returns the values of the named column, or nil when absent.
func (rs *ResultSet) Column(name string) []interface{} {
	idx := -1
	for i, c := range rs.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	vals := make([]interface{}, len(rs.Rows))
	for i, row := range rs.Rows {
		vals[i] = row[idx]
	}
	return vals
}

// LoadResult describes one CSV file appended into its table.
type LoadResult struct {
	File  string `json:"file"`
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}
