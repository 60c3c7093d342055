package database

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"time"

	"github.com/locvowork/company_reporting/internal/domain"
	"github.com/locvowork/company_reporting/internal/logger"
)

// DataSeeder writes a referentially consistent set of the seven input CSV
// files. It never touches the database.
type DataSeeder struct {
	dir string
	rnd *rand.Rand
}

func NewDataSeeder(dir string, seed int64) *DataSeeder {
	return &DataSeeder{dir: dir, rnd: rand.New(rand.NewSource(seed))}
}

var (
	departmentNames = []string{"Engenharia", "Financeiro", "Marketing", "Recursos Humanos", "Vendas", "Operações", "Jurídico", "Tecnologia"}
	roleNames       = []string{"Analista", "Desenvolvedor", "Coordenador", "Gerente", "Assistente", "Diretor"}
	roleLevels      = []string{"Júnior", "Pleno", "Sênior"}
	firstNames      = []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Fábio", "Gabriela", "Heitor", "Isabela", "João", "Larissa", "Marcos", "Natália", "Otávio", "Paula", "Rafael"}
	lastNames       = []string{"Silva", "Souza", "Oliveira", "Santos", "Pereira", "Costa", "Almeida", "Ferreira", "Rodrigues", "Lima"}
	months          = []string{"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho", "Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"}
	relationships   = []string{"Filho(a)", "Cônjuge", "Pai", "Mãe"}
	projectNames    = []string{"Portal", "Migração", "Auditoria", "Campanha", "Automação", "Integração", "Modernização", "Treinamento"}
	resourceNames   = map[domain.ResourceType][]string{
		domain.ResourceFinancial: {"Verba de viagem", "Licenças de software", "Consultoria externa"},
		domain.ResourceMaterial:  {"Notebook", "Monitor", "Servidor", "Cadeira ergonômica", "Cabo de rede", "Papel A4"},
		domain.ResourceHuman:     {"Desenvolvedor alocado", "Designer", "Analista de testes"},
	}
)

// SeedPreset names a data volume.
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
	PresetXLarge SeedPreset = "xlarge"
)

// GetPresetConfig returns configuration for a preset
func GetPresetConfig(preset SeedPreset) (numDepartments, numEmployees, numProjects int) {
	switch preset {
	case PresetSmall:
		return 4, 20, 15
	case PresetMedium:
		return 6, 200, 150
	case PresetLarge:
		return 8, 1000, 800
	case PresetXLarge:
		return 8, 10000, 8000
	default:
		return 6, 200, 150
	}
}

// SeedData writes all seven files and returns the data rows written per file.
func (ds *DataSeeder) SeedData(ctx context.Context, numDepartments, numEmployees, numProjects int) ([]domain.LoadResult, error) {
	start := time.Now()

	if numDepartments > len(departmentNames) {
		numDepartments = len(departmentNames)
	}
	if numDepartments < 1 || numEmployees < 1 {
		return nil, fmt.Errorf("need at least one department and one employee")
	}
	if err := os.MkdirAll(ds.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", ds.dir, err)
	}

	roles := make([]domain.Role, len(roleNames))
	for i, name := range roleNames {
		roles[i] = domain.Role{
			ID:          i + 1,
			Description: name,
			BaseSalary:  float64(2000 + ds.rnd.Intn(14)*500),
			Level:       roleLevels[ds.rnd.Intn(len(roleLevels))],
			WeeklyHours: []int{20, 30, 40, 44}[ds.rnd.Intn(4)],
		}
	}

	var employees []domain.Employee
	var history []domain.SalaryHistory
	var dependents []domain.Dependent
	for id := 1; id <= numEmployees; id++ {
		role := ds.rnd.Intn(len(roles))
		dept := 1 + ds.rnd.Intn(numDepartments)
		salary := roles[role].BaseSalary * (0.9 + ds.rnd.Float64()*0.6)
		hired := time.Date(2010+ds.rnd.Intn(14), time.Month(1+ds.rnd.Intn(12)), 1+ds.rnd.Intn(28), 0, 0, 0, 0, time.UTC)
		employees = append(employees, domain.Employee{
			ID:           id,
			Name:         ds.personName(),
			RoleID:       &roles[role].ID,
			DepartmentID: &dept,
			Salary:       salary,
			HireDate:     hired.Format("2006-01-02"),
		})

		numMonths := 3 + ds.rnd.Intn(10)
		for m := 0; m < numMonths; m++ {
			history = append(history, domain.SalaryHistory{
				ID:         len(history) + 1,
				EmployeeID: id,
				Month:      months[m%len(months)],
				Year:       2023 + m/len(months),
				Salary:     salary * (0.95 + float64(m)*0.005),
			})
		}

		numDependents := ds.rnd.Intn(4)
		for d := 0; d < numDependents; d++ {
			dependents = append(dependents, domain.Dependent{
				ID:           len(dependents) + 1,
				EmployeeID:   id,
				Name:         ds.personName(),
				Age:          1 + ds.rnd.Intn(80),
				Relationship: relationships[ds.rnd.Intn(len(relationships))],
			})
		}
	}

	departments := make([]domain.Department, numDepartments)
	for i := range departments {
		manager := 1 + ds.rnd.Intn(numEmployees)
		departments[i] = domain.Department{
			ID:           i + 1,
			Name:         departmentNames[i],
			ManagerID:    &manager,
			Floor:        1 + ds.rnd.Intn(12),
			AnnualBudget: float64(100000 + ds.rnd.Intn(90)*10000),
		}
	}

	var projects []domain.Project
	var resources []domain.ProjectResource
	for id := 1; id <= numProjects; id++ {
		status := domain.ProjectStatuses[ds.rnd.Intn(len(domain.ProjectStatuses))]
		begin := time.Date(2021+ds.rnd.Intn(4), time.Month(1+ds.rnd.Intn(12)), 1+ds.rnd.Intn(28), 0, 0, 0, 0, time.UTC)
		end := ""
		if status == domain.StatusCompleted || status == domain.StatusCancelled {
			end = begin.AddDate(0, 1+ds.rnd.Intn(18), 0).Format("2006-01-02")
		}
		projects = append(projects, domain.Project{
			ID:          id,
			Name:        fmt.Sprintf("%s %d", projectNames[ds.rnd.Intn(len(projectNames))], id),
			Description: "Projeto " + strconv.Itoa(id),
			StartDate:   begin.Format("2006-01-02"),
			EndDate:     end,
			EmployeeID:  1 + ds.rnd.Intn(numEmployees),
			Cost:        float64(5000 + ds.rnd.Intn(200)*1000),
			Status:      status,
		})

		numResources := 1 + ds.rnd.Intn(4)
		for r := 0; r < numResources; r++ {
			kind := domain.ResourceTypes[ds.rnd.Intn(len(domain.ResourceTypes))]
			names := resourceNames[kind]
			resources = append(resources, domain.ProjectResource{
				ID:           len(resources) + 1,
				ProjectID:    id,
				Description:  names[ds.rnd.Intn(len(names))],
				Type:         kind,
				QuantityUsed: 1 + ds.rnd.Intn(50),
				DateUsed:     begin.AddDate(0, 0, ds.rnd.Intn(60)).Format("2006-01-02"),
			})
		}
	}

	data := map[string]interface{}{
		TableEmployees:        employees,
		TableRoles:            roles,
		TableDepartments:      departments,
		TableSalaryHistory:    history,
		TableDependents:       dependents,
		TableProjects:         projects,
		TableProjectResources: resources,
	}

	var results []domain.LoadResult
	for _, src := range Sources() {
		table, _ := LookupTable(src.Table)
		rows, err := entityRecords(data[src.Table], table.ColumnNames())
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", src.Table, err)
		}
		if err := writeCSV(filepath.Join(ds.dir, src.File), table.ColumnNames(), rows); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", src.File, err)
		}
		results = append(results, domain.LoadResult{File: src.File, Table: src.Table, Rows: len(rows)})
	}

	logger.InfoLog(ctx, "Seeded %d files into %s in %v", len(results), ds.dir, time.Since(start))
	return results, nil
}

// ClearData removes the seven CSV files. Missing files are skipped.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	removed := 0
	for _, src := range Sources() {
		err := os.Remove(filepath.Join(ds.dir, src.File))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to remove %s: %w", src.File, err)
		}
		removed++
	}
	logger.InfoLog(ctx, "Removed %d files from %s", removed, ds.dir)
	return nil
}

func (ds *DataSeeder) personName() string {
	return firstNames[ds.rnd.Intn(len(firstNames))] + " " + lastNames[ds.rnd.Intn(len(lastNames))]
}

// entityRecords turns a slice of entity structs into CSV records ordered by
// columns, matching fields on their db tag. Nil pointers become empty cells.
func entityRecords(items interface{}, columns []string) ([][]string, error) {
	v := reflect.ValueOf(items)
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("expected a slice, got %T", items)
	}
	var records [][]string
	for i := 0; i < v.Len(); i++ {
		item := reflect.Indirect(v.Index(i))
		fields := make(map[string]reflect.Value, item.NumField())
		for f := 0; f < item.NumField(); f++ {
			if tag := item.Type().Field(f).Tag.Get("db"); tag != "" {
				fields[tag] = item.Field(f)
			}
		}
		record := make([]string, len(columns))
		for c, col := range columns {
			fv, ok := fields[col]
			if !ok {
				return nil, fmt.Errorf("%s has no field for column %s", item.Type().Name(), col)
			}
			record[c] = formatField(fv)
		}
		records = append(records, record)
	}
	return records, nil
}

func formatField(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', 2, 64)
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprint(v.Interface())
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
