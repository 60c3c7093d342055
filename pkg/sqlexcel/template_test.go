package sqlexcel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadTemplateFromString(t *testing.T) {
	yamlContent := `
version: "1.0"
name: "Monthly"
layout:
  freeze_header: true
  max_column_width: 40
sheets:
  - name: "Custos"
    report: "custo_total_projetos_por_departamento"
    columns:
      - name: "nome_departamento"
        header: "Departamento"
        width: 30
`

	tmpl, err := LoadTemplateFromString(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load template: %v", err)
	}

	if tmpl.Name != "Monthly" {
		t.Errorf("Expected name 'Monthly', got %s", tmpl.Name)
	}
	if len(tmpl.Sheets) != 1 {
		t.Fatalf("Expected 1 sheet, got %d", len(tmpl.Sheets))
	}
	sheet := tmpl.Sheets[0]
	if sheet.Report != "custo_total_projetos_por_departamento" {
		t.Errorf("unexpected report %q", sheet.Report)
	}
	if len(sheet.SheetOptions()) != 2 {
		t.Errorf("Expected header and width options, got %d", len(sheet.SheetOptions()))
	}
	if len(tmpl.ExportOptions()) != 2 {
		t.Errorf("Expected freeze and width options, got %d", len(tmpl.ExportOptions()))
	}
}

func TestTemplateLayoutFormats(t *testing.T) {
	tmpl, err := LoadTemplateFromString(`
layout:
  date_format: "02/01/2006"
  header_fill: "#1F4E78"
sheets:
  - name: A
    query: SELECT 1
`)
	if err != nil {
		t.Fatalf("Failed to load template: %v", err)
	}

	opts := tmpl.ExportOptions()
	if len(opts) != 2 {
		t.Fatalf("Expected date and header options, got %d", len(opts))
	}
	cfg := NewExporter(nil).config
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			t.Fatal(err)
		}
	}
	if cfg.DateFormat != "02/01/2006" {
		t.Errorf("unexpected date format %q", cfg.DateFormat)
	}
	if cfg.DateTimeFormat != "2006-01-02 15:04:05" {
		t.Errorf("date-time format should keep its default, got %q", cfg.DateTimeFormat)
	}
	if cfg.HeaderStyle.FillColor != "#1F4E78" || cfg.HeaderStyle.FontColor != "#FFFFFF" {
		t.Errorf("unexpected header style %+v", cfg.HeaderStyle)
	}
}

func TestLoadTemplateDefaultsVersion(t *testing.T) {
	tmpl, err := LoadTemplateFromString("sheets:\n  - name: A\n    query: SELECT 1\n")
	if err != nil {
		t.Fatalf("Failed to load template: %v", err)
	}
	if tmpl.Version != "1.0" {
		t.Errorf("Expected default version 1.0, got %s", tmpl.Version)
	}
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		errorMsg string
	}{
		{
			name:     "empty template",
			yaml:     `{}`,
			errorMsg: "at least one sheet",
		},
		{
			name: "missing sheet name",
			yaml: `
sheets:
  - query: "SELECT 1"
`,
			errorMsg: "name is required",
		},
		{
			name: "missing report and query",
			yaml: `
sheets:
  - name: "Sheet1"
`,
			errorMsg: "either report or query",
		},
		{
			name: "both report and query",
			yaml: `
sheets:
  - name: "Sheet1"
    report: "x"
    query: "SELECT 1"
`,
			errorMsg: "cannot specify both",
		},
		{
			name: "invalid sheet name",
			yaml: `
sheets:
  - name: "a/b"
    query: "SELECT 1"
`,
			errorMsg: "invalid Excel sheet name",
		},
		{
			name: "duplicate sheet",
			yaml: `
sheets:
  - name: "A"
    query: "SELECT 1"
  - name: "A"
    query: "SELECT 2"
`,
			errorMsg: "duplicate sheet name",
		},
		{
			name: "duplicate column",
			yaml: `
sheets:
  - name: "A"
    query: "SELECT 1"
    columns:
      - name: "x"
      - name: "x"
`,
			errorMsg: "duplicate column name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTemplateFromString(tt.yaml)
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestLoadTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := os.WriteFile(path, []byte("sheets:\n  - name: A\n    query: SELECT 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTemplate(path); err != nil {
		t.Fatalf("Failed to load template: %v", err)
	}

	if _, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
