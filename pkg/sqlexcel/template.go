package sqlexcel

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// template.go - YAML workbook layout: sheet order, titles, headers and widths

// ReportTemplate represents the complete YAML template configuration
type ReportTemplate struct {
	Version     string          `yaml:"version"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Layout      *LayoutTemplate `yaml:"layout,omitempty"`
	Sheets      []SheetTemplate `yaml:"sheets"`
}

// LayoutTemplate controls options shared by every sheet
type LayoutTemplate struct {
	FreezeHeader   bool   `yaml:"freeze_header,omitempty"`
	AutoFilter     bool   `yaml:"auto_filter,omitempty"`
	MaxColWidth    int    `yaml:"max_column_width,omitempty"`
	DateFormat     string `yaml:"date_format,omitempty"`     // Go layout, e.g. 02/01/2006
	DateTimeFormat string `yaml:"datetime_format,omitempty"` // Go layout
	HeaderFill     string `yaml:"header_fill,omitempty"`     // hex color of the header row
	HeaderFont     string `yaml:"header_font_color,omitempty"`
}

// SheetTemplate represents a single sheet. Report names a query known to the
// caller; Query is raw SQL. Exactly one must be set.
type SheetTemplate struct {
	Name    string           `yaml:"name"`
	Report  string           `yaml:"report,omitempty"`
	Query   string           `yaml:"query,omitempty"`
	Columns []ColumnTemplate `yaml:"columns,omitempty"`
}

// ColumnTemplate defines column-specific configurations
type ColumnTemplate struct {
	Name   string  `yaml:"name"`             // result column name (required)
	Header string  `yaml:"header,omitempty"` // display header (defaults to Name)
	Width  float64 `yaml:"width,omitempty"`
}

// LoadTemplate loads a report template from a YAML file
func LoadTemplate(path string) (*ReportTemplate, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template file: %w", err)
	}
	defer file.Close()

	return LoadTemplateFromReader(file)
}

// LoadTemplateFromReader loads a template from an io.Reader
func LoadTemplateFromReader(r io.Reader) (*ReportTemplate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	var template ReportTemplate
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("parsing YAML template: %w", err)
	}
	if template.Version == "" {
		template.Version = "1.0"
	}

	if err := ValidateTemplate(&template); err != nil {
		return nil, fmt.Errorf("validating template: %w", err)
	}

	return &template, nil
}

// LoadTemplateFromString loads a template from a YAML string
func LoadTemplateFromString(yamlContent string) (*ReportTemplate, error) {
	return LoadTemplateFromReader(strings.NewReader(yamlContent))
}

// ValidateTemplate validates the template structure
func ValidateTemplate(t *ReportTemplate) error {
	if t == nil {
		return fmt.Errorf("template is nil")
	}

	if len(t.Sheets) == 0 {
		return fmt.Errorf("template must have at least one sheet")
	}

	names := make(map[string]bool)
	for i := range t.Sheets {
		if err := validateSheet(&t.Sheets[i], i); err != nil {
			return err
		}
		if names[t.Sheets[i].Name] {
			return fmt.Errorf("sheet[%d]: duplicate sheet name '%s'", i, t.Sheets[i].Name)
		}
		names[t.Sheets[i].Name] = true
	}

	return nil
}

func validateSheet(s *SheetTemplate, index int) error {
	if s.Name == "" {
		return fmt.Errorf("sheet[%d]: name is required", index)
	}
	if len([]rune(s.Name)) > 31 || strings.ContainsAny(s.Name, `[]:*?/\`) {
		return fmt.Errorf("sheet[%d] '%s': invalid Excel sheet name", index, s.Name)
	}

	if s.Query == "" && s.Report == "" {
		return fmt.Errorf("sheet[%d] '%s': either report or query is required", index, s.Name)
	}
	if s.Query != "" && s.Report != "" {
		return fmt.Errorf("sheet[%d] '%s': cannot specify both report and query", index, s.Name)
	}

	colNames := make(map[string]bool)
	for j, col := range s.Columns {
		if col.Name == "" {
			return fmt.Errorf("sheet[%d] '%s' column[%d]: name is required", index, s.Name, j)
		}
		if colNames[col.Name] {
			return fmt.Errorf("sheet[%d] '%s': duplicate column name '%s'", index, s.Name, col.Name)
		}
		colNames[col.Name] = true
	}

	return nil
}

// ExportOptions translates the layout block into export options.
func (t *ReportTemplate) ExportOptions() []ExportOption {
	if t.Layout == nil {
		return nil
	}
	var opts []ExportOption
	if t.Layout.FreezeHeader {
		opts = append(opts, WithFreezePanes())
	}
	if t.Layout.AutoFilter {
		opts = append(opts, WithAutoFilter())
	}
	if t.Layout.MaxColWidth > 0 {
		opts = append(opts, WithMaxColumnWidth(t.Layout.MaxColWidth))
	}
	if t.Layout.DateFormat != "" || t.Layout.DateTimeFormat != "" {
		opts = append(opts, WithDateFormat(t.Layout.DateFormat, t.Layout.DateTimeFormat))
	}
	if t.Layout.HeaderFill != "" || t.Layout.HeaderFont != "" {
		style := DefaultHeaderStyle()
		if t.Layout.HeaderFill != "" {
			style.FillColor = t.Layout.HeaderFill
		}
		if t.Layout.HeaderFont != "" {
			style.FontColor = t.Layout.HeaderFont
		}
		opts = append(opts, WithHeaderStyle(style))
	}
	return opts
}

// SheetOptions translates column headers and widths into sheet options.
func (s *SheetTemplate) SheetOptions() []SheetOption {
	var opts []SheetOption
	for _, col := range s.Columns {
		if col.Header != "" {
			opts = append(opts, WithColumnHeader(col.Name, col.Header))
		}
		if col.Width > 0 {
			opts = append(opts, WithColumnWidth(col.Name, col.Width))
		}
	}
	return opts
}
