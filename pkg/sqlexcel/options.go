package sqlexcel

// Export-level options

// WithHeaderStyle sets a custom style for header row
func WithHeaderStyle(style *CellStyle) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.HeaderStyle = style
		return nil
	}
}

// WithDateFormat sets the layouts used for date-only and date-time values
func WithDateFormat(date, dateTime string) ExportOption {
	return func(cfg *ExportConfig) error {
		if date != "" {
			cfg.DateFormat = date
		}
		if dateTime != "" {
			cfg.DateTimeFormat = dateTime
		}
		return nil
	}
}

// WithAutoFilter enables auto-filter on the header row
func WithAutoFilter() ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.AutoFilter = true
		return nil
	}
}

// WithFreezePanes freezes the header row
func WithFreezePanes() ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.FreezeHeader = true
		return nil
	}
}

// WithMaxColumnWidth sets the maximum column width
func WithMaxColumnWidth(width int) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.MaxColumnWidth = width
		return nil
	}
}

// WithHeaders enables or disables header row (default: enabled)
func WithHeaders(include bool) ExportOption {
	return func(cfg *ExportConfig) error {
		cfg.IncludeHeaders = include
		return nil
	}
}

// Sheet-level options

// WithQueryArgs sets the query arguments for this sheet
func WithQueryArgs(args ...interface{}) SheetOption {
	return func(cfg *SheetConfig) error {
		cfg.Args = args
		return nil
	}
}

// WithColumnHeader replaces the header text of a result column
func WithColumnHeader(column, header string) SheetOption {
	return func(cfg *SheetConfig) error {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		cfg.Headers[column] = header
		return nil
	}
}

// WithColumnWidth fixes the width of a result column
func WithColumnWidth(column string, width float64) SheetOption {
	return func(cfg *SheetConfig) error {
		if cfg.Widths == nil {
			cfg.Widths = make(map[string]float64)
		}
		cfg.Widths[column] = width
		return nil
	}
}
