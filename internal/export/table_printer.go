package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/locvowork/company_reporting/internal/domain"
)

const emptyMarker = "(empty)"

// WriteTable renders rs as a tab-aligned table: a header line followed by one
// line per row. NULL values print as NULL.
func WriteTable(w io.Writer, rs *domain.ResultSet) error {
	if len(rs.Rows) == 0 {
		_, err := fmt.Fprintln(w, emptyMarker)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(rs.Columns, "\t"))
	for _, row := range rs.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		// tabs and newlines would break the alignment
		return strings.NewReplacer("\t", " ", "\n", " ").Replace(val)
	default:
		return fmt.Sprint(val)
	}
}
