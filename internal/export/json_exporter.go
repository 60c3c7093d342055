package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/locvowork/company_reporting/internal/domain"
)

// JSONExporter writes result sets as newline-delimited JSON files into dir.
type JSONExporter struct {
	dir string
}

func NewJSONExporter(dir string) *JSONExporter {
	return &JSONExporter{dir: dir}
}

// Path returns the file a report named name is written to.
func (e *JSONExporter) Path(name string) string {
	return filepath.Join(e.dir, name+".json")
}

// Export writes rs to <dir>/<name>.json, creating dir when missing.
func (e *JSONExporter) Export(name string, rs *domain.ResultSet) (string, error) {
	path := e.Path(name)
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return path, fmt.Errorf("mkdir %s: %w", e.dir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteNDJSON(f, rs); err != nil {
		f.Close()
		return path, err
	}
	if err := f.Close(); err != nil {
		return path, fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}

// WriteNDJSON writes one JSON object per row. Keys follow the column order
// of rs; every record ends with a newline.
func WriteNDJSON(w io.Writer, rs *domain.ResultSet) error {
	bw := bufio.NewWriter(w)
	for rowIdx, row := range rs.Rows {
		if len(row) != len(rs.Columns) {
			return fmt.Errorf("row %d: %d values for %d columns", rowIdx, len(row), len(rs.Columns))
		}
		bw.WriteByte('{')
		for i, col := range rs.Columns {
			if i > 0 {
				bw.WriteByte(',')
			}
			key, err := marshal(col)
			if err != nil {
				return fmt.Errorf("json encode column %q: %w", col, err)
			}
			val, err := marshal(row[i])
			if err != nil {
				return fmt.Errorf("json encode row %d column %q: %w", rowIdx, col, err)
			}
			bw.Write(key)
			bw.WriteByte(':')
			bw.Write(val)
		}
		bw.WriteString("}\n")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
