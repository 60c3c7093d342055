package database

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

func openCSV(path string) (*csv.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	br := stripUTF8BOM(bufio.NewReader(f))

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.ReuseRecord = false
	return r, f.Close, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

func readHeader(r *csv.Reader) ([]string, error) {
	h, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header")
		}
		return nil, err
	}
	for i := range h {
		h[i] = strings.TrimSpace(h[i])
		if !utf8.ValidString(h[i]) {
			return nil, fmt.Errorf("invalid header encoding")
		}
	}
	return h, nil
}

// matchHeader checks that header holds exactly the given columns, in any order.
func matchHeader(header []string, columns []string) error {
	allowed := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		allowed[c] = struct{}{}
	}
	seen := make(map[string]struct{}, len(header))
	for _, h := range header {
		if _, ok := allowed[h]; !ok {
			return fmt.Errorf("unexpected header column: %s", h)
		}
		if _, dup := seen[h]; dup {
			return fmt.Errorf("duplicate header column: %s", h)
		}
		seen[h] = struct{}{}
	}
	for _, c := range columns {
		if _, ok := seen[c]; !ok {
			return fmt.Errorf("missing required header column: %s", c)
		}
	}
	return nil
}
