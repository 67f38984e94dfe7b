package sheets

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayouts are the renderings a spreadsheet date cell is accepted in.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"2006/01/02",
	"Jan 2, 2006",
	"2-Jan-2006",
	"2006-01-02 15:04:05",
}

// ReadRows returns every row of a worksheet as displayed text. The first row is the header.
func ReadRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// header maps column names to their index.
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.TrimSpace(name)] = i
	}
	return h
}

// cell returns the trimmed value of the named column, or "" when the column or cell is absent.
func (h header) cell(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (h header) require(names ...string) error {
	for _, name := range names {
		if _, ok := h[name]; !ok {
			return fmt.Errorf("missing column %q", name)
		}
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
