// Package workbook reads .xlsx import templates.
//
// Sheets and column headers are matched case- and whitespace-insensitively
// against the template vocabulary. Unrecognized columns are ignored and
// missing optional columns yield absent values, so older copies of the
// template keep working.
package workbook

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DateLayout is the only accepted text form for dates in the template
const DateLayout = "02-01-2006"

var nonDigits = regexp.MustCompile(`\D`)

// Workbook is a parsed xlsx file with normalized sheet lookup
type Workbook struct {
	sheets map[string]*Sheet
}

// Sheet holds the rows of one worksheet with a normalized header index
type Sheet struct {
	Name   string
	header map[string]int
	rows   [][]string
}

// Row is one data row of a sheet. Num is the 1-based worksheet row
// number, so the first data row is 2 (the header occupies row 1).
type Row struct {
	sheet *Sheet
	cells []string
	Num   int
}

// Open parses a workbook from r
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid Excel file: %w", err)
	}
	defer f.Close()

	wb := &Workbook{sheets: make(map[string]*Sheet)}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		if len(rows) == 0 {
			continue
		}

		sheet := &Sheet{
			Name:   name,
			header: make(map[string]int),
		}
		for i, h := range rows[0] {
			key := Normalize(h)
			if key == "" {
				continue
			}
			if _, dup := sheet.header[key]; !dup {
				sheet.header[key] = i
			}
		}
		sheet.rows = rows[1:]

		wb.sheets[Normalize(name)] = sheet
	}

	return wb, nil
}

// Normalize lowercases and collapses internal whitespace
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Sheet returns the named sheet, or nil if the workbook does not have it
func (w *Workbook) Sheet(name string) *Sheet {
	return w.sheets[Normalize(name)]
}

// HasColumn reports whether the sheet header contains the given column
func (s *Sheet) HasColumn(name string) bool {
	_, ok := s.header[Normalize(name)]
	return ok
}

// Rows returns all data rows of the sheet
func (s *Sheet) Rows() []Row {
	out := make([]Row, 0, len(s.rows))
	for i, cells := range s.rows {
		out = append(out, Row{sheet: s, cells: cells, Num: i + 2})
	}
	return out
}

// Len returns the number of data rows
func (s *Sheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// String returns the trimmed cell under the first matching header name.
// Returns "" when no listed column exists or the cell is empty.
func (r Row) String(names ...string) string {
	for _, name := range names {
		idx, ok := r.sheet.header[Normalize(name)]
		if !ok {
			continue
		}
		if idx < len(r.cells) {
			return strings.TrimSpace(r.cells[idx])
		}
		return ""
	}
	return ""
}

// Upper returns the cell uppercased (PAN style fields)
func (r Row) Upper(names ...string) string {
	return strings.ToUpper(r.String(names...))
}

// Date parses the cell as DD-MM-YYYY. Any other content, including a
// malformed date, degrades to nil rather than an error; required-date
// checks surface the problem at validation time.
func (r Row) Date(names ...string) *time.Time {
	s := r.String(names...)
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// Digits keeps only digit characters and caps the result at maxLen.
// Numeric cells exported as "1234567890.0" lose the decimal suffix.
// Returns "" for cells with no digits at all.
func (r Row) Digits(maxLen int, names ...string) string {
	s := r.String(names...)
	if s == "" {
		return ""
	}
	s = strings.TrimSuffix(s, ".0")
	s = nonDigits.ReplaceAllString(s, "")
	if s == "" {
		return ""
	}
	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// Decimal parses the cell as a decimal number. Unparseable content
// degrades to an invalid NullDecimal.
func (r Row) Decimal(names ...string) decimal.NullDecimal {
	s := r.String(names...)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// Int parses the cell as an integer, accepting a float-formatted cell
// such as "3.0". Unparseable content degrades to nil.
func (r Row) Int(names ...string) *int {
	s := r.String(names...)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}
