package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported series file format")

// ErrNoData is returned when a file holds no data rows.
var ErrNoData = errors.New("series file has no data rows")

// ErrNonFinite is returned for NaN or infinite values.
var ErrNonFinite = errors.New("value is not a finite number")

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Load reads a series from a .csv or .xlsx file. The first two columns are
// the date and the value; a non-numeric first row is treated as a header
// and names the series.
func Load(path string) (*Series, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := FromRows(name, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// FromRows builds a series from string rows.
func FromRows(name string, rows [][]string) (*Series, error) {
	s := &Series{Name: name}
	for i, row := range rows {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("line %d: want date and value, got %d column(s)", i+1, len(row))
		}

		v, verr := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if verr != nil && i == 0 {
			if header := strings.TrimSpace(row[1]); header != "" {
				s.Name = header
			}
			continue
		}
		if verr != nil {
			return nil, fmt.Errorf("line %d: invalid value %q: %w", i+1, row[1], verr)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("line %d: %w: %q", i+1, ErrNonFinite, row[1])
		}

		t, err := parseDate(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		s.Append(t, v)
	}
	if s.Len() == 0 {
		return nil, ErrNoData
	}
	s.Sort()
	return s, nil
}

func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	// spreadsheets may hand us the raw serial number of a date cell
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", v)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoData
	}
	// Raw values keep date cells as serial numbers instead of display text.
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}
