package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// PartCColumns names the headers of the MA-only landscape table.
// Empty fields fall back to the canonical lowercase names.
type PartCColumns struct {
	ContractID string
	PlanID     string
	State      string
	County     string
	Premium    string
}

// PartDColumns names the headers of the MA-PD landscape table.
type PartDColumns struct {
	ContractID        string
	PlanID            string
	State             string
	County            string
	PremiumPartC      string
	PremiumPartDBasic string
	PremiumPartDSupp  string
	PremiumPartDTotal string
	PartDDeductible   string
}

func (c PartCColumns) withDefaults() PartCColumns {
	return PartCColumns{
		ContractID: or(c.ContractID, "contractid"),
		PlanID:     or(c.PlanID, "planid"),
		State:      or(c.State, "state"),
		County:     or(c.County, "county"),
		Premium:    or(c.Premium, "premium"),
	}
}

func (c PartDColumns) withDefaults() PartDColumns {
	return PartDColumns{
		ContractID:        or(c.ContractID, "contractid"),
		PlanID:            or(c.PlanID, "planid"),
		State:             or(c.State, "state"),
		County:            or(c.County, "county"),
		PremiumPartC:      or(c.PremiumPartC, "premium_partc"),
		PremiumPartDBasic: or(c.PremiumPartDBasic, "premium_partd_basic"),
		PremiumPartDSupp:  or(c.PremiumPartDSupp, "premium_partd_supp"),
		PremiumPartDTotal: or(c.PremiumPartDTotal, "premium_partd_total"),
		PartDDeductible:   or(c.PartDDeductible, "partd_deductible"),
	}
}

func or(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// ReadPartC reads the MA-only landscape table from a CSV or XLSX file.
// Cells are returned as text; no row is dropped.
func ReadPartC(path string, cols PartCColumns) ([]PartCRow, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	cols = cols.withDefaults()

	idx, err := t.lookup(cols.ContractID, cols.PlanID, cols.State, cols.County, cols.Premium)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make([]PartCRow, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, PartCRow{
			ContractID: cellAt(row, idx[0]),
			PlanID:     cellAt(row, idx[1]),
			State:      cellAt(row, idx[2]),
			County:     cellAt(row, idx[3]),
			Premium:    cellAt(row, idx[4]),
		})
	}
	return out, nil
}

// ReadPartD reads the MA-PD landscape table from a CSV or XLSX file.
func ReadPartD(path string, cols PartDColumns) ([]PartDRow, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	cols = cols.withDefaults()

	idx, err := t.lookup(cols.ContractID, cols.PlanID, cols.State, cols.County,
		cols.PremiumPartC, cols.PremiumPartDBasic, cols.PremiumPartDSupp,
		cols.PremiumPartDTotal, cols.PartDDeductible)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make([]PartDRow, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, PartDRow{
			ContractID:        cellAt(row, idx[0]),
			PlanID:            cellAt(row, idx[1]),
			State:             cellAt(row, idx[2]),
			County:            cellAt(row, idx[3]),
			PremiumPartC:      cellAt(row, idx[4]),
			PremiumPartDBasic: cellAt(row, idx[5]),
			PremiumPartDSupp:  cellAt(row, idx[6]),
			PremiumPartDTotal: cellAt(row, idx[7]),
			PartDDeductible:   cellAt(row, idx[8]),
		})
	}
	return out, nil
}

// table is a header-addressed sheet.
type table struct {
	colIdx map[string]int // lowercase trimmed header → column index
	rows   [][]string
}

func readTable(path string) (*table, error) {
	var records [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		records, err = readXLSX(path)
	} else {
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no header row: %w", path, ErrSchema)
	}

	t := &table{colIdx: make(map[string]int)}
	for i, h := range records[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := t.colIdx[key]; !dup {
			t.colIdx[key] = i
		}
	}
	for _, row := range records[1:] {
		if isBlank(row) {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func (t *table) lookup(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		j, ok := t.colIdx[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrMissingColumn)
		}
		idx[i] = j
	}
	return idx, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := newLatin1CSV(file)
	var records [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		records = append(records, row)
	}
}

// readXLSX returns the rows of the workbook's first sheet.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets: %w", path, ErrSchema)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheets[0], path, err)
	}
	return rows, nil
}

func cellAt(row []string, i int) string {
	if i >= 0 && i < len(row) {
		return row[i]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, s := range row {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
