package parser

import (
	"math"
	"strconv"
	"strings"
)

// Cells coerces raw CSV cells under one dataset's missing-value convention.
// Every coercion degrades to nil instead of failing; callers treat nil as
// "unknown or suppressed", never as zero.
type Cells struct {
	nulls []string
}

// NewCells returns a Cells that treats each token (compared after trimming
// surrounding whitespace) as a missing value.
func NewCells(nullTokens ...string) Cells {
	return Cells{nulls: append([]string(nil), nullTokens...)}
}

// Sentinel sets used by the CMS extracts.
func contractCells() Cells { return NewCells("", "NA", "N/A", "NULL", "NaN") }
func suppressedCells() Cells { return NewCells("", "NA", "N/A", "NULL", "NaN", "*") }
func penetrationCells() Cells { return NewCells("", "NA", "*", "-", "--") }

// IsNull reports whether s is one of the configured missing-value tokens.
func (c Cells) IsNull(s string) bool {
	s = strings.TrimSpace(s)
	for _, tok := range c.nulls {
		if s == tok {
			return true
		}
	}
	return false
}

func (c Cells) cell(row []string, i int) (string, bool) {
	if i < 0 || i >= len(row) {
		return "", false
	}
	s := strings.TrimSpace(row[i])
	if c.IsNull(s) {
		return "", false
	}
	return s, true
}

// Str returns the trimmed text at column i, or nil for a sentinel.
func (c Cells) Str(row []string, i int) *string {
	s, ok := c.cell(row, i)
	if !ok {
		return nil
	}
	return &s
}

// Float returns the numeric value at column i.
func (c Cells) Float(row []string, i int) *float64 {
	s, ok := c.cell(row, i)
	if !ok {
		return nil
	}
	return parseFloat(s)
}

// Int returns the integral value at column i. "12" and "12.0" both give 12;
// fractional or out-of-range values give nil.
func (c Cells) Int(row []string, i int) *int64 {
	s, ok := c.cell(row, i)
	if !ok {
		return nil
	}
	return parseInt(s)
}

// Count parses locale-formatted counts and percentages ("12,345", "41.5%").
func (c Cells) Count(row []string, i int) *float64 {
	s, ok := c.cell(row, i)
	if !ok {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")
	return parseFloat(s)
}

// Bool maps the literal tokens TRUE and FALSE (case-sensitive). Anything
// else, including "True" or "1", is nil.
func (c Cells) Bool(row []string, i int) *bool {
	s, ok := c.cell(row, i)
	if !ok {
		return nil
	}
	var b bool
	switch s {
	case "TRUE":
		b = true
	case "FALSE":
		b = false
	default:
		return nil
	}
	return &b
}

// ContractID upper-cases and trims a contract identifier so that " h1234 ",
// "h1234" and "H1234" collide into one key.
func ContractID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// PlanID coerces a plan identifier to a nullable integer.
func PlanID(s string) *int64 {
	return parseInt(strings.TrimSpace(s))
}

// Currency strips "$" and "," before numeric coercion:
// "$1,234.50", "1,234.50" and "$1234.50" all give 1234.5.
func Currency(s string) *float64 {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return parseFloat(strings.TrimSpace(s))
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	return &f
}

func parseInt(s string) *int64 {
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	f := parseFloat(s)
	if f == nil || *f != math.Trunc(*f) || math.Abs(*f) > 1<<53 {
		return nil
	}
	n := int64(*f)
	return &n
}
