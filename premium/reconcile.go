// Package premium reconciles the two yearly plan-premium landscape tables,
// the MA-only (Part C) table and the MA-PD (Part C + Part D) table, into one
// row per (contractid, planid, state, county).
//
// Two lossy policies are applied, both inherited from the published
// pipeline and kept for compatibility:
//
//   - Forward fill. Within a key group, sorted by the key tuple, a missing
//     premium takes the nearest preceding non-missing value: a plan's rate
//     at a location is assumed unchanged until a new rate is recorded. This
//     is a policy, not a fact in the data. Leading gaps stay missing.
//   - First wins. After the fill, only the first row of each key group is
//     kept; later rows are discarded whatever they contain.
//
// Neither step marks the rows it altered. Stats reports how many cells were
// filled and how many rows were dropped so callers can log or audit them.
package premium

import (
	"cmp"
	"slices"
	"strings"

	"madata/parser"
)

// PlanPremium is one reconciled premium row. Premium comes from the MA-only
// table; the remaining amounts come from the MA-PD table. A nil amount means
// the source table had no value for the key, or no row at all.
type PlanPremium struct {
	ContractID string `parquet:"contractid"`
	PlanID     *int64 `parquet:"planid,optional"`
	State      string `parquet:"state"`
	County     string `parquet:"county"`

	Premium *float64 `parquet:"premium,optional"`

	PremiumPartC      *float64 `parquet:"premium_partc,optional"`
	PremiumPartDBasic *float64 `parquet:"premium_partd_basic,optional"`
	PremiumPartDSupp  *float64 `parquet:"premium_partd_supp,optional"`
	PremiumPartDTotal *float64 `parquet:"premium_partd_total,optional"`
	PartDDeductible   *float64 `parquet:"partd_deductible,optional"`

	Year int `parquet:"year"`
}

// Stats summarizes what Reconcile changed.
type Stats struct {
	PartCRows    int // input rows, MA-only table
	PartDRows    int // input rows, MA-PD table
	PartCFilled  int // premium cells forward-filled
	PartDFilled  int
	PartCDropped int // duplicate key rows discarded
	PartDDropped int
	Matched      int // keys present in both tables
	PartCOnly    int
	PartDOnly    int
}

// Reconcile cleans both tables and outer-joins them on the full key. The
// result is ordered by (contractid, planid with nil last, state, county) and
// every row carries year. Unparsable values become nil; no row is rejected.
// The input slices are not modified.
func Reconcile(partC []parser.PartCRow, partD []parser.PartDRow, year int) ([]PlanPremium, Stats) {
	stats := Stats{PartCRows: len(partC), PartDRows: len(partD)}

	c := make([]entry, len(partC))
	for i, r := range partC {
		c[i] = entry{
			key:  newKey(r.ContractID, r.PlanID, r.State, r.County),
			vals: []*float64{parser.Currency(r.Premium)},
		}
	}
	c, stats.PartCFilled, stats.PartCDropped = tidy(c)

	d := make([]entry, len(partD))
	for i, r := range partD {
		d[i] = entry{
			key: newKey(r.ContractID, r.PlanID, r.State, r.County),
			vals: []*float64{
				parser.Currency(r.PremiumPartC),
				parser.Currency(r.PremiumPartDBasic),
				parser.Currency(r.PremiumPartDSupp),
				parser.Currency(r.PremiumPartDTotal),
				parser.Currency(r.PartDDeductible),
			},
		}
	}
	d, stats.PartDFilled, stats.PartDDropped = tidy(d)

	out := make([]PlanPremium, 0, max(len(c), len(d)))
	i, j := 0, 0
	for i < len(c) || j < len(d) {
		var order int
		switch {
		case i == len(c):
			order = 1
		case j == len(d):
			order = -1
		default:
			order = compareKeys(c[i].key, d[j].key)
		}

		var row PlanPremium
		switch {
		case order < 0:
			row = c[i].key.row(year)
			row.Premium = c[i].vals[0]
			stats.PartCOnly++
			i++
		case order > 0:
			row = d[j].key.row(year)
			setPartD(&row, d[j].vals)
			stats.PartDOnly++
			j++
		default:
			row = c[i].key.row(year)
			row.Premium = c[i].vals[0]
			setPartD(&row, d[j].vals)
			stats.Matched++
			i++
			j++
		}
		out = append(out, row)
	}
	return out, stats
}

func setPartD(row *PlanPremium, vals []*float64) {
	row.PremiumPartC = vals[0]
	row.PremiumPartDBasic = vals[1]
	row.PremiumPartDSupp = vals[2]
	row.PremiumPartDTotal = vals[3]
	row.PartDDeductible = vals[4]
}

// key is the normalized (contractid, planid, state, county) tuple.
type key struct {
	contractID string
	planID     int64
	hasPlan    bool
	state      string
	county     string
}

func newKey(contractID, planID, state, county string) key {
	k := key{
		contractID: parser.ContractID(contractID),
		state:      strings.TrimSpace(state),
		county:     strings.TrimSpace(county),
	}
	if p := parser.PlanID(planID); p != nil {
		k.planID = *p
		k.hasPlan = true
	}
	return k
}

func (k key) row(year int) PlanPremium {
	row := PlanPremium{
		ContractID: k.contractID,
		State:      k.state,
		County:     k.county,
		Year:       year,
	}
	if k.hasPlan {
		planID := k.planID
		row.PlanID = &planID
	}
	return row
}

// compareKeys orders keys by contractid, planid (nil last), state, county.
func compareKeys(a, b key) int {
	if c := strings.Compare(a.contractID, b.contractID); c != 0 {
		return c
	}
	if a.hasPlan != b.hasPlan {
		if a.hasPlan {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(a.planID, b.planID); c != 0 {
		return c
	}
	if c := strings.Compare(a.state, b.state); c != 0 {
		return c
	}
	return strings.Compare(a.county, b.county)
}

// entry is one cleaned row: its key and its premium-family values.
type entry struct {
	key  key
	vals []*float64
}

// tidy stable-sorts rows by key, forward-fills within each key group, then
// keeps the first row of each group. It returns the surviving rows with the
// number of filled cells and dropped rows. The vals of the entries passed in
// are rewritten, so they must not be shared with the caller.
func tidy(rows []entry) ([]entry, int, int) {
	slices.SortStableFunc(rows, func(a, b entry) int {
		return compareKeys(a.key, b.key)
	})
	filled := fillForward(rows)
	kept := dedupFirst(rows)
	return kept, filled, len(rows) - len(kept)
}

// fillForward replaces each nil value with the nearest preceding non-nil
// value of the same field in the same key group. rows must be sorted by key.
// Leading nils of a group stay nil.
func fillForward(rows []entry) int {
	filled := 0
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && rows[end].key == rows[start].key {
			end++
		}

		last := make([]*float64, len(rows[start].vals))
		for i := start; i < end; i++ {
			for f, v := range rows[i].vals {
				switch {
				case v != nil:
					last[f] = v
				case last[f] != nil:
					carried := *last[f]
					rows[i].vals[f] = &carried
					filled++
				}
			}
		}
		start = end
	}
	return filled
}

// dedupFirst keeps the first row of each key group. rows must be sorted by
// key; the result reuses the backing array.
func dedupFirst(rows []entry) []entry {
	kept := rows[:0:len(rows)]
	for _, r := range rows {
		if len(kept) > 0 && r.key == kept[len(kept)-1].key {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}
