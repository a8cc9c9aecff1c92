// Package loader builds one month of each CMS dataset: it runs the parser
// for the month's extract(s) and stamps every row with the snapshot's month
// and year. Loaders hold no state; each call reads its files and returns a
// fresh table.
package loader

import (
	"fmt"
	"strconv"
	"strings"

	"madata/parser"
)

// Snapshot identifies a monthly release.
type Snapshot struct {
	Month int
	Year  int
}

// NewSnapshot parses the month as supplied by the caller ("01", "7").
// The year is passed through unchanged.
func NewSnapshot(month string, year int) (Snapshot, error) {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return Snapshot{}, fmt.Errorf("month %q: %w", month, err)
	}
	return Snapshot{Month: m, Year: year}, nil
}

// LoadPlans loads the contract and enrollment extracts of one month and
// left-joins them on (contractid, planid).
func LoadPlans(contractPath, enrollPath string, snap Snapshot) ([]PlanMonth, error) {
	contracts, err := parser.ReadContracts(contractPath)
	if err != nil {
		return nil, fmt.Errorf("load contracts: %w", err)
	}
	enrollment, err := parser.ReadEnrollment(enrollPath)
	if err != nil {
		return nil, fmt.Errorf("load enrollment: %w", err)
	}
	return JoinPlans(DedupContracts(contracts), enrollment, snap), nil
}

// LoadServiceArea loads one month of the county service area extract.
func LoadServiceArea(path string, snap Snapshot) ([]ServiceAreaMonth, error) {
	records, err := parser.ReadServiceArea(path)
	if err != nil {
		return nil, fmt.Errorf("load service area: %w", err)
	}

	out := make([]ServiceAreaMonth, len(records))
	for i, r := range records {
		out[i] = ServiceAreaMonth{
			ContractID: r.ContractID,
			OrgName:    r.OrgName,
			OrgType:    r.OrgType,
			PlanType:   r.PlanType,
			Partial:    r.Partial,
			EGHP:       r.EGHP,
			SSA:        r.SSA,
			FIPS:       r.FIPS,
			County:     r.County,
			State:      r.State,
			Notes:      r.Notes,
			Month:      snap.Month,
			Year:       snap.Year,
		}
	}
	return out, nil
}

// LoadPenetration loads one month of the state/county penetration extract.
func LoadPenetration(path string, snap Snapshot) ([]PenetrationMonth, error) {
	records, err := parser.ReadPenetration(path)
	if err != nil {
		return nil, fmt.Errorf("load penetration: %w", err)
	}

	out := make([]PenetrationMonth, len(records))
	for i, r := range records {
		out[i] = PenetrationMonth{
			State:       r.State,
			County:      r.County,
			FIPSState:   r.FIPSState,
			FIPSCounty:  r.FIPSCounty,
			FIPS:        r.FIPS,
			SSAState:    r.SSAState,
			SSACounty:   r.SSACounty,
			SSA:         r.SSA,
			Eligibles:   r.Eligibles,
			Enrolled:    r.Enrolled,
			Penetration: r.Penetration,
			Month:       snap.Month,
			Year:        snap.Year,
		}
	}
	return out, nil
}
