package loader

import "madata/parser"

// planKey is the (contractid, planid) join key. A nil planid is its own
// value: rows with nil planid match each other.
type planKey struct {
	contractID string
	planID     int64
	hasPlan    bool
}

func keyOf(contractID string, planID *int64) planKey {
	k := planKey{contractID: parser.ContractID(contractID)}
	if planID != nil {
		k.planID = *planID
		k.hasPlan = true
	}
	return k
}

// DedupContracts keeps the first contract row per (contractid, planid), in
// file order. The input slice is not modified.
func DedupContracts(contracts []parser.ContractRecord) []parser.ContractRecord {
	seen := make(map[planKey]struct{}, len(contracts))
	out := make([]parser.ContractRecord, 0, len(contracts))
	for _, c := range contracts {
		k := keyOf(c.ContractID, c.PlanID)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

// JoinPlans left-joins enrollment onto contracts by (contractid, planid).
// Every contract row appears at least once, in order; a contract matching
// several enrollment rows (one per county) is repeated once per match, in
// enrollment order. Unmatched contracts carry nil geography and enrollment.
func JoinPlans(contracts []parser.ContractRecord, enrollment []parser.EnrollmentRecord, snap Snapshot) []PlanMonth {
	byKey := make(map[planKey][]int, len(enrollment))
	for i, e := range enrollment {
		k := keyOf(e.ContractID, e.PlanID)
		byKey[k] = append(byKey[k], i)
	}

	out := make([]PlanMonth, 0, len(contracts))
	for _, c := range contracts {
		base := PlanMonth{
			ContractID:       c.ContractID,
			PlanID:           c.PlanID,
			OrgType:          c.OrgType,
			PlanType:         c.PlanType,
			PartD:            c.PartD,
			SNP:              c.SNP,
			EGHP:             c.EGHP,
			OrgName:          c.OrgName,
			OrgMarketingName: c.OrgMarketingName,
			PlanName:         c.PlanName,
			ParentOrg:        c.ParentOrg,
			ContractDate:     c.ContractDate,
			Month:            snap.Month,
			Year:             snap.Year,
		}

		matches := byKey[keyOf(c.ContractID, c.PlanID)]
		if len(matches) == 0 {
			out = append(out, base)
			continue
		}
		for _, i := range matches {
			e := enrollment[i]
			row := base // struct copy
			row.SSA = e.SSA
			row.FIPS = e.FIPS
			row.State = e.State
			row.County = e.County
			row.Enrollment = e.Enrollment
			out = append(out, row)
		}
	}
	return out
}
