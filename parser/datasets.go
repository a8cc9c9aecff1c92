package parser

// Positional layouts of the monthly CMS extracts. The header line is
// discarded; columns are matched by position.
var (
	contractLayout    = layout{name: "contract info", min: 12, max: 12}
	enrollmentLayout  = layout{name: "enrollment info", min: 7, max: 7}
	serviceAreaLayout = layout{name: "service area", min: 9, max: 11}
	penetrationLayout = layout{name: "penetration", min: 11, max: 11}
)

// ReadContracts parses a CPSC_Contract_Info extract. Every data line yields
// one record, in file order.
func ReadContracts(path string) ([]ContractRecord, error) {
	rows, err := readRows(path, contractLayout)
	if err != nil {
		return nil, err
	}

	c := contractCells()
	out := make([]ContractRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ContractRecord{
			ContractID:       contractID(c, row, 0),
			PlanID:           c.Int(row, 1),
			OrgType:          c.Str(row, 2),
			PlanType:         c.Str(row, 3),
			PartD:            c.Str(row, 4),
			SNP:              c.Str(row, 5),
			EGHP:             c.Str(row, 6),
			OrgName:          c.Str(row, 7),
			OrgMarketingName: c.Str(row, 8),
			PlanName:         c.Str(row, 9),
			ParentOrg:        c.Str(row, 10),
			ContractDate:     c.Str(row, 11),
		})
	}
	return out, nil
}

// ReadEnrollment parses a CPSC_Enrollment_Info extract. "*" marks
// suppressed small counts and is treated as missing in every column.
func ReadEnrollment(path string) ([]EnrollmentRecord, error) {
	rows, err := readRows(path, enrollmentLayout)
	if err != nil {
		return nil, err
	}

	c := suppressedCells()
	out := make([]EnrollmentRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, EnrollmentRecord{
			ContractID: contractID(c, row, 0),
			PlanID:     c.Int(row, 1),
			SSA:        c.Int(row, 2),
			FIPS:       c.Int(row, 3),
			State:      c.Str(row, 4),
			County:     c.Str(row, 5),
			Enrollment: c.Float(row, 6),
		})
	}
	return out, nil
}

// ReadServiceArea parses an MA_Cnty_SA extract. Older layouts stop after
// the state column; the missing trailing columns are nil.
func ReadServiceArea(path string) ([]ServiceAreaRecord, error) {
	rows, err := readRows(path, serviceAreaLayout)
	if err != nil {
		return nil, err
	}

	c := suppressedCells()
	out := make([]ServiceAreaRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ServiceAreaRecord{
			ContractID: contractID(c, row, 0),
			OrgName:    c.Str(row, 1),
			OrgType:    c.Str(row, 2),
			PlanType:   c.Str(row, 3),
			Partial:    c.Bool(row, 4),
			EGHP:       c.Str(row, 5),
			SSA:        c.Int(row, 6),
			FIPS:       c.Int(row, 7),
			County:     c.Str(row, 8),
			State:      c.Str(row, 9),
			Notes:      c.Str(row, 10),
		})
	}
	return out, nil
}

// ReadPenetration parses a State_County_Penetration_MA extract. Eligibles,
// enrolled and penetration arrive as "12,345" / "41.5%" text.
func ReadPenetration(path string) ([]PenetrationRecord, error) {
	rows, err := readRows(path, penetrationLayout)
	if err != nil {
		return nil, err
	}

	c := penetrationCells()
	out := make([]PenetrationRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, PenetrationRecord{
			State:       c.Str(row, 0),
			County:      c.Str(row, 1),
			FIPSState:   c.Int(row, 2),
			FIPSCounty:  c.Int(row, 3),
			FIPS:        c.Int(row, 4),
			SSAState:    c.Int(row, 5),
			SSACounty:   c.Int(row, 6),
			SSA:         c.Int(row, 7),
			Eligibles:   c.Count(row, 8),
			Enrolled:    c.Count(row, 9),
			Penetration: c.Count(row, 10),
		})
	}
	return out, nil
}

func contractID(c Cells, row []string, i int) string {
	if s := c.Str(row, i); s != nil {
		return ContractID(*s)
	}
	return ""
}
