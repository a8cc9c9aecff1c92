package parser

// ContractRecord is one row of the CPSC contract info extract.
// (ContractID, PlanID) is the intended key, but the extract repeats it;
// loaders resolve duplicates first-wins.
type ContractRecord struct {
	ContractID       string  `parquet:"contractid"`
	PlanID           *int64  `parquet:"planid,optional"`
	OrgType          *string `parquet:"org_type,optional"`
	PlanType         *string `parquet:"plan_type,optional"`
	PartD            *string `parquet:"partd,optional"`
	SNP              *string `parquet:"snp,optional"`
	EGHP             *string `parquet:"eghp,optional"`
	OrgName          *string `parquet:"org_name,optional"`
	OrgMarketingName *string `parquet:"org_marketing_name,optional"`
	PlanName         *string `parquet:"plan_name,optional"`
	ParentOrg        *string `parquet:"parent_org,optional"`
	ContractDate     *string `parquet:"contract_date,optional"`
}

// EnrollmentRecord is one row of the CPSC enrollment extract: a plan's
// enrollment in one county. A nil Enrollment means suppressed, not zero.
type EnrollmentRecord struct {
	ContractID string   `parquet:"contractid"`
	PlanID     *int64   `parquet:"planid,optional"`
	SSA        *int64   `parquet:"ssa,optional"`
	FIPS       *int64   `parquet:"fips,optional"`
	State      *string  `parquet:"state,optional"`
	County     *string  `parquet:"county,optional"`
	Enrollment *float64 `parquet:"enrollment,optional"`
}

// ServiceAreaRecord is one row of the MA county service area extract.
type ServiceAreaRecord struct {
	ContractID string  `parquet:"contractid"`
	OrgName    *string `parquet:"org_name,optional"`
	OrgType    *string `parquet:"org_type,optional"`
	PlanType   *string `parquet:"plan_type,optional"`
	Partial    *bool   `parquet:"partial,optional"` // plan covers only part of the county
	EGHP       *string `parquet:"eghp,optional"`
	SSA        *int64  `parquet:"ssa,optional"`
	FIPS       *int64  `parquet:"fips,optional"`
	County     *string `parquet:"county,optional"`
	State      *string `parquet:"state,optional"`
	Notes      *string `parquet:"notes,optional"`
}

// PenetrationRecord is one row of the state/county MA penetration extract.
// FIPS and SSA codings are carried side by side without cross-checking.
type PenetrationRecord struct {
	State       *string  `parquet:"state,optional"`
	County      *string  `parquet:"county,optional"`
	FIPSState   *int64   `parquet:"fips_state,optional"`
	FIPSCounty  *int64   `parquet:"fips_cnty,optional"`
	FIPS        *int64   `parquet:"fips,optional"`
	SSAState    *int64   `parquet:"ssa_state,optional"`
	SSACounty   *int64   `parquet:"ssa_cnty,optional"`
	SSA         *int64   `parquet:"ssa,optional"`
	Eligibles   *float64 `parquet:"eligibles,optional"`
	Enrolled    *float64 `parquet:"enrolled,optional"`
	Penetration *float64 `parquet:"penetration,optional"` // percent, 0-100
}

// PartCRow is one raw row of the MA-only (Part C) landscape table.
// Values are kept as text; the premium reconciler owns coercion.
type PartCRow struct {
	ContractID string
	PlanID     string
	State      string
	County     string
	Premium    string
}

// PartDRow is one raw row of the MA-PD landscape table.
type PartDRow struct {
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
