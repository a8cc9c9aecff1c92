package loader

// PlanMonth is one contract/plan row of a monthly snapshot joined to its
// county enrollment. Geography and enrollment are nil when the plan had no
// enrollment row that month.
type PlanMonth struct {
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

	SSA        *int64   `parquet:"ssa,optional"`
	FIPS       *int64   `parquet:"fips,optional"`
	State      *string  `parquet:"state,optional"`
	County     *string  `parquet:"county,optional"`
	Enrollment *float64 `parquet:"enrollment,optional"`

	Month int `parquet:"month"`
	Year  int `parquet:"year"`
}

// ServiceAreaMonth is a service area row stamped with its snapshot.
type ServiceAreaMonth struct {
	ContractID string  `parquet:"contractid"`
	OrgName    *string `parquet:"org_name,optional"`
	OrgType    *string `parquet:"org_type,optional"`
	PlanType   *string `parquet:"plan_type,optional"`
	Partial    *bool   `parquet:"partial,optional"`
	EGHP       *string `parquet:"eghp,optional"`
	SSA        *int64  `parquet:"ssa,optional"`
	FIPS       *int64  `parquet:"fips,optional"`
	County     *string `parquet:"county,optional"`
	State      *string `parquet:"state,optional"`
	Notes      *string `parquet:"notes,optional"`

	Month int `parquet:"month"`
	Year  int `parquet:"year"`
}

// PenetrationMonth is a county penetration row stamped with its snapshot.
type PenetrationMonth struct {
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
	Penetration *float64 `parquet:"penetration,optional"`

	Month int `parquet:"month"`
	Year  int `parquet:"year"`
}
