package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"madata/parser"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const contractHeader = "Contract ID,Plan ID,Organization Type,Plan Type,Offers Part D,SNP Plan,EGHP,Organization Name,Organization Marketing Name,Plan Name,Parent Organization,Contract Effective Date\n"
const enrollHeader = "Contract Number,Plan ID,SSA State County Code,FIPS State County Code,State,County,Enrollment\n"

func TestNewSnapshot(t *testing.T) {
	snap, err := NewSnapshot("01", 2015)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Month: 1, Year: 2015}, snap)

	snap, err = NewSnapshot("12", 2020)
	require.NoError(t, err)
	assert.Equal(t, 12, snap.Month)

	_, err = NewSnapshot("Jan", 2015)
	assert.Error(t, err)
}

func TestLoadPlansLeftJoin(t *testing.T) {
	dir := t.TempDir()
	contracts := writeFixture(t, dir, "CPSC_Contract_Info_2015_01.csv", contractHeader+
		"H0028,7,Local CCP,HMO,Yes,No,No,CHA HMO,Humana,Gold Plus,Humana Inc.,12/01/1998\n"+
		"h0028,7,Local CCP,HMO,Yes,No,No,CHA HMO,Humana,Second Copy,Humana Inc.,12/01/1998\n"+
		"H0028,8,Local CCP,HMO,Yes,No,No,CHA HMO,Humana,No Enrollment,Humana Inc.,12/01/1998\n"+
		"R5826,,Regional CCP,PPO,Yes,No,No,WELLCARE,WellCare,Null Plan,WellCare,01/01/2006\n")
	enroll := writeFixture(t, dir, "CPSC_Enrollment_Info_2015_01.csv", enrollHeader+
		"H0028,7,01000,01001,AL,Autauga,1234\n"+
		"R5826,*,01010,01003,AL,Baldwin,*\n"+
		"H9999,1,01020,01005,AL,Barbour,55\n")

	rows, err := LoadPlans(contracts, enroll, Snapshot{Month: 1, Year: 2015})
	require.NoError(t, err)

	// 4 contract rows, one duplicate key → 3 deduplicated rows, each
	// with at most one enrollment match.
	require.Len(t, rows, 3)

	r := rows[0]
	assert.Equal(t, "H0028", r.ContractID)
	require.NotNil(t, r.PlanName)
	assert.Equal(t, "Gold Plus", *r.PlanName, "first occurrence wins")
	require.NotNil(t, r.Enrollment)
	assert.Equal(t, 1234.0, *r.Enrollment)
	require.NotNil(t, r.County)
	assert.Equal(t, "Autauga", *r.County)

	r = rows[1]
	require.NotNil(t, r.PlanID)
	assert.Equal(t, int64(8), *r.PlanID)
	assert.Nil(t, r.SSA, "unmatched contract keeps nil geography")
	assert.Nil(t, r.FIPS)
	assert.Nil(t, r.State)
	assert.Nil(t, r.County)
	assert.Nil(t, r.Enrollment)

	r = rows[2]
	assert.Nil(t, r.PlanID)
	require.NotNil(t, r.County, "nil planids match each other")
	assert.Equal(t, "Baldwin", *r.County)
	assert.Nil(t, r.Enrollment)

	for i, r := range rows {
		assert.Equal(t, 1, r.Month, "row %d month", i)
		assert.Equal(t, 2015, r.Year, "row %d year", i)
	}
}

func TestJoinPlansFanOut(t *testing.T) {
	planID := int64(7)
	contracts := []parser.ContractRecord{{ContractID: "H0028", PlanID: &planID}}
	county := func(s string) *string { return &s }
	enrollment := []parser.EnrollmentRecord{
		{ContractID: "H0028", PlanID: &planID, County: county("Autauga")},
		{ContractID: "H0028", PlanID: &planID, County: county("Baldwin")},
	}

	rows := JoinPlans(contracts, enrollment, Snapshot{Month: 3, Year: 2016})
	require.Len(t, rows, 2)
	assert.Equal(t, "Autauga", *rows[0].County)
	assert.Equal(t, "Baldwin", *rows[1].County)
}

func TestDedupContractsDoesNotMutateInput(t *testing.T) {
	one, two := int64(1), int64(2)
	in := []parser.ContractRecord{
		{ContractID: "H1", PlanID: &one},
		{ContractID: "H1", PlanID: &one},
		{ContractID: "H1", PlanID: &two},
		{ContractID: "H1"},
		{ContractID: "H1"},
	}
	out := DedupContracts(in)
	assert.Len(t, out, 3)
	assert.Len(t, in, 5)
	assert.Equal(t, "H1", in[1].ContractID)
}

func TestLoadServiceArea(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "MA_Cnty_SA_2015_02.csv",
		"Contract ID,Organization Name,Organization Type,Plan Type,Partial,EGHP,SSA,FIPS,County,State,Notes\n"+
			"H0028,CHA HMO INC,Local CCP,HMO,TRUE,No,01000,01001,Autauga,AL,\n"+
			"H0028,CHA HMO INC,Local CCP,HMO,FALSE,No,01010,01003,Baldwin,AL,\n")

	snap, err := NewSnapshot("02", 2015)
	require.NoError(t, err)
	rows, err := LoadServiceArea(path, snap)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NotNil(t, rows[0].Partial)
	assert.True(t, *rows[0].Partial)
	for _, r := range rows {
		assert.Equal(t, 2, r.Month)
		assert.Equal(t, 2015, r.Year)
	}
}

func TestLoadPenetration(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "State_County_Penetration_MA_2015_03.csv",
		"State Name,County Name,FIPS State Code,FIPS County Code,FIPSCD,SSA State Code,SSA County Code,SSACD,Eligibles,Enrolled,Penetration\n"+
			"Alabama,Autauga,01,001,01001,01,000,01000,\"11,045\",\"3,870\",35.04%\n")

	rows, err := LoadPenetration(path, Snapshot{Month: 3, Year: 2015})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Eligibles)
	assert.Equal(t, 11045.0, *rows[0].Eligibles)
	assert.Equal(t, 3, rows[0].Month)
}

func TestLoadPlansMissingFile(t *testing.T) {
	dir := t.TempDir()
	contracts := writeFixture(t, dir, "c.csv", contractHeader)
	_, err := LoadPlans(contracts, filepath.Join(dir, "absent.csv"), Snapshot{Month: 1, Year: 2015})
	assert.Error(t, err)
}

func TestJoinPlansCarriesEveryField(t *testing.T) {
	str := func(s string) *string { return &s }
	planID, ssa, fips, enrolled := int64(7), int64(1000), int64(1001), 1234.0
	contracts := []parser.ContractRecord{{
		ContractID: "H0028", PlanID: &planID,
		OrgType: str("Local CCP"), PlanType: str("HMO"), PartD: str("Yes"), SNP: str("No"),
		EGHP: str("No"), OrgName: str("CHA HMO"), OrgMarketingName: str("Humana"),
		PlanName: str("Gold Plus"), ParentOrg: str("Humana Inc."), ContractDate: str("12/01/1998"),
	}}
	enrollment := []parser.EnrollmentRecord{{
		ContractID: "H0028", PlanID: &planID, SSA: &ssa, FIPS: &fips,
		State: str("AL"), County: str("Autauga"), Enrollment: &enrolled,
	}}

	got := JoinPlans(contracts, enrollment, Snapshot{Month: 4, Year: 2017})
	want := []PlanMonth{{
		ContractID: "H0028", PlanID: &planID,
		OrgType: str("Local CCP"), PlanType: str("HMO"), PartD: str("Yes"), SNP: str("No"),
		EGHP: str("No"), OrgName: str("CHA HMO"), OrgMarketingName: str("Humana"),
		PlanName: str("Gold Plus"), ParentOrg: str("Humana Inc."), ContractDate: str("12/01/1998"),
		SSA: &ssa, FIPS: &fips, State: str("AL"), County: str("Autauga"), Enrollment: &enrolled,
		Month: 4, Year: 2017,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JoinPlans mismatch (-want +got):\n%s", diff)
	}
}
