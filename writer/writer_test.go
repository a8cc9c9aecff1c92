package writer

import (
	"path/filepath"
	"testing"

	"madata/loader"
	"madata/premium"
)

func strPtr(s string) *string { return &s }
func f64Ptr(f float64) *float64 { return &f }
func i64Ptr(n int64) *int64 { return &n }
func boolPtr(b bool) *bool { return &b }

func TestWritePremiumsRoundTrip(t *testing.T) {
	rows := []premium.PlanPremium{
		{
			ContractID:        "H1234",
			PlanID:            i64Ptr(1),
			State:             "AL",
			County:            "Autauga",
			Premium:           f64Ptr(10),
			PremiumPartC:      f64Ptr(10),
			PremiumPartDBasic: f64Ptr(25.1),
			Year:              2020,
		},
		{
			ContractID: "H5678",
			State:      "WY",
			County:     "Teton",
			Year:       2020,
		},
	}

	path := filepath.Join(t.TempDir(), "premiums.parquet")
	if err := WriteFile(path, rows); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile[premium.PlanPremium](path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d rows, want 2", len(got))
	}

	r := got[0]
	if r.ContractID != "H1234" || r.PlanID == nil || *r.PlanID != 1 {
		t.Errorf("row[0] key = %q/%v", r.ContractID, r.PlanID)
	}
	if r.PremiumPartDBasic == nil || *r.PremiumPartDBasic != 25.1 {
		t.Errorf("row[0].PremiumPartDBasic = %v, want 25.1", r.PremiumPartDBasic)
	}
	if r.PremiumPartDSupp != nil {
		t.Errorf("row[0].PremiumPartDSupp = %v, want nil", *r.PremiumPartDSupp)
	}

	r = got[1]
	if r.PlanID != nil {
		t.Errorf("row[1].PlanID = %d, want nil", *r.PlanID)
	}
	if r.Premium != nil {
		t.Errorf("row[1].Premium = %f, want nil", *r.Premium)
	}
	if r.Year != 2020 {
		t.Errorf("row[1].Year = %d, want 2020", r.Year)
	}
}

func TestWriterBatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.parquet")
	w, err := New[loader.ServiceAreaMonth](path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	january := []loader.ServiceAreaMonth{
		{ContractID: "H1", Partial: boolPtr(true), County: strPtr("Autauga"), Month: 1, Year: 2015},
		{ContractID: "H1", Partial: nil, County: strPtr("Baldwin"), Month: 1, Year: 2015},
	}
	february := []loader.ServiceAreaMonth{
		{ContractID: "H1", Partial: boolPtr(false), County: strPtr("Autauga"), Month: 2, Year: 2015},
	}
	for _, batch := range [][]loader.ServiceAreaMonth{january, february} {
		if _, err := w.Write(batch); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if w.Count() != 3 {
		t.Errorf("Count = %d, want 3", w.Count())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := ReadFile[loader.ServiceAreaMonth](path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("read %d rows, want 3", len(got))
	}
	if got[0].Partial == nil || !*got[0].Partial {
		t.Errorf("row[0].Partial = %v, want true", got[0].Partial)
	}
	if got[1].Partial != nil {
		t.Errorf("row[1].Partial = %v, want nil", *got[1].Partial)
	}
	if got[2].Month != 2 {
		t.Errorf("row[2].Month = %d, want 2", got[2].Month)
	}
}
