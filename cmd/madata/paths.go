package main

import (
	"fmt"
	"path/filepath"
)

// Dataset names one family of monthly CMS extracts on disk.
type Dataset struct {
	Category string
	Prefix   string
}

var (
	contractInfo   = Dataset{Category: "enrollment", Prefix: "CPSC_Contract_Info"}
	enrollmentInfo = Dataset{Category: "enrollment", Prefix: "CPSC_Enrollment_Info"}
	serviceArea    = Dataset{Category: "service-area", Prefix: "MA_Cnty_SA"}
	penetration    = Dataset{Category: "penetration", Prefix: "State_County_Penetration_MA"}
)

// Path returns {root}/{category}/Extracted Data/{prefix}_{year}_{month}.csv.
func (d Dataset) Path(root string, year int, month string) string {
	return filepath.Join(root, d.Category, "Extracted Data",
		fmt.Sprintf("%s_%d_%s.csv", d.Prefix, year, month))
}

func allMonths() []string {
	months := make([]string, 12)
	for i := range months {
		months[i] = fmt.Sprintf("%02d", i+1)
	}
	return months
}
