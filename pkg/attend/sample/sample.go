// Package sample generates the import-template artifact operators
// download before their first bulk submission.
package sample

import (
	"fmt"
	"strings"

	"github.com/harborlight/attend/pkg/attend/catalog"
)

// Header is the template header row, matching the canonical attendance
// schema after header normalization.
const Header = "Attendance_ID,Guest_ID,Count,Program,Date_Submitted"

// File renders the template: the header plus fixed sample rows
// demonstrating each accepted date format and one row per known special
// identifier. Only the year is parameterized.
func File(year int, specialIDs *catalog.SpecialIDCatalog) string {
	if specialIDs == nil {
		specialIDs = catalog.NewSpecialIDCatalog()
	}

	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteByte('\n')

	// One row per accepted date literal family.
	fmt.Fprintf(&sb, "ATT001,1001,1,Meal,%d-01-15\n", year)
	fmt.Fprintf(&sb, "ATT002,1002,1,Shower,1/15/%d\n", year)
	fmt.Fprintf(&sb, "ATT003,1003,1,Laundry,1/15/%d 9:30:00 AM\n", year)

	// One row per special identifier; specials are meal-only.
	for i, id := range specialIDs.IDs() {
		fmt.Fprintf(&sb, "ATT%03d,%s,10,Meal,%d-01-15\n", 4+i, id, year)
	}

	return sb.String()
}
