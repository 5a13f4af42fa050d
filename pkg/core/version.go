package core

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Clock supplies the current time. Injected so version and date stamping
// stay deterministic under test.
type Clock func() time.Time

// versionPattern matches YYYY.M.rSEQ. The month is deliberately not
// zero-padded, unlike the dateModified field.
var versionPattern = regexp.MustCompile(`^(\d{4})\.(\d{1,2})\.r(\d+)$`)

// NextVersion computes the version string to stamp on save.
//
// Same year and month as now: the sequence increments. A different year or
// month, or a string that does not parse as YYYY.M.rSEQ, restarts the
// sequence at r1 for now's year and month.
func NextVersion(current string, now time.Time) string {
	year, month := now.Year(), int(now.Month())

	m := versionPattern.FindStringSubmatch(current)
	if m != nil {
		curYear, _ := strconv.Atoi(m[1])
		curMonth, _ := strconv.Atoi(m[2])
		seq, seqErr := strconv.Atoi(m[3])
		if curMonth >= 1 && curMonth <= 12 && seqErr == nil {
			if curYear == year && curMonth == month {
				return fmt.Sprintf("%d.%d.r%d", year, month, seq+1)
			}
			return fmt.Sprintf("%d.%d.r1", year, month)
		}
	}
	return fmt.Sprintf("%d.%d.r1", year, month)
}

// TodayISO formats now as YYYY-MM-DD with zero-padded month and day.
func TodayISO(now time.Time) string {
	return now.Format("2006-01-02")
}
