package budget

import (
	"sort"
	"strings"
	"time"

	"github.com/doshmon/doshmon"
)

// BacklogSectionName is the fixed title of the board's holding section
// for unscheduled spending.
const BacklogSectionName = "Backlog"

// ExpectedSections returns the ordered base names the board should
// have: the next twelve months starting with the current one (months
// earlier in the calendar year than the current month roll over to
// next year), with the backlog section in second position.
func ExpectedSections(now time.Time) []string {
	dates := make([]time.Time, 0, 12)
	for month := time.January; month <= time.December; month++ {
		year := now.Year()
		if month < now.Month() {
			year++
		}
		dates = append(dates, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	expected := make([]string, 0, len(dates)+1)
	for _, date := range dates {
		expected = append(expected, date.Format(doshmon.SectionDateFormat))
	}

	out := make([]string, 0, len(expected)+1)
	out = append(out, expected[0], BacklogSectionName)
	out = append(out, expected[1:]...)

	return out
}

// CurrentSectionName returns the base name of the current month's
// section.
func CurrentSectionName(now time.Time) string {
	return now.Format(doshmon.SectionDateFormat)
}

// hasBaseName reports whether a section title starts with the given
// base name, ignoring case; titles carry spend annotations after the
// base name.
func hasBaseName(title, base string) bool {
	return strings.HasPrefix(strings.ToLower(title), strings.ToLower(base))
}
