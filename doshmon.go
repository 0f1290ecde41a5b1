/*
Package doshmon holds a number of application level constants and shared
resources for the doshmon application.
*/
package doshmon

import (
	"time"
)

const (
	// SectionDateFormat is the layout of monthly budget section
	// titles on the board ("January 2026").
	SectionDateFormat = "January 2006"

	ShortDateFormat = "2006-01-02T15:04"

	// DefaultMonthlyBudget is the spend ceiling applied to each
	// monthly section when the configuration does not override it.
	DefaultMonthlyBudget = 500

	DefaultCurrencySymbol = "£"

	DefaultSyncAPIRoot = "https://api.todoist.com/sync/v9"

	DefaultHousekeepingInterval = time.Hour
)

// BuildRevision stores the commit in the git repository at build time
// and is specified with -ldflags at build time.
var BuildRevision = ""
