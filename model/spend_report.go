package model

//SpendReport provides the structure for the report returned by the
//spend reporting tool and the daemon's admin API.
type SpendReport struct {
	Report   SpendReportMetadata `json:"report"`
	Project  string              `json:"project"`
	Sections []*SectionSpend     `json:"sections"`
	Total    float64             `json:"total"`
}

//SpendReportMetadata provides time information on the overall structure.
type SpendReportMetadata struct {
	Generated string  `json:"generated,omitempty"`
	Month     string  `json:"month,omitempty"`
	Budget    float64 `json:"budget,omitempty"`
	Currency  string  `json:"currency,omitempty"`
}

//SectionSpend holds the spend accounting for a single board section.
type SectionSpend struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Spent      float64 `json:"spent"`
	Budget     float64 `json:"budget,omitempty"`
	OverBudget bool    `json:"over_budget,omitempty"`
	OpenTasks  int     `json:"open_tasks"`
	TotalTasks int     `json:"total_tasks"`
	Current    bool    `json:"current,omitempty"`
}
