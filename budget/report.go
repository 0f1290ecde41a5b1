package budget

import (
	"strings"
	"time"

	"github.com/doshmon/doshmon"
	"github.com/doshmon/doshmon/model"
	"github.com/doshmon/doshmon/todoist"
)

// BuildSpendReport summarizes a board snapshot: per-section spend
// against the monthly budget, task counts, and which section is the
// current month's.
func BuildSpendReport(state *todoist.State, conf *model.BudgetConfig, now time.Time) *model.SpendReport {
	parser := NewCostParser(conf.Currency)
	current := CurrentSectionName(now)

	report := &model.SpendReport{
		Report: model.SpendReportMetadata{
			Generated: now.Format(doshmon.ShortDateFormat),
			Month:     current,
			Budget:    conf.Budget,
			Currency:  conf.Currency,
		},
		Project:  conf.Project,
		Sections: []*model.SectionSpend{},
	}

	for _, section := range state.Sections {
		items := state.SectionItems(section.ID)
		spent := parser.TotalCost(items)

		spend := &model.SectionSpend{
			ID:         section.ID,
			Name:       section.Name,
			Spent:      spent,
			OpenTasks:  len(state.OpenSectionItems(section.ID)),
			TotalTasks: len(items),
			Current:    hasBaseName(section.Name, current),
		}
		if !strings.HasPrefix(section.Name, BacklogSectionName) {
			spend.Budget = conf.Budget
			spend.OverBudget = spent > conf.Budget
		}

		report.Sections = append(report.Sections, spend)
		report.Total += spent
	}

	return report
}
