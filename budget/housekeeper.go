package budget

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/doshmon/doshmon/model"
	"github.com/doshmon/doshmon/todoist"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// StateAPI is the slice of the Todoist client the housekeeper needs.
type StateAPI interface {
	GetState(ctx context.Context, projectID string) (*todoist.State, error)
	Commit(ctx context.Context, commands []todoist.Command) error
}

// Housekeeper keeps a budget board tidy: it makes sure the expected
// monthly sections exist, strays are archived, the order matches the
// calendar, and every title reflects the section's spend against the
// monthly budget.
type Housekeeper struct {
	api    StateAPI
	conf   *model.BudgetConfig
	parser *CostParser
	dryRun bool
	now    func() time.Time
}

func NewHousekeeper(api StateAPI, conf *model.BudgetConfig) *Housekeeper {
	return &Housekeeper{
		api:    api,
		conf:   conf,
		parser: NewCostParser(conf.Currency),
		now:    time.Now,
	}
}

// SetDryRun makes Run log the planned commands without committing
// them.
func (h *Housekeeper) SetDryRun(dryRun bool) { h.dryRun = dryRun }

// SetClock overrides the housekeeper's clock.
func (h *Housekeeper) SetClock(now func() time.Time) { h.now = now }

// Run performs one full housekeeping pass against the configured
// project.
func (h *Housekeeper) Run(ctx context.Context) error {
	grip.Info("starting housekeeping")

	state, err := h.api.GetState(ctx, h.conf.Project)
	if err != nil {
		return errors.Wrap(err, "problem fetching project state")
	}

	commands := h.Plan(state)

	if h.dryRun {
		for _, cmd := range commands {
			grip.Info(message.Fields{
				"message": "dry run, skipping command",
				"type":    cmd.Type,
				"uuid":    cmd.UUID,
				"args":    cmd.Args,
			})
		}
		grip.Infof("dry run complete with %d planned commands", len(commands))
		return nil
	}

	return errors.Wrap(h.api.Commit(ctx, commands), "problem committing housekeeping commands")
}

// Plan computes the command batch that brings the given board state in
// line with the calendar. It mutates state to reflect the planned
// changes so later phases see the effects of earlier ones.
func (h *Housekeeper) Plan(state *todoist.State) []todoist.Command {
	now := h.now()
	expected := ExpectedSections(now)

	var commands []todoist.Command
	commands = append(commands, h.addMissingSections(state, expected)...)
	commands = append(commands, h.archiveUnwantedSections(state, expected, now)...)
	commands = append(commands, h.orderSections(state, expected))
	commands = append(commands, h.retitleSections(state, now)...)

	return commands
}

func (h *Housekeeper) addMissingSections(state *todoist.State, expected []string) []todoist.Command {
	grip.Info("adding missing sections")

	var commands []todoist.Command
	for _, base := range expected {
		if sectionWithBase(state.Sections, base) != nil {
			continue
		}

		name := base
		if base != BacklogSectionName {
			name = h.newSectionTitle(base)
		}

		tempID := todoist.RandomUUID()
		commands = append(commands, todoist.AddSection(name, h.conf.Project, tempID))
		state.Sections = append(state.Sections, todoist.Section{
			ID:        tempID,
			Name:      name,
			ProjectID: h.conf.Project,
		})
		grip.Infof("adding missing section %s", name)
	}

	grip.Infof("(%d missing sections to add)", len(commands))
	return commands
}

func (h *Housekeeper) archiveUnwantedSections(state *todoist.State, expected []string, now time.Time) []todoist.Command {
	grip.Info("archiving unwanted sections")

	currentID := currentSectionID(state.Sections, now)
	var commands []todoist.Command
	keep := make([]todoist.Section, 0, len(state.Sections))
	for _, section := range state.Sections {
		if matchesAny(section.Name, expected) {
			keep = append(keep, section)
			continue
		}

		moves := state.OpenSectionItems(section.ID)
		grip.Infof("archiving unwanted section %s (with %d tasks)", section.Name, len(moves))
		for _, item := range moves {
			commands = append(commands, todoist.MoveItem(item.ID, currentID))
			reassignItem(state, item.ID, currentID)
		}
		commands = append(commands, todoist.ArchiveSection(section.ID))
	}
	state.Sections = keep

	grip.Infof("(%d commands to archive unwanted sections)", len(commands))
	return commands
}

func (h *Housekeeper) orderSections(state *todoist.State, expected []string) todoist.Command {
	grip.Info("ensuring section order")

	rank := func(title string) int {
		for idx, base := range expected {
			if hasBaseName(title, base) {
				return idx
			}
		}
		return len(expected)
	}

	sections := make([]todoist.Section, len(state.Sections))
	copy(sections, state.Sections)
	sortSectionsStable(sections, rank)

	order := make([]todoist.SectionOrder, 0, len(sections))
	for idx, section := range sections {
		order = append(order, todoist.SectionOrder{ID: section.ID, SectionOrder: idx + 1})
	}

	return todoist.ReorderSections(order)
}

func (h *Housekeeper) retitleSections(state *todoist.State, now time.Time) []todoist.Command {
	grip.Info("checking section titles")

	currentID := currentSectionID(state.Sections, now)
	var commands []todoist.Command
	for _, section := range state.Sections {
		var want string
		if strings.HasPrefix(section.Name, BacklogSectionName) {
			want = BacklogSectionName
		} else {
			cost := h.parser.TotalCost(state.SectionItems(section.ID))
			want = h.sectionTitle(baseName(section.Name), cost)
			if section.ID == currentID && cost > h.conf.Budget {
				want = alarmTitle(want)
			}
		}

		if want != section.Name {
			commands = append(commands, todoist.RenameSection(section.ID, want))
			grip.Infof("renaming section %q to %q", section.Name, want)
		}
	}

	grip.Infof("(%d sections to rename)", len(commands))
	return commands
}

func (h *Housekeeper) newSectionTitle(base string) string {
	sym := h.parser.symbol
	return fmt.Sprintf("%s (%s0.00 / %s%s)", base, sym, sym, FormatAmount(h.conf.Budget))
}

func (h *Housekeeper) sectionTitle(base string, cost float64) string {
	sym := h.parser.symbol
	return fmt.Sprintf("%s (%s%s / %s%s)", base, sym, FormatAmount(cost), sym, FormatAmount(h.conf.Budget))
}

// alarmTitle swaps the spend parentheses for alarm markers on an
// over-budget section.
func alarmTitle(title string) string {
	title = strings.Replace(title, "(", "!!! ", 1)
	return strings.Replace(title, ")", " !!!", 1)
}

// baseName extracts the month-and-year part of an annotated section
// title.
func baseName(title string) string {
	words := strings.Fields(title)
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}

func matchesAny(title string, bases []string) bool {
	for _, base := range bases {
		if hasBaseName(title, base) {
			return true
		}
	}
	return false
}

func sectionWithBase(sections []todoist.Section, base string) *todoist.Section {
	for idx := range sections {
		if hasBaseName(sections[idx].Name, base) {
			return &sections[idx]
		}
	}
	return nil
}

func currentSectionID(sections []todoist.Section, now time.Time) string {
	if section := sectionWithBase(sections, CurrentSectionName(now)); section != nil {
		return section.ID
	}
	return ""
}

func reassignItem(state *todoist.State, itemID, sectionID string) {
	for idx := range state.Items {
		if state.Items[idx].ID == itemID {
			state.Items[idx].SectionID = sectionID
		}
	}
}

func sortSectionsStable(sections []todoist.Section, rank func(string) int) {
	sort.SliceStable(sections, func(i, j int) bool {
		return rank(sections[i].Name) < rank(sections[j].Name)
	})
}
