package budget

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/doshmon/doshmon"
	"github.com/doshmon/doshmon/todoist"
	"github.com/mongodb/grip"
)

// CostParser extracts spend amounts from task titles. A task's cost is
// the first whitespace-separated token starting with the currency
// symbol, after stripping every character that is not a letter, digit,
// dot, space, or the symbol itself.
type CostParser struct {
	symbol string
	strip  *regexp.Regexp
}

func NewCostParser(symbol string) *CostParser {
	if symbol == "" {
		symbol = doshmon.DefaultCurrencySymbol
	}

	return &CostParser{
		symbol: symbol,
		strip:  regexp.MustCompile(`[^a-zA-Z0-9. ` + regexp.QuoteMeta(symbol) + `]+`),
	}
}

// TaskCost returns the cost encoded in a task title, and whether the
// title carried one at all.
func (p *CostParser) TaskCost(content string) (float64, bool) {
	trimmed := p.strip.ReplaceAllString(content, "")
	for _, word := range strings.Fields(trimmed) {
		if !strings.HasPrefix(word, p.symbol) {
			continue
		}

		cost, err := strconv.ParseFloat(strings.TrimPrefix(word, p.symbol), 64)
		if err != nil {
			grip.Warningf("ignoring malformed cost token '%s' in task '%s'", word, content)
			return 0, false
		}

		return cost, true
	}

	return 0, false
}

// TotalCost sums the costs of the given tasks.
func (p *CostParser) TotalCost(items []todoist.Item) float64 {
	var total float64
	for _, item := range items {
		cost, ok := p.TaskCost(item.Content)
		if ok {
			total += cost
		}
	}

	return total
}

// FormatAmount renders a spend amount the way section titles carry
// them: no trailing zeros, no thousands separators.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
