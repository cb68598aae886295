package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/susu3304/chipsettle/internal/settlement"
)

var reasonLabels = map[settlement.Reason]string{
	settlement.ReasonGameBalance:   "game balance",
	settlement.ReasonHouseFee:      "house fee",
	settlement.ReasonSharedExpense: "shared expense",
}

// ReasonLabel returns the human readable name of a reason.
func ReasonLabel(r settlement.Reason) string {
	if l, ok := reasonLabels[r]; ok {
		return l
	}
	return string(r)
}

// FormatAmount renders a money amount with two decimals.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", settlement.Round2(v))
}

// FormatSigned renders an amount with an explicit sign.
func FormatSigned(v float64) string {
	v = settlement.Round2(v)
	if v > 0 {
		return "+" + FormatAmount(v)
	}
	return FormatAmount(v)
}

// BreakdownText explains a combined settlement, e.g.
// "game balance +30.00, house fee -10.00".
func BreakdownText(cs settlement.CombinedSettlement) string {
	parts := make([]string, 0, len(cs.Breakdown))
	for _, b := range cs.Breakdown {
		parts = append(parts, fmt.Sprintf("%s %s", ReasonLabel(b.Reason), FormatSigned(b.Amount)))
	}
	return strings.Join(parts, ", ")
}

// SettlementLine renders one settlement on a single line.
func SettlementLine(cs settlement.CombinedSettlement) string {
	if cs.Offsetting {
		return fmt.Sprintf("%s ↔ %s: offsetting, nothing to pay (%s)", cs.From, cs.To, BreakdownText(cs))
	}
	return fmt.Sprintf("%s → %s: %s (%s)", cs.From, cs.To, FormatAmount(cs.Amount), BreakdownText(cs))
}

// Summary renders a whole result as plain text.
func Summary(res settlement.Result) string {
	var b strings.Builder
	if !res.Balanced() {
		fmt.Fprintf(&b, "Warning: %s\n", res.UnaccountedMoney.Description)
		b.WriteString("No settlements are proposed until buy-ins and cash-outs match.")
		return b.String()
	}
	if len(res.Settlements) == 0 {
		b.WriteString("Nothing to settle.")
		return b.String()
	}
	b.WriteString("Settlements:\n")
	for _, cs := range res.Settlements {
		b.WriteString(SettlementLine(cs))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Position is a player's gross position, used for sorted listings.
type Position struct {
	Name   string
	Amount float64
}

// Positions sorts gross positions from the biggest receiver down.
func Positions(gross map[string]float64) []Position {
	out := make([]Position, 0, len(gross))
	for name, v := range gross {
		out = append(out, Position{Name: name, Amount: settlement.Round2(v)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// GrossText lists gross positions one per line.
func GrossText(gross map[string]float64) string {
	if len(gross) == 0 {
		return "No players."
	}
	var b strings.Builder
	b.WriteString("Gross positions:\n")
	for _, p := range Positions(gross) {
		fmt.Fprintf(&b, "%s: %s\n", p.Name, FormatSigned(p.Amount))
	}
	return strings.TrimRight(b.String(), "\n")
}
