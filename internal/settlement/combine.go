package settlement

import "github.com/shopspring/decimal"

const pairSeparator = "\x00"

// pairKey is the same for (a, b) and (b, a).
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + pairSeparator + b
}

// CombineSettlements nets all obligations between each pair of players into a
// single transfer. Pairs are returned in order of their first obligation.
//
// A pair whose obligations cancel out is kept with a zero amount and marked
// Offsetting, so the breakdown still shows what was netted. Cancelling out
// means a net of at most one cent, so an Offsetting breakdown may sum to
// +-0.01 rather than to its zero Amount. A pair with nothing but zero amounts
// is dropped.
func CombineSettlements(obligations []Obligation) []CombinedSettlement {
	var keys []string
	groups := make(map[string][]Obligation)
	for _, o := range obligations {
		k := pairKey(o.From, o.To)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], o)
	}

	out := make([]CombinedSettlement, 0, len(keys))
	for _, k := range keys {
		if cs, ok := combineGroup(groups[k]); ok {
			out = append(out, cs)
		}
	}
	return out
}

func combineGroup(group []Obligation) (CombinedSettlement, bool) {
	first := group[0]

	net := decimal.Zero
	for _, o := range group {
		amt := decimal.NewFromFloat(o.Amount)
		if o.From == first.From {
			net = net.Add(amt)
		} else {
			net = net.Sub(amt)
		}
	}

	from, to := first.From, first.To
	if net.IsNegative() {
		from, to = to, from
	}

	cs := CombinedSettlement{
		From:      from,
		To:        to,
		Amount:    Round2(net.Abs().InexactFloat64()),
		Breakdown: make([]Breakdown, 0, len(group)),
	}
	nonZero := false
	for _, o := range group {
		amt := o.Amount
		if amt != 0 {
			nonZero = true
			if o.From != from {
				amt = -amt
			}
		}
		cs.Breakdown = append(cs.Breakdown, Breakdown{Amount: amt, Reason: o.Reason})
	}

	if net.Abs().LessThanOrEqual(epsilon) {
		if !nonZero {
			return CombinedSettlement{}, false
		}
		cs.Amount = 0
		cs.Offsetting = true
	}
	return cs, true
}
