package settlement

import (
	"math"

	"github.com/shopspring/decimal"
)

// Epsilon is the smallest amount treated as money. Balances and nets within
// Epsilon of zero are considered settled.
const Epsilon = 0.01

var epsilon = decimal.NewFromFloat(Epsilon)

// Round2 rounds to two decimals, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func isZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// share divides total evenly by n. Callers guarantee n > 0.
func share(total float64, n int) decimal.Decimal {
	return decimal.NewFromFloat(total).Div(decimal.NewFromInt(int64(n)))
}

// cashFlow returns Σ buyIn − Σ cashOut computed without float drift.
func cashFlow(players []Player) decimal.Decimal {
	total := decimal.Zero
	for _, p := range players {
		total = total.Add(decimal.NewFromFloat(p.BuyIn)).Sub(decimal.NewFromFloat(p.CashOut))
	}
	return total
}
