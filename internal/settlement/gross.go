package settlement

import "github.com/shopspring/decimal"

// CalculateGross returns every player's net position keyed by name, after
// folding in game balance, house fee and shared expenses. Positive means the
// player receives money, negative means the player pays.
func CalculateGross(players []Player, houseFee float64) map[string]float64 {
	sums := make(map[string]decimal.Decimal, len(players))
	add := func(name string, v decimal.Decimal) {
		sums[name] = sums[name].Add(v)
	}

	for _, p := range players {
		add(p.Name, decimal.NewFromFloat(p.CashOut).Sub(decimal.NewFromFloat(p.BuyIn)))
	}

	house, regular := splitHouse(players)
	if len(house) > 0 && houseFee > 0 {
		fee := decimal.NewFromFloat(houseFee)
		perHouse := share(houseFee, len(house))
		for _, p := range regular {
			add(p.Name, fee.Neg())
			for _, h := range house {
				add(h.Name, perHouse)
			}
		}
	}

	for _, payer := range players {
		if payer.Expenses <= 0 {
			continue
		}
		perPlayer := share(payer.Expenses, len(players))
		for _, p := range players {
			if p.Name == payer.Name {
				continue
			}
			add(p.Name, perPlayer.Neg())
			add(payer.Name, perPlayer)
		}
	}

	out := make(map[string]float64, len(sums))
	for name, v := range sums {
		out[name] = v.InexactFloat64()
	}
	return out
}

func splitHouse(players []Player) (house, regular []Player) {
	for _, p := range players {
		if p.IsHouse {
			house = append(house, p)
		} else {
			regular = append(regular, p)
		}
	}
	return house, regular
}
