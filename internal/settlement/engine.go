package settlement

import (
	"fmt"
	"math"
	"sort"
)

type balance struct {
	name string
	net  float64
}

// CalculateSettlements turns a session into the net payments between its
// players. When buy-ins and cash-outs do not match the result carries no
// settlements, only the unaccounted gap.
func CalculateSettlements(players []Player, houseFee float64) Result {
	obligations := BuildObligations(players, houseFee)

	gap := cashFlow(players).InexactFloat64()
	if math.Abs(gap) > Epsilon {
		return Result{
			Settlements:      []CombinedSettlement{},
			UnaccountedMoney: newUnaccountedMoney(gap),
		}
	}

	return Result{
		Settlements:      CombineSettlements(obligations),
		UnaccountedMoney: newUnaccountedMoney(0),
	}
}

// BuildObligations lists every single-reason flow of the session: game
// balance transfers first, then house fees, then shared expenses.
func BuildObligations(players []Player, houseFee float64) []Obligation {
	var out []Obligation
	out = append(out, gameBalanceObligations(players)...)
	out = append(out, houseFeeObligations(players, houseFee)...)
	out = append(out, sharedExpenseObligations(players)...)
	return out
}

// gameBalanceObligations matches the biggest losers with the biggest winners
// until one side runs out.
func gameBalanceObligations(players []Player) []Obligation {
	var debtors, creditors []balance
	for _, p := range players {
		net := p.CashOut - p.BuyIn
		switch {
		case net < 0:
			debtors = append(debtors, balance{name: p.Name, net: net})
		case net > 0:
			creditors = append(creditors, balance{name: p.Name, net: net})
		}
	}
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].net < debtors[j].net })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].net > creditors[j].net })

	var out []Obligation
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d := &debtors[i]
		c := &creditors[j]

		amt := math.Min(math.Abs(d.net), c.net)
		if amt > 0 {
			out = append(out, Obligation{
				From:   d.name,
				To:     c.name,
				Amount: Round2(amt),
				Reason: ReasonGameBalance,
			})
		}
		d.net += amt
		c.net -= amt

		if isZero(d.net) {
			i++
		}
		if isZero(c.net) {
			j++
		}
	}
	return out
}

func houseFeeObligations(players []Player, houseFee float64) []Obligation {
	house, regular := splitHouse(players)
	if len(house) == 0 || houseFee <= 0 {
		return nil
	}
	perHouse := Round2(share(houseFee, len(house)).InexactFloat64())

	out := make([]Obligation, 0, len(regular)*len(house))
	for _, p := range regular {
		for _, h := range house {
			out = append(out, Obligation{
				From:   p.Name,
				To:     h.Name,
				Amount: perHouse,
				Reason: ReasonHouseFee,
			})
		}
	}
	return out
}

func sharedExpenseObligations(players []Player) []Obligation {
	var out []Obligation
	for _, payer := range players {
		if payer.Expenses <= 0 {
			continue
		}
		perPlayer := Round2(share(payer.Expenses, len(players)).InexactFloat64())
		for _, p := range players {
			if p.Name == payer.Name {
				continue
			}
			out = append(out, Obligation{
				From:   p.Name,
				To:     payer.Name,
				Amount: perPlayer,
				Reason: ReasonSharedExpense,
			})
		}
	}
	return out
}

func newUnaccountedMoney(gap float64) UnaccountedMoney {
	amount := Round2(math.Abs(gap))
	switch {
	case gap > 0:
		return UnaccountedMoney{
			Type:        UnaccountedMissing,
			Amount:      amount,
			Description: fmt.Sprintf("%.2f is missing to balance the accounts", amount),
		}
	case gap < 0:
		return UnaccountedMoney{
			Type:        UnaccountedExcess,
			Amount:      amount,
			Description: fmt.Sprintf("there is an excess of %.2f that cannot be distributed", amount),
		}
	default:
		return UnaccountedMoney{
			Type:        UnaccountedBalanced,
			Amount:      0,
			Description: "the accounts are balanced",
		}
	}
}
