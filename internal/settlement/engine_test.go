package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSettlements(t *testing.T) {
	tests := []struct {
		name    string
		players []Player
		fee     float64
		want    []CombinedSettlement
	}{
		{
			name: "simple game without house fee",
			players: []Player{
				{ID: 1, Name: "A", BuyIn: 100, CashOut: 80},
				{ID: 2, Name: "B", BuyIn: 100, CashOut: 120},
			},
			want: []CombinedSettlement{
				{From: "A", To: "B", Amount: 20, Breakdown: []Breakdown{{20, ReasonGameBalance}}},
			},
		},
		{
			name: "house player nets fee against game balance",
			players: []Player{
				{ID: 1, Name: "House", BuyIn: 30, CashOut: 0, IsHouse: true},
				{ID: 2, Name: "B", BuyIn: 30, CashOut: 60},
			},
			fee: 10,
			want: []CombinedSettlement{
				{From: "House", To: "B", Amount: 20, Breakdown: []Breakdown{
					{30, ReasonGameBalance},
					{-10, ReasonHouseFee},
				}},
			},
		},
		{
			name: "several regular players pay the house",
			players: []Player{
				{ID: 1, Name: "House", IsHouse: true},
				{ID: 2, Name: "A", BuyIn: 100, CashOut: 80},
				{ID: 3, Name: "B", BuyIn: 100, CashOut: 120},
			},
			fee: 10,
			want: []CombinedSettlement{
				{From: "A", To: "B", Amount: 20, Breakdown: []Breakdown{{20, ReasonGameBalance}}},
				{From: "A", To: "House", Amount: 10, Breakdown: []Breakdown{{10, ReasonHouseFee}}},
				{From: "B", To: "House", Amount: 10, Breakdown: []Breakdown{{10, ReasonHouseFee}}},
			},
		},
		{
			name: "fee is split across house players",
			players: []Player{
				{ID: 1, Name: "House1", IsHouse: true},
				{ID: 2, Name: "House2", IsHouse: true},
				{ID: 3, Name: "A", BuyIn: 100, CashOut: 80},
				{ID: 4, Name: "B", BuyIn: 100, CashOut: 120},
			},
			fee: 10,
			want: []CombinedSettlement{
				{From: "A", To: "B", Amount: 20, Breakdown: []Breakdown{{20, ReasonGameBalance}}},
				{From: "A", To: "House1", Amount: 5, Breakdown: []Breakdown{{5, ReasonHouseFee}}},
				{From: "A", To: "House2", Amount: 5, Breakdown: []Breakdown{{5, ReasonHouseFee}}},
				{From: "B", To: "House1", Amount: 5, Breakdown: []Breakdown{{5, ReasonHouseFee}}},
				{From: "B", To: "House2", Amount: 5, Breakdown: []Breakdown{{5, ReasonHouseFee}}},
			},
		},
		{
			name: "game balance offset by opposite house fee is kept with zero amount",
			players: []Player{
				{ID: 1, Name: "House", BuyIn: 100, CashOut: 90, IsHouse: true},
				{ID: 2, Name: "A", BuyIn: 100, CashOut: 110},
			},
			fee: 10,
			want: []CombinedSettlement{
				{From: "House", To: "A", Amount: 0, Offsetting: true, Breakdown: []Breakdown{
					{10, ReasonGameBalance},
					{-10, ReasonHouseFee},
				}},
			},
		},
		{
			name: "a one cent net is within tolerance and counts as offsetting",
			players: []Player{
				{ID: 1, Name: "House", BuyIn: 100, CashOut: 89.99, IsHouse: true},
				{ID: 2, Name: "A", BuyIn: 100, CashOut: 110.01},
			},
			fee: 10,
			want: []CombinedSettlement{
				{From: "House", To: "A", Amount: 0, Offsetting: true, Breakdown: []Breakdown{
					{10.01, ReasonGameBalance},
					{-10, ReasonHouseFee},
				}},
			},
		},
		{
			name: "a two cent net is paid",
			players: []Player{
				{ID: 1, Name: "House", BuyIn: 100, CashOut: 89.98, IsHouse: true},
				{ID: 2, Name: "A", BuyIn: 100, CashOut: 110.02},
			},
			fee: 10,
			want: []CombinedSettlement{
				{From: "House", To: "A", Amount: 0.02, Breakdown: []Breakdown{
					{10.02, ReasonGameBalance},
					{-10, ReasonHouseFee},
				}},
			},
		},
		{
			name: "shared expense is reimbursed by everyone else",
			players: []Player{
				{ID: 1, Name: "A", BuyIn: 50, CashOut: 50, Expenses: 30},
				{ID: 2, Name: "B", BuyIn: 50, CashOut: 50},
				{ID: 3, Name: "C", BuyIn: 50, CashOut: 50},
			},
			want: []CombinedSettlement{
				{From: "B", To: "A", Amount: 10, Breakdown: []Breakdown{{10, ReasonSharedExpense}}},
				{From: "C", To: "A", Amount: 10, Breakdown: []Breakdown{{10, ReasonSharedExpense}}},
			},
		},
		{
			name: "expense share is rounded to cents",
			players: []Player{
				{ID: 1, Name: "A", Expenses: 10},
				{ID: 2, Name: "B"},
				{ID: 3, Name: "C"},
			},
			want: []CombinedSettlement{
				{From: "B", To: "A", Amount: 3.33, Breakdown: []Breakdown{{3.33, ReasonSharedExpense}}},
				{From: "C", To: "A", Amount: 3.33, Breakdown: []Breakdown{{3.33, ReasonSharedExpense}}},
			},
		},
		{
			name: "fee without house players is ignored",
			players: []Player{
				{ID: 1, Name: "A", BuyIn: 100, CashOut: 80},
				{ID: 2, Name: "B", BuyIn: 100, CashOut: 120},
			},
			fee: 15,
			want: []CombinedSettlement{
				{From: "A", To: "B", Amount: 20, Breakdown: []Breakdown{{20, ReasonGameBalance}}},
			},
		},
		{
			name: "break-even players need no settlement",
			players: []Player{
				{ID: 1, Name: "A", BuyIn: 100, CashOut: 100},
				{ID: 2, Name: "B", BuyIn: 40, CashOut: 40},
			},
			want: []CombinedSettlement{},
		},
		{
			name:    "no players",
			players: nil,
			want:    []CombinedSettlement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateSettlements(tt.players, tt.fee)

			assert.Equal(t, UnaccountedBalanced, res.UnaccountedMoney.Type)
			assert.Zero(t, res.UnaccountedMoney.Amount)
			assert.Equal(t, tt.want, res.Settlements)
		})
	}
}

func TestCalculateSettlementsUnaccountedMoney(t *testing.T) {
	tests := []struct {
		name       string
		players    []Player
		wantType   UnaccountedType
		wantAmount float64
		wantDesc   string
	}{
		{
			name: "cash-outs exceed buy-ins",
			players: []Player{
				{ID: 1, Name: "A", BuyIn: 100, CashOut: 150},
				{ID: 2, Name: "B", BuyIn: 100, CashOut: 100},
			},
			wantType:   UnaccountedExcess,
			wantAmount: 50,
			wantDesc:   "there is an excess of 50.00 that cannot be distributed",
		},
		{
			name: "buy-ins exceed cash-outs",
			players: []Player{
				{ID: 1, Name: "A", BuyIn: 100, CashOut: 50},
				{ID: 2, Name: "B", BuyIn: 100, CashOut: 100},
			},
			wantType:   UnaccountedMissing,
			wantAmount: 50,
			wantDesc:   "50.00 is missing to balance the accounts",
		},
		{
			name: "cent level gap is reported",
			players: []Player{
				{ID: 1, Name: "A", BuyIn: 10.1, CashOut: 0},
				{ID: 2, Name: "B", BuyIn: 0, CashOut: 10.08},
			},
			wantType:   UnaccountedMissing,
			wantAmount: 0.02,
			wantDesc:   "0.02 is missing to balance the accounts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateSettlements(tt.players, 0)

			assert.Empty(t, res.Settlements)
			assert.NotNil(t, res.Settlements)
			assert.False(t, res.Balanced())
			assert.Equal(t, tt.wantType, res.UnaccountedMoney.Type)
			assert.InDelta(t, tt.wantAmount, res.UnaccountedMoney.Amount, 1e-9)
			assert.Equal(t, tt.wantDesc, res.UnaccountedMoney.Description)
		})
	}
}

func TestCalculateSettlementsToleratesFloatDrift(t *testing.T) {
	players := []Player{
		{ID: 1, Name: "A", BuyIn: 0.1, CashOut: 0},
		{ID: 2, Name: "B", BuyIn: 0.2, CashOut: 0},
		{ID: 3, Name: "C", BuyIn: 0, CashOut: 0.3},
	}

	res := CalculateSettlements(players, 0)

	require.True(t, res.Balanced())
	assert.Equal(t, "the accounts are balanced", res.UnaccountedMoney.Description)
	require.Len(t, res.Settlements, 2)
	assert.Equal(t, CombinedSettlement{
		From: "B", To: "C", Amount: 0.2, Breakdown: []Breakdown{{0.2, ReasonGameBalance}},
	}, res.Settlements[0])
	assert.Equal(t, CombinedSettlement{
		From: "A", To: "C", Amount: 0.1, Breakdown: []Breakdown{{0.1, ReasonGameBalance}},
	}, res.Settlements[1])
}

func TestCalculateSettlementsIsIdempotent(t *testing.T) {
	players := samplePlayers()

	first := CalculateSettlements(players, 12)
	second := CalculateSettlements(players, 12)

	assert.Equal(t, first, second)
}

func TestGameBalanceObligationsOrder(t *testing.T) {
	players := []Player{
		{Name: "small loser", BuyIn: 50, CashOut: 40},
		{Name: "small winner", BuyIn: 50, CashOut: 60},
		{Name: "big loser", BuyIn: 100, CashOut: 0},
		{Name: "big winner", BuyIn: 100, CashOut: 200},
	}

	got := gameBalanceObligations(players)

	assert.Equal(t, []Obligation{
		{From: "big loser", To: "big winner", Amount: 100, Reason: ReasonGameBalance},
		{From: "small loser", To: "small winner", Amount: 10, Reason: ReasonGameBalance},
	}, got)
}

func TestGameBalanceObligationsSplitsDebt(t *testing.T) {
	players := []Player{
		{Name: "A", BuyIn: 100, CashOut: 0},
		{Name: "B", BuyIn: 100, CashOut: 170},
		{Name: "C", BuyIn: 100, CashOut: 130},
	}

	got := gameBalanceObligations(players)

	assert.Equal(t, []Obligation{
		{From: "A", To: "B", Amount: 70, Reason: ReasonGameBalance},
		{From: "A", To: "C", Amount: 30, Reason: ReasonGameBalance},
	}, got)
}

func TestBuildObligationsEmitsReasonsInOrder(t *testing.T) {
	players := []Player{
		{Name: "House", IsHouse: true, Expenses: 20},
		{Name: "A", BuyIn: 100, CashOut: 70},
		{Name: "B", BuyIn: 100, CashOut: 130},
	}

	got := BuildObligations(players, 5)

	var reasons []Reason
	for _, o := range got {
		reasons = append(reasons, o.Reason)
	}
	assert.Equal(t, []Reason{
		ReasonGameBalance,
		ReasonHouseFee, ReasonHouseFee,
		ReasonSharedExpense, ReasonSharedExpense,
	}, reasons)
	assert.InDelta(t, 6.67, got[3].Amount, 1e-9)
	assert.Equal(t, "House", got[3].To)
}

func samplePlayers() []Player {
	return []Player{
		{ID: 1, Name: "Dana", BuyIn: 200, CashOut: 35.5, IsHouse: true},
		{ID: 2, Name: "Eli", BuyIn: 150, CashOut: 310, Expenses: 42},
		{ID: 3, Name: "Noa", BuyIn: 100, CashOut: 0},
		{ID: 4, Name: "Omer", BuyIn: 50, CashOut: 154.5, Expenses: 18},
		{ID: 5, Name: "Tal", BuyIn: 100, CashOut: 100},
	}
}
