package table

import "github.com/susu3304/chipsettle/internal/settlement"

// Table is the draft of one channel's poker session. It only lives in memory
// and is discarded when the session stops.
type Table struct {
	ChannelID string
	HouseFee  float64
	Players   []*Seat
	Expenses  []Expense
}

// Seat is one player at a table. Players are keyed by name.
type Seat struct {
	ID      int
	Name    string
	BuyIn   float64
	CashOut float64
	IsHouse bool
}

// Expense is an amount a player fronted for the whole table.
type Expense struct {
	PayerName string
	Amount    float64
	Memo      string
}

type SettleResult struct {
	Result  settlement.Result
	Summary string
}
