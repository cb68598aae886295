package settlement

// Player is one participant of a session. Name is the identity the engine
// settles on; ID only matters to callers that list players.
type Player struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	BuyIn    float64 `json:"buyIn"`
	CashOut  float64 `json:"cashOut"`
	IsHouse  bool    `json:"isHouse,omitempty"`
	Expenses float64 `json:"expenses,omitempty"`
}

// Reason tags why money moves between two players.
type Reason string

const (
	ReasonHouseFee      Reason = "house_fee"
	ReasonGameBalance   Reason = "game_balance"
	ReasonSharedExpense Reason = "shared_expense"
)

// Reasons lists every reason in the order obligations are emitted.
func Reasons() []Reason {
	return []Reason{ReasonGameBalance, ReasonHouseFee, ReasonSharedExpense}
}

func (r Reason) Valid() bool {
	switch r {
	case ReasonHouseFee, ReasonGameBalance, ReasonSharedExpense:
		return true
	}
	return false
}

// Obligation is a single directed flow of money with one cause.
type Obligation struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Reason Reason  `json:"reason"`
}

type Breakdown struct {
	Amount float64 `json:"amount"`
	Reason Reason  `json:"reason"`
}

// CombinedSettlement is the net transfer between one pair of players.
// Breakdown amounts are signed relative to From; Offsetting marks a pair
// whose obligations cancel out and therefore needs no payment.
type CombinedSettlement struct {
	From       string      `json:"from"`
	To         string      `json:"to"`
	Amount     float64     `json:"amount"`
	Breakdown  []Breakdown `json:"breakdown"`
	Offsetting bool        `json:"offsetting,omitempty"`
}

type UnaccountedType string

const (
	UnaccountedMissing  UnaccountedType = "missing"
	UnaccountedExcess   UnaccountedType = "excess"
	UnaccountedBalanced UnaccountedType = "balanced"
)

type UnaccountedMoney struct {
	Type        UnaccountedType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description"`
}

// Result holds the settlements of a session. Settlements is always empty
// unless UnaccountedMoney is balanced.
type Result struct {
	Settlements      []CombinedSettlement `json:"settlements"`
	UnaccountedMoney UnaccountedMoney     `json:"unaccountedMoney"`
}

func (r Result) Balanced() bool {
	return r.UnaccountedMoney.Type == UnaccountedBalanced
}
