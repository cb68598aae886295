package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/susu3304/chipsettle/internal/report"
	"github.com/susu3304/chipsettle/internal/settlement"
)

var (
	ErrNoSession     = errors.New("no session has been started in this channel")
	ErrUnknownPlayer = errors.New("player is not at the table")
	ErrNoPlayers     = errors.New("at least two players are required")
)

type Service struct {
	mu    sync.Mutex
	store map[string]*Table
}

func NewService() *Service {
	return &Service{store: make(map[string]*Table)}
}

// StartSession opens a table for the channel. It reports false when a table
// was already open.
func (s *Service) StartSession(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.store[channelID]; ok {
		return false
	}
	s.store[channelID] = &Table{ChannelID: channelID}
	return true
}

func (s *Service) StopSession(channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.store[channelID]; !ok {
		return ErrNoSession
	}
	delete(s.store, channelID)
	return nil
}

// AddBuyIn adds amount to the player's buy-in, seating the player if needed.
// Returns true when the player was newly seated.
func (s *Service) AddBuyIn(channelID, name string, amount float64) (bool, error) {
	if err := settlement.CheckAmount("amount", amount); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.store[channelID]
	if !ok {
		return false, ErrNoSession
	}
	seat, joined, err := t.seat(name)
	if err != nil {
		return false, err
	}
	seat.BuyIn += amount
	return joined, nil
}

// SetCashOut records what the player left the table with.
func (s *Service) SetCashOut(channelID, name string, amount float64) (bool, error) {
	if err := settlement.CheckAmount("amount", amount); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.store[channelID]
	if !ok {
		return false, ErrNoSession
	}
	seat, joined, err := t.seat(name)
	if err != nil {
		return false, err
	}
	seat.CashOut = amount
	return joined, nil
}

func (s *Service) SetHouse(channelID, name string, isHouse bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.store[channelID]
	if !ok {
		return false, ErrNoSession
	}
	seat, joined, err := t.seat(name)
	if err != nil {
		return false, err
	}
	seat.IsHouse = isHouse
	return joined, nil
}

func (s *Service) SetHouseFee(channelID string, fee float64) error {
	if err := settlement.CheckAmount("house fee", fee); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.store[channelID]
	if !ok {
		return ErrNoSession
	}
	t.HouseFee = fee
	return nil
}

// AddExpense records an amount the player paid for the whole table.
func (s *Service) AddExpense(channelID, name string, amount float64, memo string) (bool, error) {
	if err := settlement.CheckAmount("amount", amount); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.store[channelID]
	if !ok {
		return false, ErrNoSession
	}
	seat, joined, err := t.seat(name)
	if err != nil {
		return false, err
	}
	t.Expenses = append(t.Expenses, Expense{PayerName: seat.Name, Amount: amount, Memo: memo})
	return joined, nil
}

// Remove takes a player and their expenses off the table.
func (s *Service) Remove(channelID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.store[channelID]
	if !ok {
		return ErrNoSession
	}
	name = strings.TrimSpace(name)
	idx := t.find(name)
	if idx < 0 {
		return fmt.Errorf("%s: %w", name, ErrUnknownPlayer)
	}
	t.Players = append(t.Players[:idx], t.Players[idx+1:]...)
	kept := t.Expenses[:0]
	for _, e := range t.Expenses {
		if e.PayerName != name {
			kept = append(kept, e)
		}
	}
	t.Expenses = kept
	return nil
}

// Players returns the table as engine input, in seating order.
func (s *Service) Players(channelID string) ([]settlement.Player, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.store[channelID]
	if !ok {
		return nil, 0, ErrNoSession
	}
	return t.players(), t.HouseFee, nil
}

func (s *Service) Status(channelID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.store[channelID]
	if !ok {
		return "", ErrNoSession
	}
	if len(t.Players) == 0 {
		return "No players yet.", nil
	}
	var b strings.Builder
	var in, out float64
	fmt.Fprintf(&b, "House fee per player: %s\n", report.FormatAmount(t.HouseFee))
	for _, p := range t.players() {
		in += p.BuyIn
		out += p.CashOut
		line := fmt.Sprintf("%s buy-in=%s cash-out=%s", p.Name, report.FormatAmount(p.BuyIn), report.FormatAmount(p.CashOut))
		if p.IsHouse {
			line += " [house]"
		}
		if p.Expenses > 0 {
			line += " expenses=" + report.FormatAmount(p.Expenses)
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "Total buy-in: %s, total cash-out: %s", report.FormatAmount(in), report.FormatAmount(out))
	return b.String(), nil
}

// Gross returns each player's net position for the current table.
func (s *Service) Gross(channelID string) (map[string]float64, error) {
	players, fee, err := s.Players(channelID)
	if err != nil {
		return nil, err
	}
	return settlement.CalculateGross(players, fee), nil
}

func (s *Service) Settle(channelID string) (*SettleResult, error) {
	players, fee, err := s.Players(channelID)
	if err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, ErrNoPlayers
	}
	if err := settlement.Validate(players, fee); err != nil {
		return nil, err
	}
	res := settlement.CalculateSettlements(players, fee)
	return &SettleResult{Result: res, Summary: report.Summary(res)}, nil
}

// Channels lists the channels with an open table.
func (s *Service) Channels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.store))
	for id := range s.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (t *Table) find(name string) int {
	for i, p := range t.Players {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func (t *Table) seat(name string) (*Seat, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, settlement.ErrEmptyName
	}
	if idx := t.find(name); idx >= 0 {
		return t.Players[idx], false, nil
	}
	seat := &Seat{ID: t.nextID(), Name: name}
	t.Players = append(t.Players, seat)
	return seat, true, nil
}

func (t *Table) nextID() int {
	id := 1
	for _, p := range t.Players {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	return id
}

func (t *Table) players() []settlement.Player {
	expenses := make(map[string]float64, len(t.Expenses))
	for _, e := range t.Expenses {
		expenses[e.PayerName] += e.Amount
	}
	out := make([]settlement.Player, 0, len(t.Players))
	for _, p := range t.Players {
		out = append(out, settlement.Player{
			ID:       p.ID,
			Name:     p.Name,
			BuyIn:    p.BuyIn,
			CashOut:  p.CashOut,
			IsHouse:  p.IsHouse,
			Expenses: expenses[p.Name],
		})
	}
	return out
}
