package settlement

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidAmount  = errors.New("amount must be a finite number")
	ErrEmptyName      = errors.New("player name is required")
	ErrDuplicateName  = errors.New("player name is already used")
)

// Validate rejects sessions the engine would settle incorrectly. The engine
// itself does not validate, so callers run this first.
func Validate(players []Player, houseFee float64) error {
	if err := CheckAmount("house fee", houseFee); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(players))
	for idx, p := range players {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("player #%d: %w", idx+1, ErrEmptyName)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("player %q: %w", p.Name, ErrDuplicateName)
		}
		seen[p.Name] = struct{}{}

		for _, f := range []struct {
			field string
			v     float64
		}{
			{"buy-in", p.BuyIn},
			{"cash-out", p.CashOut},
			{"expenses", p.Expenses},
		} {
			if err := CheckAmount(f.field, f.v); err != nil {
				return fmt.Errorf("player %q: %w", p.Name, err)
			}
		}
	}
	return nil
}

// CheckAmount rejects a negative or non-finite amount for the named field.
func CheckAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", field, ErrInvalidAmount)
	}
	if v < 0 {
		return fmt.Errorf("%s %.2f: %w", field, v, ErrNegativeAmount)
	}
	return nil
}
