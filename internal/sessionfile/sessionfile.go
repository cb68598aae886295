// Package sessionfile reads finished poker sessions from JSON or CSV files.
package sessionfile

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/susu3304/chipsettle/internal/settlement"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported session file format")
	ErrMissingColumn     = errors.New("missing required column")
)

type Session struct {
	HouseFee float64             `json:"houseFee"`
	Players  []settlement.Player `json:"players"`
}

// Load picks the reader from the file extension.
func Load(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

func ReadJSON(r io.Reader) (*Session, error) {
	var s Session
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	assignIDs(s.Players)
	return &s, nil
}

// ReadCSV reads one player per row. The header names the columns, in any
// order: name, buyIn and cashOut are required, isHouse and expenses are
// optional. Empty cells read as zero or false. CSV sessions carry no house
// fee.
func ReadCSV(r io.Reader) (*Session, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "buyin", "cashout"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%s: %w", required, ErrMissingColumn)
		}
	}

	s := &Session{Players: []settlement.Player{}}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		p, err := parseRow(record, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		s.Players = append(s.Players, p)
	}
	assignIDs(s.Players)
	return s, nil
}

func parseRow(record []string, cols map[string]int) (settlement.Player, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	number := func(name string) (float64, error) {
		v := cell(name)
		if v == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%s %q is not a number", name, v)
		}
		return f, nil
	}

	p := settlement.Player{Name: cell("name")}
	var err error
	if p.BuyIn, err = number("buyin"); err != nil {
		return p, err
	}
	if p.CashOut, err = number("cashout"); err != nil {
		return p, err
	}
	if p.Expenses, err = number("expenses"); err != nil {
		return p, err
	}
	if v := cell("ishouse"); v != "" {
		if p.IsHouse, err = strconv.ParseBool(v); err != nil {
			return p, fmt.Errorf("isHouse %q is not a boolean", v)
		}
	}
	return p, nil
}

// assignIDs numbers players from 1 when the file left IDs out.
func assignIDs(players []settlement.Player) {
	for i := range players {
		if players[i].ID == 0 {
			players[i].ID = i + 1
		}
	}
}
