package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/susu3304/chipsettle/internal/report"
	"github.com/susu3304/chipsettle/internal/sessionfile"
	"github.com/susu3304/chipsettle/internal/settlement"
)

type options struct {
	fee    float64
	feeSet bool
	format string
	path   string
}

func main() {
	// Create a new slog logger with the PTerm handler
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error("settle failed", "error", err.Error())
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("settle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&opts.fee, "fee", 0, "House fee each regular player pays (overrides the file)")
	fs.StringVar(&opts.format, "format", "text", "Output format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: settle [options] <session.json|session.csv>\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "fee" {
			opts.feeSet = true
		}
	})
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("expected one session file, got %d", fs.NArg())
	}
	if opts.format != "text" && opts.format != "json" {
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}
	opts.path = fs.Arg(0)
	return opts, nil
}

func run(args []string, out io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	session, err := sessionfile.Load(opts.path)
	if err != nil {
		return err
	}
	if opts.feeSet {
		session.HouseFee = opts.fee
	}
	if err := settlement.Validate(session.Players, session.HouseFee); err != nil {
		return fmt.Errorf("invalid session: %w", err)
	}

	res := settlement.CalculateSettlements(session.Players, session.HouseFee)
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	gross := settlement.CalculateGross(session.Players, session.HouseFee)
	text, err := renderText(res, gross)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, text)
	return err
}

func renderText(res settlement.Result, gross map[string]float64) (string, error) {
	var sb strings.Builder

	sb.WriteString(pterm.DefaultSection.Sprint("Settlements"))
	switch {
	case !res.Balanced():
		sb.WriteString(pterm.Warning.Sprintln(res.UnaccountedMoney.Description))
		sb.WriteString(pterm.Sprintln("No settlements are proposed until buy-ins and cash-outs match."))
	case len(res.Settlements) == 0:
		sb.WriteString(pterm.Success.Sprintln("Nothing to settle."))
	default:
		data := pterm.TableData{{"From", "To", "Amount", "Breakdown"}}
		for _, cs := range res.Settlements {
			amount := report.FormatAmount(cs.Amount)
			if cs.Offsetting {
				amount = "offsetting"
			}
			data = append(data, []string{cs.From, cs.To, amount, report.BreakdownText(cs)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return "", fmt.Errorf("failed to render settlements: %w", err)
		}
		sb.WriteString(table + "\n")
	}

	sb.WriteString(pterm.DefaultSection.Sprint("Gross positions"))
	data := pterm.TableData{{"Player", "Net"}}
	for _, p := range report.Positions(gross) {
		data = append(data, []string{p.Name, report.FormatSigned(p.Amount)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render gross positions: %w", err)
	}
	sb.WriteString(table + "\n")

	return sb.String(), nil
}
