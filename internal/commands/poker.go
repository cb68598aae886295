package commands

import (
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/susu3304/chipsettle/internal/report"
	"github.com/susu3304/chipsettle/internal/table"
)

// discord rejects message content longer than this
const maxMessageLen = 2000

func HandlePoker(s *discordgo.Session, i *discordgo.InteractionCreate, svc *table.Service) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		respondText(s, i, "No subcommand given")
		return
	}
	respondText(s, i, RunPoker(svc, i.ChannelID, data.Options[0]))
}

// RunPoker executes one /poker subcommand against the channel's table and
// returns the reply text.
func RunPoker(svc *table.Service, channelID string, sub *discordgo.ApplicationCommandInteractionDataOption) string {
	opts := sub.Options

	switch sub.Name {
	case "start":
		if !svc.StartSession(channelID) {
			return "A table is already open in this channel"
		}
		return "Opened a table in this channel"
	case "stop":
		if err := svc.StopSession(channelID); err != nil {
			return errorText(err)
		}
		return "Closed the table"
	case "buyin":
		name, amt, ok := nameAndAmount(opts)
		if !ok {
			return "name and amount are required"
		}
		joined, err := svc.AddBuyIn(channelID, name, amt)
		if err != nil {
			return errorText(err)
		}
		return withJoined(fmt.Sprintf("Added buy-in of %s for %s", report.FormatAmount(amt), name), name, joined)
	case "cashout":
		name, amt, ok := nameAndAmount(opts)
		if !ok {
			return "name and amount are required"
		}
		joined, err := svc.SetCashOut(channelID, name, amt)
		if err != nil {
			return errorText(err)
		}
		return withJoined(fmt.Sprintf("%s cashed out %s", name, report.FormatAmount(amt)), name, joined)
	case "house":
		name := getStringOption(opts, "name")
		if name == nil {
			return "name is required"
		}
		enabled := true
		if v := getBoolOption(opts, "enabled"); v != nil {
			enabled = *v
		}
		joined, err := svc.SetHouse(channelID, *name, enabled)
		if err != nil {
			return errorText(err)
		}
		msg := fmt.Sprintf("%s is now the house", *name)
		if !enabled {
			msg = fmt.Sprintf("%s is now a regular player", *name)
		}
		return withJoined(msg, *name, joined)
	case "expense":
		name, amt, ok := nameAndAmount(opts)
		if !ok {
			return "name and amount are required"
		}
		memo := ""
		if m := getStringOption(opts, "memo"); m != nil {
			memo = *m
		}
		joined, err := svc.AddExpense(channelID, name, amt, memo)
		if err != nil {
			return errorText(err)
		}
		return withJoined(fmt.Sprintf("Recorded expense of %s paid by %s", report.FormatAmount(amt), name), name, joined)
	case "fee":
		amt := getNumberOption(opts, "amount")
		if amt == nil {
			return "amount is required"
		}
		if err := svc.SetHouseFee(channelID, *amt); err != nil {
			return errorText(err)
		}
		return fmt.Sprintf("House fee set to %s per regular player", report.FormatAmount(*amt))
	case "remove":
		name := getStringOption(opts, "name")
		if name == nil {
			return "name is required"
		}
		if err := svc.Remove(channelID, *name); err != nil {
			return errorText(err)
		}
		return fmt.Sprintf("Removed %s from the table", *name)
	case "status":
		txt, err := svc.Status(channelID)
		if err != nil {
			return errorText(err)
		}
		return txt
	case "gross":
		gross, err := svc.Gross(channelID)
		if err != nil {
			return errorText(err)
		}
		return report.GrossText(gross)
	case "settle":
		res, err := svc.Settle(channelID)
		if err != nil {
			return errorText(err)
		}
		return res.Summary
	default:
		return "Unknown subcommand"
	}
}

func withJoined(msg, name string, joined bool) string {
	if joined {
		return msg + fmt.Sprintf("\n%s joined the table", name)
	}
	return msg
}

func errorText(err error) string {
	if errors.Is(err, table.ErrNoSession) {
		return "No table is open in this channel. Use /poker start first"
	}
	return "Error: " + err.Error()
}

func nameAndAmount(opts []*discordgo.ApplicationCommandInteractionDataOption) (string, float64, bool) {
	name := getStringOption(opts, "name")
	amt := getNumberOption(opts, "amount")
	if name == nil || amt == nil {
		return "", 0, false
	}
	return *name, *amt, true
}

func respondText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if r := []rune(content); len(r) > maxMessageLen {
		content = string(r[:maxMessageLen-3]) + "..."
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		log.Printf("Failed to respond to interaction: %v", err)
	}
}
