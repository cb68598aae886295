package commands

import "github.com/bwmarrin/discordgo"

func GetCommands() []*discordgo.ApplicationCommand {
	minZero := 0.0
	name := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "name",
			Description: desc,
			Required:    true,
		}
	}
	amount := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        "amount",
			Description: desc,
			Required:    true,
			MinValue:    &minZero,
		}
	}
	sub := func(n, desc string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        n,
			Description: desc,
			Options:     opts,
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:         "poker",
			Description:  "Track a poker session and settle it",
			DMPermission: boolPtr(false),
			Options: []*discordgo.ApplicationCommandOption{
				sub("start", "Open a table in this channel"),
				sub("stop", "Close the table and forget it"),
				sub("buyin", "Add to a player's buy-in", name("Player name"), amount("Buy-in amount")),
				sub("cashout", "Set what a player cashed out", name("Player name"), amount("Cash-out amount")),
				sub("house", "Mark a player as house", name("Player name"), &discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "enabled",
					Description: "Whether the player collects the house fee (default true)",
				}),
				sub("expense", "Record an expense a player paid for everyone",
					name("Player name"),
					amount("Expense amount"),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "memo",
						Description: "What it was for",
					},
				),
				sub("fee", "Set the house fee each regular player pays", amount("Fee per player")),
				sub("remove", "Remove a player from the table", name("Player name")),
				sub("status", "Show the table"),
				sub("gross", "Show every player's net position"),
				sub("settle", "Work out who pays whom"),
			},
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
