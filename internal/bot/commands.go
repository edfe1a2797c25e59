package bot

import "github.com/bwmarrin/discordgo"

const (
	commandName        = "hangul"
	subcommandEncode   = "encode"
	subcommandDecode   = "decode"
	optionValue        = "value"
	optionText         = "text"
	optionSpacing      = "spacing"
	optionKeepLargeOne = "keep-large-one"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        commandName,
		Description: "Convert between numbers and Sino-Korean numerals",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandEncode,
				Description: "Spell a number in Hangul (e.g. 1234 → 천이백삼십사)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optionValue,
						Description: "Integer below 10^20, e.g. -12 or 123456789",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        optionSpacing,
						Description: "Put a space between 만/억/조/경 groups",
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        optionKeepLargeOne,
						Description: "Write 일만 instead of 만",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcommandDecode,
				Description: "Read Hangul numerals back (e.g. 마이너스 십이 → -12)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optionText,
						Description: "Sino-Korean numeral text",
						Required:    true,
					},
				},
			},
		},
	},
}
