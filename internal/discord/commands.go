package discord

import (
	"github.com/auto-dns/docker-discord-bot/internal/core"
	"github.com/auto-dns/docker-discord-bot/internal/util"
	"github.com/bwmarrin/discordgo"
)

func toApplicationCommands(table []core.Command) []*discordgo.ApplicationCommand {
	dmPermission := false
	return util.Map(table, func(c core.Command) *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:         c.Name,
			Description:  c.Description,
			DMPermission: &dmPermission,
			Options: util.Map(c.Params, func(p core.Param) *discordgo.ApplicationCommandOption {
				return &discordgo.ApplicationCommandOption{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         p.Name,
					Description:  p.Description,
					Required:     p.Required,
					Autocomplete: p.Autocomplete != nil,
				}
			}),
		}
	})
}

func toChoices(choices []core.Choice) []*discordgo.ApplicationCommandOptionChoice {
	return util.Map(choices, func(c core.Choice) *discordgo.ApplicationCommandOptionChoice {
		return &discordgo.ApplicationCommandOptionChoice{Name: c.Name, Value: c.Value}
	})
}
