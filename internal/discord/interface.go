package discord

import (
	"context"

	"github.com/auto-dns/docker-discord-bot/internal/core"
	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/bwmarrin/discordgo"
)

type responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type commandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

type dispatcher interface {
	Commands() []core.Command
	Handle(ctx context.Context, name string, ix core.Interaction) error
	Complete(ctx context.Context, actor domain.Actor, command, param, query string) []core.Choice
}
