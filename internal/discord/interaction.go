package discord

import (
	"context"
	"strconv"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/bwmarrin/discordgo"
)

// interaction adapts a discordgo application-command interaction to core.Interaction.
type interaction struct {
	r  responder
	ix *discordgo.Interaction
}

func (i *interaction) Actor() domain.Actor {
	return actorFrom(i.ix)
}

func (i *interaction) StringOption(name string) string {
	for _, opt := range i.ix.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

func (i *interaction) Respond(ctx context.Context, content string) error {
	return i.r.InteractionRespond(i.ix, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
}

func (i *interaction) Defer(ctx context.Context) error {
	return i.r.InteractionRespond(i.ix, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
}

func (i *interaction) Followup(ctx context.Context, content string) error {
	_, err := i.r.FollowupMessageCreate(i.ix, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	return err
}

// actorFrom maps the invoking member onto an Actor. Direct-message invocations
// carry no member and therefore no roles or permissions.
func actorFrom(ix *discordgo.Interaction) domain.Actor {
	if ix.Member != nil && ix.Member.User != nil {
		m := ix.Member
		roles := make([]int64, 0, len(m.Roles))
		for _, r := range m.Roles {
			id, err := strconv.ParseInt(r, 10, 64)
			if err != nil {
				continue
			}
			roles = append(roles, id)
		}
		return domain.Actor{
			ID:            m.User.ID,
			Name:          m.User.Username,
			Administrator: m.Permissions&discordgo.PermissionAdministrator != 0,
			RoleIDs:       roles,
		}
	}
	if ix.User != nil {
		return domain.Actor{ID: ix.User.ID, Name: ix.User.Username}
	}
	return domain.Actor{}
}
