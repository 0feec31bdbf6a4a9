// Package discord connects the command dispatcher to the Discord gateway.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

type Bot struct {
	session    *discordgo.Session
	dispatcher dispatcher
	guildID    string
	logger     zerolog.Logger
}

func NewBot(token, guildID string, d dispatcher, logger zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		session:    session,
		dispatcher: d,
		guildID:    guildID,
		logger:     logger,
	}, nil
}

// Run connects to the gateway and serves interactions until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.onReady(ctx, s, r)
	})
	b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.route(ctx, s, i)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening discord gateway: %w", err)
	}
	<-ctx.Done()

	b.logger.Info().Msg("Closing discord session")
	if err := b.session.Close(); err != nil {
		b.logger.Error().Err(err).Msg("Error closing discord session")
	}
	return ctx.Err()
}

func (b *Bot) onReady(ctx context.Context, r commandRegistrar, ready *discordgo.Ready) {
	cmds := toApplicationCommands(b.dispatcher.Commands())
	if _, err := r.ApplicationCommandBulkOverwrite(ready.User.ID, b.guildID, cmds, discordgo.WithContext(ctx)); err != nil {
		b.logger.Error().Err(err).Msg("Failed to sync slash commands")
		return
	}
	b.logger.Info().Msgf("Logged in as %s, %d slash commands synced", ready.User.String(), len(cmds))
}

// route runs on discordgo's per-event goroutine, so blocking engine calls here
// do not stall the gateway.
func (b *Bot) route(ctx context.Context, r responder, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if err := b.dispatcher.Handle(ctx, name, &interaction{r: r, ix: i.Interaction}); err != nil {
			b.logger.Error().Err(err).Str("command", name).Msg("Error handling command")
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.autocomplete(ctx, r, i.Interaction)
	}
}

func (b *Bot) autocomplete(ctx context.Context, r responder, ix *discordgo.Interaction) {
	data := ix.ApplicationCommandData()
	var param, query string
	for _, opt := range data.Options {
		if opt.Focused {
			param = opt.Name
			query, _ = opt.Value.(string)
			break
		}
	}

	choices := b.dispatcher.Complete(ctx, actorFrom(ix), data.Name, param, query)
	err := r.InteractionRespond(ix, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: toChoices(choices)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		b.logger.Error().Err(err).Str("command", data.Name).Msg("Error answering autocomplete")
	}
}
