package core

import (
	"context"
	"fmt"
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/auth"
	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/rs/zerolog"
)

const (
	containerParam = "container"

	// maxChoices is the chat platform's limit for autocomplete results.
	maxChoices = 25
	// maxChoiceName is the chat platform's limit for a choice label.
	maxChoiceName = 100
	// maxMessageLength is the chat platform's limit for a message body.
	maxMessageLength = 2000

	notAuthorizedMessage  = "❌ You don't have permission to do that."
	unknownCommandMessage = "❓ Unknown command. It may have been removed from this bot."
)

// Dispatcher binds the runtime, hook, notifier and journal to chat commands.
type Dispatcher struct {
	logger       zerolog.Logger
	allowedRole  int64
	hostname     string
	runtime      containerRuntime
	hook         hookRunner
	notifier     notifier
	journal      journal
	historyLimit int64
	now          func() time.Time

	table    []Command
	commands map[string]Command
}

type Option func(d *Dispatcher)

// WithJournal enables action journaling and the /history command.
func WithJournal(j journal, historyLimit int64) Option {
	return func(d *Dispatcher) {
		d.journal = j
		d.historyLimit = historyLimit
	}
}

func NewDispatcher(logger zerolog.Logger, allowedRole int64, hostname string, rt containerRuntime, hr hookRunner, n notifier, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:      logger,
		allowedRole: allowedRole,
		hostname:    hostname,
		runtime:     rt,
		hook:        hr,
		notifier:    n,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.table = d.buildTable()
	d.commands = make(map[string]Command, len(d.table))
	for _, c := range d.table {
		d.commands[c.Name] = c
	}
	return d
}

// Commands returns the registration table in declaration order.
func (d *Dispatcher) Commands() []Command {
	return append([]Command(nil), d.table...)
}

// Handle runs a slash command: authorize, acknowledge, then run the handler.
// The handler runs on a context detached from ctx's cancellation so a
// dispatched container action always runs to completion.
func (d *Dispatcher) Handle(ctx context.Context, name string, ix Interaction) error {
	cmd, ok := d.commands[name]
	if !ok {
		if err := ix.Respond(ctx, unknownCommandMessage); err != nil {
			d.logger.Warn().Err(err).Str("command", name).Msg("Failed to answer unknown command")
		}
		return &UnknownCommandError{Command: name}
	}

	actor := ix.Actor()
	if !auth.IsAuthorized(actor, d.allowedRole) {
		denied := NewAuthorizationDeniedError(actor.String(), name)
		d.logger.Warn().Err(denied).Msg("Rejected command")
		return ix.Respond(ctx, notAuthorizedMessage)
	}

	if err := ix.Defer(ctx); err != nil {
		return fmt.Errorf("acknowledging /%s: %w", name, err)
	}

	d.logger.Info().Str("command", name).Str("user", actor.String()).Msg("Running command")
	return cmd.Handler(context.WithoutCancel(ctx), ix)
}

// Complete returns autocomplete suggestions for a command parameter. Unauthorized
// actors and parameters without a provider get no suggestions.
func (d *Dispatcher) Complete(ctx context.Context, actor domain.Actor, command, param, query string) []Choice {
	cmd, ok := d.commands[command]
	if !ok {
		return nil
	}
	p, ok := cmd.param(param)
	if !ok || p.Autocomplete == nil {
		return nil
	}
	if !auth.IsAuthorized(actor, d.allowedRole) {
		return []Choice{}
	}
	return p.Autocomplete(ctx, query)
}

func (d *Dispatcher) buildTable() []Command {
	table := []Command{
		{
			Name:        "containers",
			Description: "List all Docker containers",
			Handler:     d.listContainers,
		},
		{
			Name:        "restart",
			Description: "Restart a Docker container by name",
			Params: []Param{{
				Name:         containerParam,
				Description:  "The name of the Docker container to restart",
				Required:     true,
				Autocomplete: d.runningCandidates,
			}},
			Handler: d.actionHandler(domain.ActionRestart),
		},
		{
			Name:        "stop",
			Description: "Stop a Docker container by name",
			Params: []Param{{
				Name:         containerParam,
				Description:  "The name of the Docker container to stop",
				Required:     true,
				Autocomplete: d.runningCandidates,
			}},
			Handler: d.actionHandler(domain.ActionStop),
		},
		{
			Name:        "start",
			Description: "Start a Docker container by name",
			Params: []Param{{
				Name:         containerParam,
				Description:  "The name of the Docker container to start",
				Required:     true,
				Autocomplete: d.stoppedCandidates,
			}},
			Handler: d.actionHandler(domain.ActionStart),
		},
	}
	if d.journal != nil {
		table = append(table, Command{
			Name:        "history",
			Description: "Show recent container actions on this host",
			Handler:     d.showHistory,
		})
	}
	return table
}
