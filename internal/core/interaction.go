package core

import (
	"context"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
)

// Interaction is one slash-command invocation as seen by the dispatcher.
// Every reply is private to the invoking user.
type Interaction interface {
	Actor() domain.Actor
	StringOption(name string) string
	// Respond sends the single immediate reply.
	Respond(ctx context.Context, content string) error
	// Defer acknowledges the interaction; the result is sent later with Followup.
	Defer(ctx context.Context) error
	Followup(ctx context.Context, content string) error
}

type HandlerFunc func(ctx context.Context, ix Interaction) error

type AutocompleteFunc func(ctx context.Context, query string) []Choice

// Choice is an autocomplete suggestion.
type Choice struct {
	Name  string
	Value string
}

// Param declares a string parameter of a command.
type Param struct {
	Name         string
	Description  string
	Required     bool
	Autocomplete AutocompleteFunc
}

// Command is one entry of the registration table.
type Command struct {
	Name        string
	Description string
	Params      []Param
	Handler     HandlerFunc
}

func (c Command) param(name string) (Param, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
