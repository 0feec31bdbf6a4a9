// Package runtime drives the container engine on behalf of chat commands.
//
// Listing never fails: engine errors are logged and produce an empty result so a
// monitoring hiccup cannot break command handling. Actions return a *CommandError
// carrying the engine's diagnostic text.
package runtime

import (
	"context"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
)

// ListOptions narrows a container listing.
type ListOptions struct {
	// OnlyRunning asks the engine for running containers only.
	OnlyRunning bool
	// OnlyStopped drops records whose status starts with "up".
	OnlyStopped bool
}

type Runtime interface {
	List(ctx context.Context, opts ListOptions) []domain.ContainerRecord
	Perform(ctx context.Context, action domain.Action, name string) (string, error)
}
