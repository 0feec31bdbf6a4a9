package core

import (
	"context"
	"fmt"
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/auto-dns/docker-discord-bot/internal/runtime"
	"github.com/rs/zerolog"
)

const defaultRetryDelay = 5 * time.Second

// engineActor attributes relay notifications to the container engine.
var engineActor = domain.Actor{ID: "engine", Name: "docker engine"}

// CrashRelay reports containers that die on their own. A die event with a
// non-zero exit code counts as a crash unless a kill signal preceded it within
// the kill window, which is what docker stop/restart produce.
type CrashRelay struct {
	logger          zerolog.Logger
	gen             generator
	tracker         killTracker
	notifier        notifier
	containerFilter string
	killWindow      time.Duration
	retryDelay      time.Duration
}

func NewCrashRelay(logger zerolog.Logger, gen generator, tracker killTracker, n notifier, containerFilter string, killWindow time.Duration) *CrashRelay {
	return &CrashRelay{
		logger:          logger,
		gen:             gen,
		tracker:         tracker,
		notifier:        n,
		containerFilter: containerFilter,
		killWindow:      killWindow,
		retryDelay:      defaultRetryDelay,
	}
}

// Run relays events until ctx is cancelled. The first subscription must
// succeed; afterwards a closed event stream is re-subscribed after retryDelay.
func (cr *CrashRelay) Run(ctx context.Context) error {
	cr.logger.Info().Msg("Starting crash relay")

	eventCh, err := cr.gen.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to Docker events: %w", err)
	}

	for {
		if err := cr.drain(ctx, eventCh); err != nil {
			cr.logger.Info().Msg("Crash relay shutting down")
			return err
		}
		cr.logger.Error().Dur("retry_in", cr.retryDelay).Msg("Docker event stream closed, resubscribing")

		for {
			select {
			case <-ctx.Done():
				cr.logger.Info().Msg("Crash relay shutting down")
				return ctx.Err()
			case <-time.After(cr.retryDelay):
			}
			if eventCh, err = cr.gen.Subscribe(ctx); err == nil {
				break
			}
			cr.logger.Error().Err(err).Msg("Failed to resubscribe to Docker events")
		}
	}
}

// drain handles events until the channel closes (nil) or ctx ends (ctx.Err()).
func (cr *CrashRelay) drain(ctx context.Context, eventCh <-chan domain.ContainerEvent) error {
	for {
		select {
		case evt, ok := <-eventCh:
			if !ok {
				return nil
			}
			cr.handleEvent(ctx, evt)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (cr *CrashRelay) handleEvent(ctx context.Context, evt domain.ContainerEvent) {
	if evt.Container.Id == "" || !runtime.NameMatches(cr.containerFilter, evt.Container.Name) {
		return
	}
	if n := cr.tracker.Prune(evt.Time.Add(-cr.killWindow)); n > 0 {
		cr.logger.Debug().Int("tracked", cr.tracker.Len()).Msgf("Pruned %d stale kill records", n)
	}

	switch evt.EventType {
	case domain.EventTypeContainerKilled:
		cr.tracker.MarkKilled(evt.Container.Id, evt.Container.Name, evt.Time)
	case domain.EventTypeContainerOOM:
		cr.logger.Warn().Str("container", evt.Container.Name).Msg("Container ran out of memory")
	case domain.EventTypeContainerDied:
		killed := cr.tracker.KilledWithin(evt.Container.Id, evt.Time, cr.killWindow)
		cr.tracker.Forget(evt.Container.Id)
		exitCode := evt.ExitCode()
		if killed || exitCode == "" || exitCode == "0" {
			cr.logger.Debug().Str("container", evt.Container.Name).Str("exit_code", exitCode).Msg("Container exited normally")
			return
		}
		cr.logger.Warn().Str("container", evt.Container.Name).Str("exit_code", exitCode).Msg("Container crashed")
		cr.notifier.Notify(ctx, domain.ActionEvent{
			Actor:         engineActor,
			ContainerName: evt.Container.Name,
			Action:        domain.ActionCrash,
			ExitCode:      exitCode,
		})
	}
}
