package event

import (
	"context"
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/docker/docker/api/types/events"
	"github.com/docker/docker/api/types/filters"
	"github.com/rs/zerolog"
)

type DockerGenerator struct {
	logger zerolog.Logger
	cli    dockerClient
}

func NewDockerGenerator(cli dockerClient, logger zerolog.Logger) *DockerGenerator {
	return &DockerGenerator{
		logger: logger,
		cli:    cli,
	}
}

// Subscribe streams container kill, die and oom events until ctx is cancelled.
func (dg *DockerGenerator) Subscribe(ctx context.Context) (<-chan domain.ContainerEvent, error) {
	const bufferSize = 100
	out := make(chan domain.ContainerEvent, bufferSize)

	go func() {
		defer close(out)

		// Create a filter to get container events
		filterArgs := filters.NewArgs()
		filterArgs.Add("type", string(events.ContainerEventType))
		filterArgs.Add("event", domain.EventTypeContainerKilled)
		filterArgs.Add("event", domain.EventTypeContainerDied)
		filterArgs.Add("event", domain.EventTypeContainerOOM)

		options := events.ListOptions{
			Filters: filterArgs,
			Since:   time.Now().Format(time.RFC3339Nano),
		}
		eventCh, errCh := dg.cli.Events(ctx, options)

		for {
			select {
			case <-ctx.Done():
				dg.logger.Info().Msg("Docker event generator cancelled by context")
				return
			case err, ok := <-errCh:
				if !ok {
					return
				}
				if err != nil {
					dg.logger.Error().Err(err).Msg("Error from Docker events stream")
					return
				}
			case msg, ok := <-eventCh:
				if !ok {
					dg.logger.Info().Msg("Docker events channel closed")
					return
				}

				event, convErr := fromEventsMessage(msg)
				if convErr != nil {
					if _, ok := convErr.(*UnsupportedEventTypeError); ok {
						dg.logger.Debug().Err(convErr).Msg("Error converting docker event message to container event")
					} else {
						dg.logger.Error().Err(convErr).Msg("converting docker event message to container event")
					}
					continue
				}

				dg.logger.Debug().Msgf("Received Docker event: %+v", event)
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
