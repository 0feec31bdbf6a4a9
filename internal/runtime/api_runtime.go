package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/docker/docker/api/types/container"
	"github.com/rs/zerolog"
)

// APIRuntime talks to the Docker Engine API instead of the CLI.
type APIRuntime struct {
	cli    dockerClient
	filter nameFilter
	logger zerolog.Logger
}

func NewAPIRuntime(cli dockerClient, containerFilter string, logger zerolog.Logger) *APIRuntime {
	return &APIRuntime{
		cli:    cli,
		filter: nameFilter(containerFilter),
		logger: logger,
	}
}

func (r *APIRuntime) List(ctx context.Context, opts ListOptions) []domain.ContainerRecord {
	summaries, err := r.cli.ContainerList(ctx, container.ListOptions{All: !opts.OnlyRunning})
	if err != nil {
		r.logger.Error().Err(err).Msg("Error fetching containers")
		return []domain.ContainerRecord{}
	}
	records := make([]domain.ContainerRecord, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, fromContainerSummary(s))
	}
	return filterRecords(records, opts, r.filter)
}

func (r *APIRuntime) Perform(ctx context.Context, action domain.Action, name string) (string, error) {
	var err error
	switch action {
	case domain.ActionStart:
		err = r.cli.ContainerStart(ctx, name, container.StartOptions{})
	case domain.ActionStop:
		err = r.cli.ContainerStop(ctx, name, container.StopOptions{})
	case domain.ActionRestart:
		err = r.cli.ContainerRestart(ctx, name, container.StopOptions{})
	default:
		return "", NewCommandError(action, name, fmt.Sprintf("unsupported action %q", action), nil)
	}
	if err != nil {
		return "", NewCommandError(action, name, err.Error(), err)
	}
	r.logger.Info().Str("action", string(action)).Str("container", name).Msg("Container action completed")
	return name, nil
}

func fromContainerSummary(s container.Summary) domain.ContainerRecord {
	name := s.ID
	if len(s.Names) > 0 {
		name = strings.TrimPrefix(s.Names[0], "/")
	}
	return domain.ContainerRecord{Name: name, Status: s.Status}
}
