package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/audit"
	"github.com/auto-dns/docker-discord-bot/internal/config"
	"github.com/auto-dns/docker-discord-bot/internal/core"
	"github.com/auto-dns/docker-discord-bot/internal/discord"
	"github.com/auto-dns/docker-discord-bot/internal/event"
	"github.com/auto-dns/docker-discord-bot/internal/hook"
	"github.com/auto-dns/docker-discord-bot/internal/notify"
	"github.com/auto-dns/docker-discord-bot/internal/runtime"
	"github.com/auto-dns/docker-discord-bot/internal/state"
	dockerCli "github.com/docker/docker/client"
	"github.com/rs/zerolog"
	clientv3 "go.etcd.io/etcd/client/v3"
)

type App struct {
	dockerClient *dockerCli.Client
	journal      *audit.EtcdJournal
	bot          *discord.Bot
	relay        *core.CrashRelay
	logger       zerolog.Logger
}

// New creates a new App by wiring up all dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{logger: logger}

	// Docker API client, only needed for the api backend or the event watcher
	if cfg.Runtime.Backend == config.BackendAPI || cfg.Watch.Enabled {
		dockerClient, err := dockerCli.NewClientWithOpts(dockerCli.FromEnv, dockerCli.WithAPIVersionNegotiation())
		if err != nil {
			return nil, fmt.Errorf("failed to create docker client: %w", err)
		}
		a.dockerClient = dockerClient
	}

	var rt runtime.Runtime
	switch cfg.Runtime.Backend {
	case config.BackendAPI:
		rt = runtime.NewAPIRuntime(a.dockerClient, cfg.Runtime.ContainerFilter, logger.With().Str("component", "runtime").Logger())
	default:
		rt = runtime.NewCLIRuntime(cfg.Runtime.Engine, cfg.Runtime.ContainerFilter, logger.With().Str("component", "runtime").Logger())
	}

	hookRunner := hook.NewRunner(cfg.Hook, logger.With().Str("component", "hook").Logger())
	notifier := notify.NewNotifier(cfg.Notifier, cfg.App.Hostname, hookRunner.Enabled(), logger.With().Str("component", "notifier").Logger())

	var opts []core.Option
	if cfg.Audit.Enabled() {
		etcdClient, err := clientv3.New(clientv3.Config{
			Endpoints:   cfg.Audit.Endpoints,
			DialTimeout: time.Duration(cfg.Audit.DialTimeout * float64(time.Second)),
		})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to connect to etcd: %w", err)
		}
		a.journal = audit.NewEtcdJournal(etcdClient, cfg.Audit, cfg.App.Hostname, logger.With().Str("component", "audit").Logger())
		opts = append(opts, core.WithJournal(a.journal, cfg.Audit.HistoryLimit))
	}

	dispatcher := core.NewDispatcher(logger.With().Str("component", "dispatcher").Logger(), cfg.Discord.AllowedRole, cfg.App.Hostname, rt, hookRunner, notifier, opts...)

	bot, err := discord.NewBot(cfg.Discord.Token, cfg.Discord.GuildID, dispatcher, logger.With().Str("component", "discord").Logger())
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.bot = bot

	if cfg.Watch.Enabled {
		gen := event.NewDockerGenerator(a.dockerClient, logger.With().Str("component", "events").Logger())
		a.relay = core.NewCrashRelay(
			logger.With().Str("component", "relay").Logger(),
			gen,
			state.NewMemoryState(),
			notifier,
			cfg.Runtime.ContainerFilter,
			time.Duration(cfg.Watch.KillWindow*float64(time.Second)),
		)
	}

	return a, nil
}

// Run starts the crash relay, if enabled, and serves chat commands until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Error closing clients")
		}
	}()
	a.logger.Info().Msg("Application starting")

	if a.relay != nil {
		go func() {
			if err := a.relay.Run(ctx); err != nil && ctx.Err() == nil {
				a.logger.Error().Err(err).Msg("Crash relay stopped")
			}
		}()
	}

	err := a.bot.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) Close() error {
	var firstErr error
	if a.dockerClient != nil {
		if err := a.dockerClient.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close docker client: %w", err)
		}
		a.dockerClient = nil
	}
	if a.journal != nil {
		if err := a.journal.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close audit journal: %w", err)
		}
		a.journal = nil
	}
	return firstErr
}
