package core

import (
	"context"
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/audit"
	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/auto-dns/docker-discord-bot/internal/hook"
	"github.com/auto-dns/docker-discord-bot/internal/runtime"
)

type containerRuntime interface {
	List(ctx context.Context, opts runtime.ListOptions) []domain.ContainerRecord
	Perform(ctx context.Context, action domain.Action, name string) (string, error)
}

type hookRunner interface {
	Run(ctx context.Context, containerName string) hook.Result
}

type notifier interface {
	Notify(ctx context.Context, ev domain.ActionEvent)
}

type journal interface {
	Record(ctx context.Context, e audit.Entry) error
	Recent(ctx context.Context, limit int64) ([]audit.Entry, error)
}

type generator interface {
	Subscribe(ctx context.Context) (<-chan domain.ContainerEvent, error)
}

type killTracker interface {
	MarkKilled(containerId, containerName string, at time.Time)
	KilledWithin(containerId string, at time.Time, window time.Duration) bool
	Forget(containerId string)
	Prune(before time.Time) int
	Len() int
}
