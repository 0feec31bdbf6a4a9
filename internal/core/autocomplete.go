package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/auto-dns/docker-discord-bot/internal/runtime"
	"github.com/auto-dns/docker-discord-bot/internal/util"
)

func (d *Dispatcher) runningCandidates(ctx context.Context, query string) []Choice {
	return d.candidates(ctx, runtime.ListOptions{OnlyRunning: true}, query)
}

func (d *Dispatcher) stoppedCandidates(ctx context.Context, query string) []Choice {
	return d.candidates(ctx, runtime.ListOptions{OnlyStopped: true}, query)
}

func (d *Dispatcher) candidates(ctx context.Context, opts runtime.ListOptions, query string) []Choice {
	q := strings.ToLower(query)
	matches := util.Filter(d.runtime.List(ctx, opts), func(r domain.ContainerRecord) bool {
		return strings.Contains(strings.ToLower(r.Name), q)
	})
	return util.Map(util.Take(matches, maxChoices), func(r domain.ContainerRecord) Choice {
		return Choice{Name: truncate(fmt.Sprintf("%s (%s)", r.Name, r.Status), maxChoiceName), Value: r.Name}
	})
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
