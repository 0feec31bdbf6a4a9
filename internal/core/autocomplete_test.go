package core

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_RunningAndStopped(t *testing.T) {
	h := newHarness(false)
	h.runtime.records = []domain.ContainerRecord{
		{Name: "Web-Frontend", Status: "Up 3 hours"},
		{Name: "web-backend", Status: "Exited (1) 5 minutes ago"},
		{Name: "db", Status: "up 2 days"},
	}
	ctx := context.Background()

	for _, cmd := range []string{"restart", "stop"} {
		got := h.dispatcher.Complete(ctx, operator, cmd, containerParam, "WEB")
		assert.Equal(t, []Choice{{Name: "Web-Frontend (Up 3 hours)", Value: "Web-Frontend"}}, got, cmd)
		assert.True(t, h.runtime.lastOpts.OnlyRunning)
	}

	got := h.dispatcher.Complete(ctx, operator, "start", containerParam, "web")
	assert.Equal(t, []Choice{{Name: "web-backend (Exited (1) 5 minutes ago)", Value: "web-backend"}}, got)
	assert.True(t, h.runtime.lastOpts.OnlyStopped)

	all := h.dispatcher.Complete(ctx, operator, "stop", containerParam, "")
	assert.Len(t, all, 2)
}

func TestComplete_CapsAt25(t *testing.T) {
	h := newHarness(false)
	h.runtime.records = nil
	for i := 0; i < 40; i++ {
		h.runtime.records = append(h.runtime.records, domain.ContainerRecord{Name: fmt.Sprintf("svc-%02d", i), Status: "Up"})
	}

	got := h.dispatcher.Complete(context.Background(), admin, "restart", containerParam, "svc")
	require.Len(t, got, maxChoices)
	assert.Equal(t, "svc-00", got[0].Value)
	for _, c := range got {
		assert.Contains(t, strings.ToLower(c.Value), "svc")
	}
}

func TestComplete_NoMatchesIsEmpty(t *testing.T) {
	h := newHarness(false)
	got := h.dispatcher.Complete(context.Background(), operator, "restart", containerParam, "zzz")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestComplete_TruncatesLabels(t *testing.T) {
	h := newHarness(false)
	long := strings.Repeat("a", 120)
	h.runtime.records = []domain.ContainerRecord{{Name: long, Status: "Up 1 second"}}

	got := h.dispatcher.Complete(context.Background(), operator, "stop", containerParam, "")
	require.Len(t, got, 1)
	assert.Len(t, []rune(got[0].Name), maxChoiceName)
	assert.True(t, strings.HasSuffix(got[0].Name, "…"))
	assert.Equal(t, long, got[0].Value)
}

func TestComplete_Guards(t *testing.T) {
	h := newHarness(false)
	ctx := context.Background()

	assert.Empty(t, h.dispatcher.Complete(ctx, stranger, "restart", containerParam, ""))
	assert.Nil(t, h.dispatcher.Complete(ctx, operator, "containers", containerParam, ""))
	assert.Nil(t, h.dispatcher.Complete(ctx, operator, "restart", "other", ""))
	assert.Nil(t, h.dispatcher.Complete(ctx, operator, "nope", containerParam, ""))
}
