package core

import (
	"context"
	"errors"
	"sync"

	"github.com/auto-dns/docker-discord-bot/internal/audit"
	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/auto-dns/docker-discord-bot/internal/hook"
	"github.com/auto-dns/docker-discord-bot/internal/runtime"
)

// calls is shared by the fakes so tests can assert the order of side effects.
type calls struct {
	mu  sync.Mutex
	log []string
}

func (c *calls) add(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, s)
}

func (c *calls) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.log...)
}

type fakeRuntime struct {
	calls     *calls
	records   []domain.ContainerRecord
	failures  map[string]string
	lastOpts  runtime.ListOptions
	performed []string
}

func (f *fakeRuntime) List(ctx context.Context, opts runtime.ListOptions) []domain.ContainerRecord {
	f.lastOpts = opts
	var out []domain.ContainerRecord
	for _, r := range f.records {
		if opts.OnlyRunning && !r.Running() {
			continue
		}
		if opts.OnlyStopped && r.Running() {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (f *fakeRuntime) Perform(ctx context.Context, action domain.Action, name string) (string, error) {
	f.calls.add("runtime " + string(action) + " " + name)
	if msg, ok := f.failures[name]; ok {
		return "", runtime.NewCommandError(action, name, msg, errors.New("exit status 1"))
	}
	return name, nil
}

type fakeHook struct {
	calls   *calls
	enabled bool
	result  hook.Result
}

func (f *fakeHook) Run(ctx context.Context, containerName string) hook.Result {
	if !f.enabled {
		return hook.Result{}
	}
	f.calls.add("hook " + containerName)
	return f.result
}

type fakeNotifier struct {
	calls  *calls
	mu     sync.Mutex
	events []domain.ActionEvent
}

func (f *fakeNotifier) Notify(ctx context.Context, ev domain.ActionEvent) {
	f.calls.add("notify " + string(ev.Action) + " " + ev.ContainerName)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
}

func (f *fakeNotifier) received() []domain.ActionEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ActionEvent(nil), f.events...)
}

type fakeJournal struct {
	entries   []audit.Entry
	recordErr error
	recentErr error
	lastLimit int64
}

func (f *fakeJournal) Record(ctx context.Context, e audit.Entry) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeJournal) Recent(ctx context.Context, limit int64) ([]audit.Entry, error) {
	f.lastLimit = limit
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	out := make([]audit.Entry, 0, len(f.entries))
	for i := len(f.entries) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

type fakeInteraction struct {
	calls    *calls
	actor    domain.Actor
	options  map[string]string
	deferErr error

	responses []string
	deferred  bool
	followups []string
	ctxErr    error
}

func (f *fakeInteraction) Actor() domain.Actor { return f.actor }

func (f *fakeInteraction) StringOption(name string) string { return f.options[name] }

func (f *fakeInteraction) Respond(ctx context.Context, content string) error {
	f.calls.add("respond")
	f.responses = append(f.responses, content)
	return nil
}

func (f *fakeInteraction) Defer(ctx context.Context) error {
	f.calls.add("defer")
	if f.deferErr != nil {
		return f.deferErr
	}
	f.deferred = true
	return nil
}

func (f *fakeInteraction) Followup(ctx context.Context, content string) error {
	f.calls.add("followup")
	f.ctxErr = ctx.Err()
	f.followups = append(f.followups, content)
	return nil
}
