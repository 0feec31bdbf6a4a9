package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/auto-dns/docker-discord-bot/internal/audit"
	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/auto-dns/docker-discord-bot/internal/runtime"
	"github.com/auto-dns/docker-discord-bot/internal/util"
)

type actionWording struct {
	glyph  string
	past   string
	gerund string
}

var wordings = map[domain.Action]actionWording{
	domain.ActionStart:   {glyph: "🟢", past: "Started", gerund: "starting"},
	domain.ActionStop:    {glyph: "🔴", past: "Stopped", gerund: "stopping"},
	domain.ActionRestart: {glyph: "🟡", past: "Restarted", gerund: "restarting"},
}

// runsHook reports whether the pre-action hook precedes the action. It runs
// before the container comes up so renamed files are picked up.
func runsHook(action domain.Action) bool {
	return action == domain.ActionStart || action == domain.ActionRestart
}

func (d *Dispatcher) actionHandler(action domain.Action) HandlerFunc {
	return func(ctx context.Context, ix Interaction) error {
		return d.runAction(ctx, ix, action)
	}
}

func (d *Dispatcher) runAction(ctx context.Context, ix Interaction, action domain.Action) error {
	w := wordings[action]
	name := strings.TrimSpace(ix.StringOption(containerParam))
	if name == "" {
		return ix.Followup(ctx, fmt.Sprintf("⚠️ Error %s ``: a container name is required", w.gerund))
	}

	ev := domain.ActionEvent{Actor: ix.Actor(), ContainerName: name, Action: action}
	if runsHook(action) {
		res := d.hook.Run(ctx, name)
		ev.Count, ev.Line = res.Count, res.Line
	}

	_, err := d.runtime.Perform(ctx, action, name)
	d.record(ctx, ev, err)
	if err != nil {
		d.logger.Error().Err(err).Str("action", string(action)).Str("container", name).Msg("Container action failed")
		return ix.Followup(ctx, fmt.Sprintf("⚠️ Error %s `%s`: %v", w.gerund, name, err))
	}

	d.notifier.Notify(ctx, ev)
	return ix.Followup(ctx, fmt.Sprintf("%s %s `%s` successfully.", w.glyph, w.past, name))
}

func (d *Dispatcher) record(ctx context.Context, ev domain.ActionEvent, actionErr error) {
	if d.journal == nil {
		return
	}
	if err := d.journal.Record(ctx, audit.NewEntry(d.hostname, ev, actionErr, d.now())); err != nil {
		d.logger.Error().Err(err).Str("container", ev.ContainerName).Msg("Failed to journal action")
	}
}

func (d *Dispatcher) listContainers(ctx context.Context, ix Interaction) error {
	records := d.runtime.List(ctx, runtime.ListOptions{})
	if len(records) == 0 {
		return ix.Followup(ctx, "No containers found.")
	}
	lines := util.Map(records, func(r domain.ContainerRecord) string {
		return fmt.Sprintf("**%s** — %s", r.Name, r.Status)
	})
	return ix.Followup(ctx, joinLimited("📦 **Containers:**", lines))
}

func (d *Dispatcher) showHistory(ctx context.Context, ix Interaction) error {
	entries, err := d.journal.Recent(ctx, d.historyLimit)
	if err != nil {
		d.logger.Error().Err(err).Msg("Failed to read action history")
		return ix.Followup(ctx, fmt.Sprintf("⚠️ Error reading history: %v", err))
	}
	if len(entries) == 0 {
		return ix.Followup(ctx, "No recorded actions.")
	}
	lines := util.Map(entries, func(e audit.Entry) string {
		line := fmt.Sprintf("`%s` **%s** `%s` by %s — %s", e.Time.Format("2006-01-02 15:04:05"), e.Action, e.Container, e.ActorName, e.Outcome)
		if e.Error != "" {
			line += ": " + e.Error
		}
		return line
	})
	return ix.Followup(ctx, joinLimited(fmt.Sprintf("🕑 **Recent actions on `%s`:**", d.hostname), lines))
}

// joinLimited joins header and lines, replacing the lines that would push the
// message past the platform limit with a "…and N more" trailer.
func joinLimited(header string, lines []string) string {
	var b strings.Builder
	b.WriteString(header)
	for i, line := range lines {
		remaining := len(lines) - i
		reserve := 0
		if remaining > 1 {
			reserve = len(moreTrailer(remaining - 1))
		}
		if b.Len()+1+len(line)+reserve > maxMessageLength {
			b.WriteString(moreTrailer(remaining))
			break
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

func moreTrailer(n int) string {
	return fmt.Sprintf("\n…and %d more", n)
}
