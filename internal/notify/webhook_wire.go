package notify

import (
	"fmt"
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
)

const (
	colorGreen  = 0x00FF00
	colorYellow = 0xFFFF00
	colorRed    = 0xFF0000
	colorGray   = 0x808080

	notFound = "(not found)"
)

var actionColors = map[domain.Action]int{
	domain.ActionStart:   colorGreen,
	domain.ActionRestart: colorYellow,
	domain.ActionStop:    colorRed,
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Timestamp string       `json:"timestamp"`
	Fields    []embedField `json:"fields"`
	Footer    embedFooter  `json:"footer"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

func colorFor(ev domain.ActionEvent, hookEnabled bool) int {
	// A restart whose rename hook reported a count is shown as a success.
	if ev.Action == domain.ActionRestart && hookEnabled && ev.Count != "" {
		return colorGreen
	}
	if c, ok := actionColors[ev.Action]; ok {
		return c
	}
	return colorGray
}

func buildPayload(ev domain.ActionEvent, hostname, footer string, hookEnabled bool, now time.Time) webhookPayload {
	fields := []embedField{
		{Name: "Container", Value: fmt.Sprintf("`%s`", ev.ContainerName), Inline: true},
		{Name: "User", Value: ev.Actor.String(), Inline: true},
		{Name: "Server Host", Value: fmt.Sprintf("`%s`", hostname), Inline: false},
	}
	if ev.ExitCode != "" {
		fields = append(fields, embedField{Name: "Exit Code", Value: ev.ExitCode, Inline: true})
	}
	if hookEnabled && (ev.Count != "" || ev.Line != "") {
		fields = append(fields,
			embedField{Name: "Non-breaking Spaces Written", Value: orNotFound(ev.Count), Inline: true},
			embedField{Name: "Game Name Line", Value: orNotFound(ev.Line), Inline: false},
		)
	}

	return webhookPayload{
		Embeds: []embed{{
			Title:     ev.Action.Title(),
			Color:     colorFor(ev, hookEnabled),
			Timestamp: now.UTC().Format(time.RFC3339),
			Fields:    fields,
			Footer:    embedFooter{Text: footer},
		}},
	}
}

func orNotFound(s string) string {
	if s == "" {
		return notFound
	}
	return s
}
