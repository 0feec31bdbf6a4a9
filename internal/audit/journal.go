// Package audit keeps an expiring journal of container actions in etcd.
package audit

import (
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Entry is one journaled action.
type Entry struct {
	Host      string
	Container string
	Action    domain.Action
	ActorID   string
	ActorName string
	Outcome   string
	Error     string
	Count     string
	Line      string
	Time      time.Time
}

// NewEntry builds an entry from a finished action. A nil err records success.
func NewEntry(host string, ev domain.ActionEvent, err error, at time.Time) Entry {
	e := Entry{
		Host:      host,
		Container: ev.ContainerName,
		Action:    ev.Action,
		ActorID:   ev.Actor.ID,
		ActorName: ev.Actor.Name,
		Outcome:   OutcomeOK,
		Count:     ev.Count,
		Line:      ev.Line,
		Time:      at.UTC(),
	}
	if err != nil {
		e.Outcome = OutcomeError
		e.Error = err.Error()
	}
	return e
}
