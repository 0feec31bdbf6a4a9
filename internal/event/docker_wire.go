package event

import (
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/docker/docker/api/types/events"
)

func fromEventsMessage(msg events.Message) (domain.ContainerEvent, error) {
	ev := domain.ContainerEvent{
		Container: domain.Container{
			Id:         msg.Actor.ID,
			Name:       msg.Actor.Attributes["name"],
			Attributes: msg.Actor.Attributes,
		},
		EventType: domain.EventType(msg.Action),
		Time:      time.Unix(0, msg.TimeNano),
	}
	if !ev.EventType.IsValid() {
		return domain.ContainerEvent{}, NewUnsupportedEventTypeError(ev.EventType)
	}
	return ev, nil
}
