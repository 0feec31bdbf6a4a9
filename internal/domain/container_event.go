package domain

import "time"

type EventType string

const (
	EventTypeContainerDied   = "die"
	EventTypeContainerKilled = "kill"
	EventTypeContainerOOM    = "oom"
)

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeContainerDied,
		EventTypeContainerKilled,
		EventTypeContainerOOM:
		return true
	}
	return false
}

type Container struct {
	Id         string
	Name       string
	Attributes map[string]string
}

type ContainerEvent struct {
	Container Container
	EventType EventType
	Time      time.Time
}

// ExitCode returns the exit code attribute docker attaches to die events.
func (ce ContainerEvent) ExitCode() string {
	return ce.Container.Attributes["exitCode"]
}
