package state

import "time"

type containerState struct {
	ContainerId   string
	ContainerName string
	LastKilled    time.Time
}
