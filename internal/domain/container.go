package domain

import "strings"

// ContainerRecord is a single line of a container listing.
type ContainerRecord struct {
	Name   string
	Status string
}

// Running reports whether the engine status string describes a running container.
func (cr ContainerRecord) Running() bool {
	return strings.HasPrefix(strings.ToLower(cr.Status), "up")
}
