package domain

import (
	"fmt"
	"strings"
)

type Action string

const (
	ActionStart   Action = "start"
	ActionStop    Action = "stop"
	ActionRestart Action = "restart"

	// ActionCrash is never requested by a user; it is reported by the event relay.
	ActionCrash Action = "crash"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionStart, ActionStop, ActionRestart:
		return true
	}
	return false
}

// Capitalized returns the action name with its first letter upper-cased.
func (a Action) Capitalized() string {
	s := string(a)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func (a Action) Title() string {
	if a == ActionCrash {
		return "Container Crash Detected"
	}
	return fmt.Sprintf("Container %s Executed", a.Capitalized())
}

// Actor is the user that triggered an action.
type Actor struct {
	ID            string
	Name          string
	Administrator bool
	RoleIDs       []int64
}

func (a Actor) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

// ActionEvent describes a completed action for notification purposes.
// Empty optional fields are treated as absent.
type ActionEvent struct {
	Actor         Actor
	ContainerName string
	Action        Action
	Count         string
	Line          string
	ExitCode      string
}
