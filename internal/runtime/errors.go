package runtime

import (
	"fmt"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
)

// CommandError is returned when the engine rejects an action.
type CommandError struct {
	Action    domain.Action
	Container string
	Stderr    string
	cause     error
}

func NewCommandError(action domain.Action, container, stderr string, cause error) *CommandError {
	return &CommandError{Action: action, Container: container, Stderr: stderr, cause: cause}
}

// Error returns the engine's diagnostic text verbatim so it can be shown to the user.
func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("%s %s failed", e.Action, e.Container)
}

func (e *CommandError) Unwrap() error {
	return e.cause
}
