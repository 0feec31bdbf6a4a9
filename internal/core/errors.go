package core

import "fmt"

// AuthorizationDeniedError is returned when an actor lacks the admin permission and the allowed role.
type AuthorizationDeniedError struct {
	Actor   string
	Command string
}

// Error implements the error interface
func (e *AuthorizationDeniedError) Error() string {
	return fmt.Sprintf("%s is not authorized to run /%s", e.Actor, e.Command)
}

// NewAuthorizationDeniedError creates a new AuthorizationDeniedError
func NewAuthorizationDeniedError(actor, command string) *AuthorizationDeniedError {
	return &AuthorizationDeniedError{Actor: actor, Command: command}
}

// UnknownCommandError is returned for interactions naming a command that is not registered.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: /%s", e.Command)
}
