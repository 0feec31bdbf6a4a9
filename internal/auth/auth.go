package auth

import "github.com/auto-dns/docker-discord-bot/internal/domain"

// IsAuthorized reports whether the actor may run container commands: administrators
// always may, everyone else needs the single allowed role.
func IsAuthorized(actor domain.Actor, allowedRole int64) bool {
	if actor.Administrator {
		return true
	}
	for _, role := range actor.RoleIDs {
		if role == allowedRole {
			return true
		}
	}
	return false
}
