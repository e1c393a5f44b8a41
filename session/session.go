package session

import (
	"sort"
	"time"
)

// Session is the identity view derived from a valid token. It is rebuilt on
// every call and never stored on its own.
type Session struct {
	Username       string
	UserID         string
	Email          string
	Roles          map[string]struct{}
	IssuedAtMarker int64
	ExpiresAt      time.Time
}

// HasRole reports whether the session carries the given role
func (s *Session) HasRole(role string) bool {
	_, ok := s.Roles[role]
	return ok
}

// RoleList returns the roles sorted by name
func (s *Session) RoleList() []string {
	roles := make([]string, 0, len(s.Roles))
	for r := range s.Roles {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return roles
}

// ExpiresIn returns how long the session has left relative to now
func (s *Session) ExpiresIn(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}
