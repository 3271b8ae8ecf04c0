package domain

import "time"

// Session is an authenticated back-office login. Only a fingerprint of
// the opaque token is stored.
type Session struct {
	ID        string
	Operator  string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
