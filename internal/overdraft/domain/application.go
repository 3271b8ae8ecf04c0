package domain

import "time"

// Application is a partner system authorized to call the public API via
// the client credentials grant.
type Application struct {
	ID         string
	ClientID   string
	SecretHash string
	Name       string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
