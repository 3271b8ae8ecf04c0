package domain

import "time"

// Client is a bank client holding an overdraft limit. Document is always the
// normalized (digits-only) identifier; it is the natural lookup key and is
// unique in the store.
type Client struct {
	ID        string
	Document  string
	Name      string
	Limit     Cents
	CreatedAt time.Time
	UpdatedAt time.Time
}
