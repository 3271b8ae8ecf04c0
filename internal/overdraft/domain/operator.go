package domain

import "time"

// Operator is a back-office user allowed to manage client limits.
type Operator struct {
	ID                    string
	Username              string
	PasswordHash          string
	OperationPasswordHash string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
