package store

import (
	"context"
	"errors"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Clients() Clients
	Operators() Operators
	Applications() Applications
	ChangeLog() ChangeLog
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., a limit
	// update plus its audit entry). The caller MUST call Commit() or
	// Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// GetClientByDocument fetches a client by its normalized document digits.
	GetClientByDocument(ctx context.Context, document string) (domain.Client, error)

	// ListClients returns one page of clients ordered by name along with
	// the total row count.
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, int, error)

	// CreateClient inserts a new client (id is provided by app via ULID).
	CreateClient(ctx context.Context, c domain.Client) error

	// UpdateClientLimit sets limit_cents and updated_at. The caller supplies
	// updatedAt so the persisted row matches the value it hands back.
	UpdateClientLimit(ctx context.Context, document string, limit domain.Cents, updatedAt time.Time) error

	// IsEmpty returns true if there are no clients.
	IsEmpty(ctx context.Context) (bool, error)
}

type Operators interface {
	// GetOperatorByUsername is used during back-office login.
	GetOperatorByUsername(ctx context.Context, username string) (domain.Operator, error)

	// CreateOperator inserts a new operator (id is ULID).
	CreateOperator(ctx context.Context, o domain.Operator) error

	// IsEmpty returns true if there are no operators.
	IsEmpty(ctx context.Context) (bool, error)
}

type Applications interface {
	// GetApplicationByClientID fetches a partner application by its public
	// client identifier (for the client credentials grant).
	GetApplicationByClientID(ctx context.Context, clientID string) (domain.Application, error)

	// CreateApplication inserts a new partner application (id is ULID).
	CreateApplication(ctx context.Context, a domain.Application) error

	// SetApplicationActive flips the active flag and bumps updated_at.
	SetApplicationActive(ctx context.Context, clientID string, active bool) error

	// IsEmpty returns true if there are no applications.
	IsEmpty(ctx context.Context) (bool, error)
}

type ChangeLog interface {
	// AppendChangeEntry writes one audit record. Entries are never updated
	// or deleted.
	AppendChangeEntry(ctx context.Context, e domain.ChangeEntry) error

	// ListChangeEntries returns one page of entries ordered by occurrence
	// (newest first) along with the total row count.
	ListChangeEntries(ctx context.Context, limit, offset int) ([]domain.ChangeEntry, int, error)
}

type Sessions interface {
	// CreateSession stores a new back-office session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the session by its fingerprinted token.
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// DeleteSession removes a session by its fingerprinted token (logout).
	DeleteSession(ctx context.Context, hash string) error

	// DeleteExpiredSessions removes sessions past their expiry (housekeeping).
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}
