package sqlite

import (
	"context"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/internal/overdraft/store"
)

type clientsRepo struct {
	db dbtx
}

func (r *clientsRepo) GetClientByDocument(ctx context.Context, document string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, document, name, limit_cents, created_at, updated_at
		FROM clients
		WHERE document = ?`, document)

	var c domain.Client
	if err := row.Scan(&c.ID, &c.Document, &c.Name, &c.Limit, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, document, name, limit_cents, created_at, updated_at
		FROM clients
		ORDER BY name ASC, id ASC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Document, &c.Name, &c.Limit, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, total, rows.Err()
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, document, name, limit_cents, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Document, c.Name, c.Limit, c.CreatedAt, c.UpdatedAt)
	return mapConflict(err)
}

func (r *clientsRepo) UpdateClientLimit(ctx context.Context, document string, limit domain.Cents, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET limit_cents = ?, updated_at = ?
		WHERE document = ?`, limit, updatedAt, document)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *clientsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
