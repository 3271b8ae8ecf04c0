package sqlite

import (
	"context"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/internal/overdraft/store"
)

type applicationsRepo struct {
	db dbtx
}

func (r *applicationsRepo) GetApplicationByClientID(ctx context.Context, clientID string) (domain.Application, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, secret_hash, name, active, created_at, updated_at
		FROM partner_applications
		WHERE client_id = ?`, clientID)

	var a domain.Application
	if err := row.Scan(&a.ID, &a.ClientID, &a.SecretHash, &a.Name, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return domain.Application{}, mapNotFound(err)
	}
	return a, nil
}

func (r *applicationsRepo) CreateApplication(ctx context.Context, a domain.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO partner_applications (id, client_id, secret_hash, name, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ClientID, a.SecretHash, a.Name, a.Active, a.CreatedAt, a.UpdatedAt)
	return mapConflict(err)
}

func (r *applicationsRepo) SetApplicationActive(ctx context.Context, clientID string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE partner_applications
		SET active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE client_id = ?`, active, clientID)
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

func (r *applicationsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM partner_applications`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
