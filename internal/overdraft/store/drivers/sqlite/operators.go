package sqlite

import (
	"context"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
)

type operatorsRepo struct {
	db dbtx
}

func (r *operatorsRepo) GetOperatorByUsername(ctx context.Context, username string) (domain.Operator, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, operation_password_hash, created_at, updated_at
		FROM operators
		WHERE username = ?`, username)

	var o domain.Operator
	if err := row.Scan(&o.ID, &o.Username, &o.PasswordHash, &o.OperationPasswordHash, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return domain.Operator{}, mapNotFound(err)
	}
	return o, nil
}

func (r *operatorsRepo) CreateOperator(ctx context.Context, o domain.Operator) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO operators (id, username, password_hash, operation_password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		o.ID, o.Username, o.PasswordHash, o.OperationPasswordHash, o.CreatedAt, o.UpdatedAt)
	return mapConflict(err)
}

func (r *operatorsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operators`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
