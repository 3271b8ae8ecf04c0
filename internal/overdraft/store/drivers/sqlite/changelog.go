package sqlite

import (
	"context"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
)

type changeLogRepo struct {
	db dbtx
}

func (r *changeLogRepo) AppendChangeEntry(ctx context.Context, e domain.ChangeEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO change_log (id, client_document, client_name, previous_cents, new_cents, actor, outcome, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ClientDocument, e.ClientName, e.PreviousLimit, e.NewLimit, e.Actor, e.Outcome, e.OccurredAt)
	return err
}

func (r *changeLogRepo) ListChangeEntries(ctx context.Context, limit, offset int) ([]domain.ChangeEntry, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM change_log`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_document, client_name, previous_cents, new_cents, actor, outcome, occurred_at
		FROM change_log
		ORDER BY occurred_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.ChangeEntry
	for rows.Next() {
		var e domain.ChangeEntry
		if err := rows.Scan(&e.ID, &e.ClientDocument, &e.ClientName, &e.PreviousLimit, &e.NewLimit, &e.Actor, &e.Outcome, &e.OccurredAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
