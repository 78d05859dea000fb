package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/baharkarakas/ethscan-backend/internal/metrics"
	"github.com/baharkarakas/ethscan-backend/internal/models"
	"github.com/baharkarakas/ethscan-backend/internal/repository"
)

type accountsRepo struct{ db DBTX }

func NewAccounts(db DBTX) repository.Accounts {
	return &accountsRepo{db: db}
}

func (r *accountsRepo) Exists(ctx context.Context, address string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE address=$1)`, address).Scan(&exists)
	return exists, err
}

// unique index on address turns the race between two first lookups into a no-op
func (r *accountsRepo) InsertIfAbsent(ctx context.Context, address, balance string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO accounts(id, address, balance)
		 VALUES($1, $2, $3::numeric)
		 ON CONFLICT (address) DO NOTHING`,
		uuid.NewString(), address, balance,
	)
	if err != nil {
		return false, err
	}
	created := tag.RowsAffected() == 1
	if created {
		metrics.LedgerInserts.Inc()
	}
	return created, nil
}

func (r *accountsRepo) GetByAddress(ctx context.Context, address string) (models.Account, error) {
	var a models.Account
	err := r.db.QueryRow(ctx,
		`SELECT id::text, address, balance::text, created_at
		   FROM accounts
		  WHERE address=$1`,
		address,
	).Scan(&a.ID, &a.Address, &a.Balance, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Account{}, repository.ErrNotFound
	}
	return a, err
}

func (r *accountsRepo) List(ctx context.Context, limit, offset int) ([]models.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id::text, address, balance::text, created_at
		   FROM accounts
		  ORDER BY created_at DESC
		  LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Address, &a.Balance, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
