package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/ethscan-backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type Accounts interface {
	Exists(ctx context.Context, address string) (bool, error)
	// InsertIfAbsent records address once; created is false when a row
	// already existed. Safe under concurrent callers.
	InsertIfAbsent(ctx context.Context, address, balance string) (created bool, err error)
	GetByAddress(ctx context.Context, address string) (models.Account, error)
	List(ctx context.Context, limit, offset int) ([]models.Account, error)
}
