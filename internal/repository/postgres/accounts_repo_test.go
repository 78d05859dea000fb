package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/baharkarakas/ethscan-backend/internal/repository"
)

const addr = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Error(err)
		}
		mock.Close()
	})
	return mock
}

func TestAccounts_InsertIfAbsent(t *testing.T) {
	mock := newMock(t)
	r := NewAccounts(mock)

	mock.ExpectExec(`INSERT INTO accounts\(id, address, balance\)`).
		WithArgs(pgxmock.AnyArg(), addr, "1.0").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`ON CONFLICT \(address\) DO NOTHING`).
		WithArgs(pgxmock.AnyArg(), addr, "2.5").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	created, err := r.InsertIfAbsent(context.Background(), addr, "1.0")
	if err != nil || !created {
		t.Fatalf("first insert created=%v err=%v", created, err)
	}
	created, err = r.InsertIfAbsent(context.Background(), addr, "2.5")
	if err != nil || created {
		t.Fatalf("conflicting insert created=%v err=%v", created, err)
	}
}

func TestAccounts_InsertIfAbsentError(t *testing.T) {
	mock := newMock(t)
	r := NewAccounts(mock)

	mock.ExpectExec(`INSERT INTO accounts`).
		WithArgs(pgxmock.AnyArg(), addr, "1.0").
		WillReturnError(errors.New("connection reset"))

	if _, err := r.InsertIfAbsent(context.Background(), addr, "1.0"); err == nil {
		t.Fatal("expected error")
	}
}

func TestAccounts_Exists(t *testing.T) {
	mock := newMock(t)
	r := NewAccounts(mock)

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs(addr).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := r.Exists(context.Background(), addr)
	if err != nil || !ok {
		t.Fatalf("exists=%v err=%v", ok, err)
	}
}

func TestAccounts_GetByAddress(t *testing.T) {
	mock := newMock(t)
	r := NewAccounts(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM accounts\s+WHERE address=\$1`).WithArgs(addr).
		WillReturnRows(pgxmock.NewRows([]string{"id", "address", "balance", "created_at"}).
			AddRow("6f1c1a9e-0000-4000-8000-000000000001", addr, "1.00000000", now))
	mock.ExpectQuery(`FROM accounts\s+WHERE address=\$1`).WithArgs("0xmissing").
		WillReturnError(pgx.ErrNoRows)

	a, err := r.GetByAddress(context.Background(), addr)
	if err != nil {
		t.Fatal(err)
	}
	if a.Address != addr || a.Balance != "1.00000000" || !a.CreatedAt.Equal(now) {
		t.Fatalf("unexpected account: %+v", a)
	}
	if _, err := r.GetByAddress(context.Background(), "0xmissing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAccounts_List(t *testing.T) {
	mock := newMock(t)
	r := NewAccounts(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`ORDER BY created_at DESC`).WithArgs(2, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "address", "balance", "created_at"}).
			AddRow("id-2", "0xb", "0.50000000", now).
			AddRow("id-1", "0xa", "1.00000000", now.Add(-time.Minute)))

	out, err := r.List(context.Background(), 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[0].ID != "id-2" || out[1].Address != "0xa" {
		t.Fatalf("unexpected list: %+v", out)
	}
}
