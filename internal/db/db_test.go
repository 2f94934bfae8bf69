package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return &fakeConn{}, nil
}

type fakeConn struct{}

func (*fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("not supported")
}

func (*fakeConn) Close() error {
	return nil
}

func (*fakeConn) Begin() (driver.Tx, error) {
	return fakeTx{}, nil
}

func (c *fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return fakeTx{}, nil
}

type fakeTx struct{}

func (fakeTx) Commit() error {
	return nil
}

func (fakeTx) Rollback() error {
	return nil
}

var registerOnce sync.Once

func newFakeDB(t *testing.T) *sqlx.DB {
	t.Helper()
	registerOnce.Do(func() {
		sql.Register("parkflow-fake", fakeDriver{})
	})
	sqlDB, err := sql.Open("parkflow-fake", "")
	if err != nil {
		t.Fatalf("open fake db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlx.NewDb(sqlDB, "postgres")
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	database := newFakeDB(t)
	calls := 0
	err := WithTx(context.Background(), database, func(*sqlx.Tx) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", calls)
	}
}

func TestWithTxRetriesSerializationFailure(t *testing.T) {
	database := newFakeDB(t)
	calls := 0
	err := WithTx(context.Background(), database, func(*sqlx.Tx) error {
		calls++
		if calls < 3 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestWithTxDoesNotRetryOtherErrors(t *testing.T) {
	database := newFakeDB(t)
	boom := errors.New("boom")
	calls := 0
	err := WithTx(context.Background(), database, func(*sqlx.Tx) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", calls)
	}
}

func TestWithTxGivesUpAfterRetryLimit(t *testing.T) {
	database := newFakeDB(t)
	calls := 0
	err := WithTx(context.Background(), database, func(*sqlx.Tx) error {
		calls++
		return &pq.Error{Code: "40P01"}
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 5 {
		t.Fatalf("expected 5 attempts, got %d", calls)
	}
}

func TestIsRetryablePGError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock", &pq.Error{Code: "40P01"}, true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isRetryablePGError(tc.err); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
