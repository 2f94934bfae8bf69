package store

import (
	"context"
	"time"

	"github.com/Lanxxxe/parkflow/internal/models"
)

type MetricsStore struct {
	db DB
}

func NewMetricsStore(db DB) *MetricsStore {
	return &MetricsStore{db: db}
}

// EarningsBetween sums amount_paid over Paid transactions created inside
// [from, to). Returns 0 when no rows match.
func (s *MetricsStore) EarningsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	err := s.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount_paid), 0)
		FROM transactions
		WHERE status = $1 AND created_at >= $2 AND created_at < $3
	`, models.TxPaid, from, to)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// TransactionCountBetween counts all transactions created inside [from, to),
// regardless of status.
func (s *MetricsStore) TransactionCountBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM transactions
		WHERE created_at >= $1 AND created_at < $2
	`, from, to)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MonthWindow returns the UTC bounds of the calendar month containing now.
func MonthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// DayWindow returns the UTC bounds of the calendar day containing now.
func DayWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
