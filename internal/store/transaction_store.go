package store

import (
	"context"
	"time"

	"github.com/Lanxxxe/parkflow/internal/models"
)

type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

type TransactionInput struct {
	ID            string
	TransactionID string
	PlateNumber   string
	VehicleModel  string
	SlotID        string
	Rate          int64
	Duration      string
	AmountPaid    *int64
	Status        models.TransactionStatus
}

func (s *TransactionStore) Create(ctx context.Context, tx Execer, input TransactionInput) error {
	query := `
		INSERT INTO transactions (id, transaction_id, plate_number, vehicle_model, slot_id, rate, duration, amount_paid, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.ExecContext(ctx, query,
		input.ID, input.TransactionID, input.PlateNumber, input.VehicleModel,
		input.SlotID, input.Rate, input.Duration, input.AmountPaid, input.Status,
	)
	return mapError(err)
}

func (s *TransactionStore) ListAll(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.SelectContext(ctx, &transactions, `
		SELECT id, transaction_id, plate_number, vehicle_model, slot_id, time_in, time_out,
		       rate, duration, amount_paid, status, created_at, updated_at
		FROM transactions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *TransactionStore) GetByTransactionID(ctx context.Context, transactionID string) (models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.GetContext(ctx, &transaction, `
		SELECT id, transaction_id, plate_number, vehicle_model, slot_id, time_in, time_out,
		       rate, duration, amount_paid, status, created_at, updated_at
		FROM transactions
		WHERE transaction_id = $1
	`, transactionID)
	if err != nil {
		return models.Transaction{}, mapError(err)
	}
	return transaction, nil
}

// GetByTransactionIDForUpdate locks the row so checkout cannot race with
// another close of the same session.
func (s *TransactionStore) GetByTransactionIDForUpdate(ctx context.Context, tx Getter, transactionID string) (models.Transaction, error) {
	var transaction models.Transaction
	err := tx.GetContext(ctx, &transaction, `
		SELECT id, transaction_id, plate_number, vehicle_model, slot_id, time_in, time_out,
		       rate, duration, amount_paid, status, created_at, updated_at
		FROM transactions
		WHERE transaction_id = $1
		FOR UPDATE
	`, transactionID)
	if err != nil {
		return models.Transaction{}, mapError(err)
	}
	return transaction, nil
}

func (s *TransactionStore) Complete(ctx context.Context, tx Execer, transactionID string, timeOut time.Time, amountPaid int64, status models.TransactionStatus) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET time_out = $1, amount_paid = $2, status = $3, updated_at = NOW()
		WHERE transaction_id = $4
	`, timeOut, amountPaid, status, transactionID)
	if err != nil {
		return mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
