package store

import (
	"context"

	"github.com/Lanxxxe/parkflow/internal/models"
)

type SlotStore struct {
	db DB
}

func NewSlotStore(db DB) *SlotStore {
	return &SlotStore{db: db}
}

func (s *SlotStore) Create(ctx context.Context, tx Execer, id, slotNumber string, status models.SlotStatus) error {
	query := `
		INSERT INTO parking_slots (id, slot_number, status)
		VALUES ($1, $2, $3)
	`
	_, err := tx.ExecContext(ctx, query, id, slotNumber, status)
	return mapError(err)
}

func (s *SlotStore) List(ctx context.Context) ([]models.ParkingSlot, error) {
	var slots []models.ParkingSlot
	err := s.db.SelectContext(ctx, &slots, `
		SELECT id, slot_number, status, created_at, updated_at
		FROM parking_slots
		ORDER BY slot_number
	`)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *SlotStore) GetByNumber(ctx context.Context, slotNumber string) (models.ParkingSlot, error) {
	var slot models.ParkingSlot
	err := s.db.GetContext(ctx, &slot, `
		SELECT id, slot_number, status, created_at, updated_at
		FROM parking_slots
		WHERE slot_number = $1
	`, slotNumber)
	if err != nil {
		return models.ParkingSlot{}, mapError(err)
	}
	return slot, nil
}

func (s *SlotStore) GetByID(ctx context.Context, id string) (models.ParkingSlot, error) {
	var slot models.ParkingSlot
	err := s.db.GetContext(ctx, &slot, `
		SELECT id, slot_number, status, created_at, updated_at
		FROM parking_slots
		WHERE id = $1
	`, id)
	if err != nil {
		return models.ParkingSlot{}, mapError(err)
	}
	return slot, nil
}

// GetByNumberForUpdate locks the slot row for the duration of the enclosing
// transaction so a concurrent check-in cannot claim the same slot.
func (s *SlotStore) GetByNumberForUpdate(ctx context.Context, tx Getter, slotNumber string) (models.ParkingSlot, error) {
	var slot models.ParkingSlot
	err := tx.GetContext(ctx, &slot, `
		SELECT id, slot_number, status, created_at, updated_at
		FROM parking_slots
		WHERE slot_number = $1
		FOR UPDATE
	`, slotNumber)
	if err != nil {
		return models.ParkingSlot{}, mapError(err)
	}
	return slot, nil
}

func (s *SlotStore) UpdateStatus(ctx context.Context, tx Execer, slotNumber string, status models.SlotStatus) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE parking_slots
		SET status = $1, updated_at = NOW()
		WHERE slot_number = $2
	`, status, slotNumber)
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

func (s *SlotStore) CountByStatus(ctx context.Context, status models.SlotStatus) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM parking_slots WHERE status = $1
	`, status)
	if err != nil {
		return 0, err
	}
	return count, nil
}
