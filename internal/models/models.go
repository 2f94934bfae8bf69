package models

import (
	"errors"
	"time"
)

var ErrInvalidStatus = errors.New("invalid status")

// SlotStatus is the closed set of occupancy states a parking slot can be in.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotTaken     SlotStatus = "taken"
)

// ParseSlotStatus validates a caller-supplied status string before it can
// reach storage.
func ParseSlotStatus(raw string) (SlotStatus, error) {
	switch SlotStatus(raw) {
	case SlotAvailable, SlotTaken:
		return SlotStatus(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

// TransactionStatus covers a parking session's lifecycle. "Paid" keeps its
// capitalization: the dashboard writes it and /metrics filters on it.
type TransactionStatus string

const (
	TxActive    TransactionStatus = "active"
	TxCompleted TransactionStatus = "completed"
	TxPaid      TransactionStatus = "Paid"
)

func ParseTransactionStatus(raw string) (TransactionStatus, error) {
	switch TransactionStatus(raw) {
	case TxActive, TxCompleted, TxPaid:
		return TransactionStatus(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

type ParkingSlot struct {
	ID         string     `db:"id" json:"id"`
	SlotNumber string     `db:"slot_number" json:"slot_number"`
	Status     SlotStatus `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

type Transaction struct {
	ID            string            `db:"id" json:"id"`
	TransactionID string            `db:"transaction_id" json:"transaction_id"`
	PlateNumber   string            `db:"plate_number" json:"plate_number"`
	VehicleModel  string            `db:"vehicle_model" json:"vehicle_model"`
	SlotID        string            `db:"slot_id" json:"slot_id"`
	TimeIn        time.Time         `db:"time_in" json:"time_in"`
	TimeOut       *time.Time        `db:"time_out" json:"time_out,omitempty"`
	Rate          int64             `db:"rate" json:"rate"`
	Duration      string            `db:"duration" json:"duration"`
	AmountPaid    *int64            `db:"amount_paid" json:"amount_paid,omitempty"`
	Status        TransactionStatus `db:"status" json:"status"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
