package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Lanxxxe/parkflow/internal/db"
	"github.com/Lanxxxe/parkflow/internal/models"
	"github.com/Lanxxxe/parkflow/internal/store"
	"github.com/Lanxxxe/parkflow/internal/websocket"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrSlotNotFound         = errors.New("parking slot not found")
	ErrSlotTaken            = errors.New("parking slot already taken")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrTransactionClosed    = errors.New("transaction already closed")
	ErrDuplicateTransaction = errors.New("transaction id already exists")
)

type SlotStore interface {
	GetByNumber(ctx context.Context, slotNumber string) (models.ParkingSlot, error)
	GetByNumberForUpdate(ctx context.Context, tx store.Getter, slotNumber string) (models.ParkingSlot, error)
	GetByID(ctx context.Context, id string) (models.ParkingSlot, error)
	UpdateStatus(ctx context.Context, tx store.Execer, slotNumber string, status models.SlotStatus) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	GetByTransactionID(ctx context.Context, transactionID string) (models.Transaction, error)
	GetByTransactionIDForUpdate(ctx context.Context, tx store.Getter, transactionID string) (models.Transaction, error)
	Complete(ctx context.Context, tx store.Execer, transactionID string, timeOut time.Time, amountPaid int64, status models.TransactionStatus) error
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
}

type SlotHub interface {
	BroadcastSlot(update websocket.SlotUpdate)
}

// ParkingService owns the slot/transaction state rules: a transaction's
// lifecycle and the occupancy of the slot it references.
type ParkingService struct {
	txRunner     db.TxRunner
	slots        SlotStore
	transactions TransactionStore
	audit        AuditStore
	hub          SlotHub
}

func NewParkingService(txRunner db.TxRunner, slots SlotStore, transactions TransactionStore, audit AuditStore, hub SlotHub) *ParkingService {
	return &ParkingService{
		txRunner:     txRunner,
		slots:        slots,
		transactions: transactions,
		audit:        audit,
		hub:          hub,
	}
}

type AddTransactionRequest struct {
	TransactionID string
	PlateNumber   string
	VehicleModel  string
	SlotNumber    string
	Duration      string
	RateMinor     int64
	Status        models.TransactionStatus
	ActorID       string
}

// AddTransaction records a parking session without touching the referenced
// slot's status. Flipping the slot is a separate, explicit call; CheckIn is
// the coupled variant.
func (s *ParkingService) AddTransaction(ctx context.Context, req AddTransactionRequest) (models.Transaction, error) {
	slot, err := s.slots.GetByNumber(ctx, req.SlotNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Transaction{}, ErrSlotNotFound
		}
		return models.Transaction{}, err
	}
	amountPaid := req.RateMinor
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.transactions.Create(ctx, tx, store.TransactionInput{
			ID:            uuid.NewString(),
			TransactionID: req.TransactionID,
			PlateNumber:   req.PlateNumber,
			VehicleModel:  req.VehicleModel,
			SlotID:        slot.ID,
			Rate:          req.RateMinor,
			Duration:      req.Duration,
			AmountPaid:    &amountPaid,
			Status:        req.Status,
		}); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]string{
			"transaction_id": req.TransactionID,
			"slot_number":    req.SlotNumber,
		})
		return s.audit.Log(ctx, tx, req.ActorID, "add_transaction", "transaction", req.TransactionID, string(data))
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Transaction{}, ErrDuplicateTransaction
		}
		return models.Transaction{}, err
	}
	return s.transactions.GetByTransactionID(ctx, req.TransactionID)
}

// CheckIn creates the session and marks the slot taken in one storage
// transaction. The slot row is locked so concurrent check-ins on the same
// slot cannot both succeed.
func (s *ParkingService) CheckIn(ctx context.Context, req AddTransactionRequest) (models.Transaction, error) {
	amountPaid := req.RateMinor
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		slot, err := s.slots.GetByNumberForUpdate(ctx, tx, req.SlotNumber)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		if slot.Status == models.SlotTaken {
			return ErrSlotTaken
		}
		if err := s.transactions.Create(ctx, tx, store.TransactionInput{
			ID:            uuid.NewString(),
			TransactionID: req.TransactionID,
			PlateNumber:   req.PlateNumber,
			VehicleModel:  req.VehicleModel,
			SlotID:        slot.ID,
			Rate:          req.RateMinor,
			Duration:      req.Duration,
			AmountPaid:    &amountPaid,
			Status:        models.TxActive,
		}); err != nil {
			return err
		}
		if err := s.slots.UpdateStatus(ctx, tx, req.SlotNumber, models.SlotTaken); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]string{
			"transaction_id": req.TransactionID,
			"slot_number":    req.SlotNumber,
			"plate_number":   req.PlateNumber,
		})
		return s.audit.Log(ctx, tx, req.ActorID, "check_in", "transaction", req.TransactionID, string(data))
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Transaction{}, ErrDuplicateTransaction
		}
		return models.Transaction{}, err
	}
	s.hub.BroadcastSlot(websocket.SlotUpdate{
		SlotNumber: req.SlotNumber,
		Status:     string(models.SlotTaken),
	})
	return s.transactions.GetByTransactionID(ctx, req.TransactionID)
}

// CheckOut closes an active session: time_out is stamped, the final amount
// is recomputed from the elapsed time, the row is marked Paid and the slot
// freed, all atomically.
func (s *ParkingService) CheckOut(ctx context.Context, transactionID, actorID string) (models.Transaction, error) {
	var slotNumber string
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		transaction, err := s.transactions.GetByTransactionIDForUpdate(ctx, tx, transactionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		if transaction.Status != models.TxActive {
			return ErrTransactionClosed
		}
		slot, err := s.slots.GetByID(ctx, transaction.SlotID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		slotNumber = slot.SlotNumber
		timeOut := time.Now().UTC()
		amount := amountForStay(transaction.Rate, transaction.TimeIn, timeOut)
		if err := s.transactions.Complete(ctx, tx, transactionID, timeOut, amount, models.TxPaid); err != nil {
			return err
		}
		if err := s.slots.UpdateStatus(ctx, tx, slot.SlotNumber, models.SlotAvailable); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]string{
			"transaction_id": transactionID,
			"slot_number":    slot.SlotNumber,
		})
		return s.audit.Log(ctx, tx, actorID, "check_out", "transaction", transactionID, string(data))
	})
	if err != nil {
		return models.Transaction{}, err
	}
	s.hub.BroadcastSlot(websocket.SlotUpdate{
		SlotNumber: slotNumber,
		Status:     string(models.SlotAvailable),
	})
	return s.transactions.GetByTransactionID(ctx, transactionID)
}

// UpdateSlotStatus is the decoupled slot-flip primitive behind
// PUT /updateSlotStatus.
func (s *ParkingService) UpdateSlotStatus(ctx context.Context, slotNumber string, status models.SlotStatus, actorID string) (models.ParkingSlot, error) {
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.slots.UpdateStatus(ctx, tx, slotNumber, status); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		data, _ := json.Marshal(map[string]string{
			"slot_number": slotNumber,
			"status":      string(status),
		})
		return s.audit.Log(ctx, tx, actorID, "update_slot_status", "parking_slot", slotNumber, string(data))
	})
	if err != nil {
		return models.ParkingSlot{}, err
	}
	s.hub.BroadcastSlot(websocket.SlotUpdate{
		SlotNumber: slotNumber,
		Status:     string(status),
	})
	return s.slots.GetByNumber(ctx, slotNumber)
}

// amountForStay charges rate-per-hour for the elapsed stay, in minor units,
// rounded to the nearest cent.
func amountForStay(rateMinor int64, timeIn, timeOut time.Time) int64 {
	hours := decimal.NewFromFloat(timeOut.Sub(timeIn).Hours())
	if hours.IsNegative() {
		hours = decimal.Zero
	}
	return decimal.NewFromInt(rateMinor).Mul(hours).RoundBank(0).IntPart()
}
