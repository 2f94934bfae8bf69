package handlers

import (
	"context"
	"time"

	"github.com/Lanxxxe/parkflow/internal/models"
	"github.com/Lanxxxe/parkflow/internal/services"
	"github.com/Lanxxxe/parkflow/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, id, email, passwordHash, role string) error
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
	GetRole(ctx context.Context, userID string) (string, error)
	List(ctx context.Context) ([]models.User, error)
}

type SlotStore interface {
	Create(ctx context.Context, tx store.Execer, id, slotNumber string, status models.SlotStatus) error
	List(ctx context.Context) ([]models.ParkingSlot, error)
	GetByNumber(ctx context.Context, slotNumber string) (models.ParkingSlot, error)
	CountByStatus(ctx context.Context, status models.SlotStatus) (int, error)
}

type TransactionStore interface {
	ListAll(ctx context.Context) ([]models.Transaction, error)
}

type MetricsStore interface {
	EarningsBetween(ctx context.Context, from, to time.Time) (int64, error)
	TransactionCountBetween(ctx context.Context, from, to time.Time) (int, error)
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
	List(ctx context.Context, limit, offset int) ([]map[string]any, error)
}

type ParkingService interface {
	AddTransaction(ctx context.Context, req services.AddTransactionRequest) (models.Transaction, error)
	CheckIn(ctx context.Context, req services.AddTransactionRequest) (models.Transaction, error)
	CheckOut(ctx context.Context, transactionID, actorID string) (models.Transaction, error)
	UpdateSlotStatus(ctx context.Context, slotNumber string, status models.SlotStatus, actorID string) (models.ParkingSlot, error)
}
