package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/Lanxxxe/parkflow/internal/models"

	"github.com/lib/pq"
)

func TestSlotStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO parking_slots") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 3 || args[0] != "slot-1" || args[1] != "A1" || args[2] != models.SlotAvailable {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewSlotStore(stubDB{})
	if err := store.Create(ctx, execer, "slot-1", "A1", models.SlotAvailable); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSlotStoreCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(context.Context, string, ...any) (sql.Result, error) {
			return nil, &pq.Error{Code: "23505"}
		},
	}
	store := NewSlotStore(stubDB{})
	err := store.Create(ctx, execer, "slot-1", "A1", models.SlotAvailable)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestSlotStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewSlotStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, _ ...any) error {
			if !strings.Contains(query, "ORDER BY slot_number") {
				t.Fatalf("expected slot_number ordering, got: %s", query)
			}
			slots := dest.(*[]models.ParkingSlot)
			*slots = []models.ParkingSlot{
				{ID: "slot-1", SlotNumber: "A1", Status: models.SlotAvailable},
				{ID: "slot-2", SlotNumber: "A2", Status: models.SlotTaken},
			}
			return nil
		},
	})
	slots, err := store.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 || slots[0].SlotNumber != "A1" {
		t.Fatalf("unexpected slots: %#v", slots)
	}
}

func TestSlotStoreGetByNumberNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewSlotStore(stubDB{
		getFn: func(context.Context, any, string, ...any) error {
			return sql.ErrNoRows
		},
	})
	_, err := store.GetByNumber(ctx, "Z9")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSlotStoreUpdateStatus(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "UPDATE parking_slots") || !strings.Contains(query, "updated_at = NOW()") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != models.SlotTaken || args[1] != "A1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewSlotStore(stubDB{})
	if err := store.UpdateStatus(ctx, execer, "A1", models.SlotTaken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSlotStoreUpdateStatusNotFound(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(context.Context, string, ...any) (sql.Result, error) {
			return stubResult{rows: 0}, nil
		},
	}
	store := NewSlotStore(stubDB{})
	err := store.UpdateStatus(ctx, execer, "Z9", models.SlotTaken)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSlotStoreCountByStatus(t *testing.T) {
	ctx := context.Background()
	store := NewSlotStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "COUNT(*)") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != models.SlotAvailable {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*int) = 3
			return nil
		},
	})
	count, err := store.CountByStatus(ctx, models.SlotAvailable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3, got %d", count)
	}
}
