package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Lanxxxe/parkflow/internal/auth"
	"github.com/Lanxxxe/parkflow/internal/models"
	"github.com/Lanxxxe/parkflow/internal/store"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type seedUser struct {
	Email    string
	Password string
	Role     string
}

var seedUsers = []seedUser{
	{Email: "admin@gmail.com", Password: "admin123", Role: "admin"},
	{Email: "customer@gmail.com", Password: "customer123", Role: "customer"},
}

// InsertDB provisions the demo users and slots A1..A10. Rows that already
// exist are skipped; 409 only when there was nothing left to insert.
func (h *Handler) InsertDB(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inserted := 0

	var missingUsers []seedUser
	for _, candidate := range seedUsers {
		_, err := h.users.GetByEmail(ctx, candidate.Email)
		if errors.Is(err, store.ErrNotFound) {
			missingUsers = append(missingUsers, candidate)
			continue
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "seeding failed")
			return
		}
	}
	var missingSlots []string
	for i := 1; i <= 10; i++ {
		slotNumber := fmt.Sprintf("A%d", i)
		_, err := h.slots.GetByNumber(ctx, slotNumber)
		if errors.Is(err, store.ErrNotFound) {
			missingSlots = append(missingSlots, slotNumber)
			continue
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "seeding failed")
			return
		}
	}

	err := h.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, candidate := range missingUsers {
			passwordHash, err := auth.HashPassword(candidate.Password)
			if err != nil {
				return err
			}
			if err := h.users.Create(ctx, tx, uuid.NewString(), candidate.Email, passwordHash, candidate.Role); err != nil {
				return err
			}
			inserted++
		}
		for _, slotNumber := range missingSlots {
			if err := h.slots.Create(ctx, tx, uuid.NewString(), slotNumber, models.SlotAvailable); err != nil {
				return err
			}
			inserted++
		}
		if inserted == 0 {
			return nil
		}
		data, _ := json.Marshal(map[string]int{"rows": inserted})
		return h.audit.Log(ctx, tx, "", "seed", "database", "insert-db", string(data))
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(w, http.StatusConflict, "Data already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "seeding failed")
		return
	}
	if inserted == 0 {
		respondError(w, http.StatusConflict, "Data already exists")
		return
	}

	users, err := h.users.List(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "seeding failed")
		return
	}
	slots, err := h.slots.List(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "seeding failed")
		return
	}
	emails := make([]string, 0, len(users))
	for _, user := range users {
		emails = append(emails, user.Email)
	}
	slotNumbers := make([]string, 0, len(slots))
	for _, slot := range slots {
		slotNumbers = append(slotNumbers, slot.SlotNumber)
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"message":       "Users and parking slots registered successfully",
		"users":         emails,
		"parking_slots": slotNumbers,
	})
}
