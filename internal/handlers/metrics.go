package handlers

import (
	"net/http"
	"time"

	"github.com/Lanxxxe/parkflow/internal/models"
	"github.com/Lanxxxe/parkflow/internal/money"
	"github.com/Lanxxxe/parkflow/internal/store"
)

// Metrics recomputes all aggregates from persisted state on every call.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now().UTC()
	monthFrom, monthTo := store.MonthWindow(now)
	dayFrom, dayTo := store.DayWindow(now)

	monthlyEarnings, err := h.metrics.EarningsBetween(ctx, monthFrom, monthTo)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to compute metrics")
		return
	}
	dailyEarnings, err := h.metrics.EarningsBetween(ctx, dayFrom, dayTo)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to compute metrics")
		return
	}
	monthlyTransactions, err := h.metrics.TransactionCountBetween(ctx, monthFrom, monthTo)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to compute metrics")
		return
	}
	availableSlots, err := h.slots.CountByStatus(ctx, models.SlotAvailable)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to compute metrics")
		return
	}
	takenSlots, err := h.slots.CountByStatus(ctx, models.SlotTaken)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to compute metrics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"metrics": map[string]any{
			"monthly_earnings":     money.FormatMinor(monthlyEarnings),
			"daily_earnings":       money.FormatMinor(dailyEarnings),
			"monthly_transactions": monthlyTransactions,
			"available_slots":      availableSlots,
			"taken_slots":          takenSlots,
			"total_slots":          availableSlots + takenSlots,
		},
	})
}
