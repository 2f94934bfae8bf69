package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Lanxxxe/parkflow/internal/models"
	"github.com/Lanxxxe/parkflow/internal/money"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError keeps the success/message envelope the dashboard expects.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

func slotPayload(slot models.ParkingSlot) map[string]any {
	return map[string]any{
		"id":          slot.ID,
		"slot_number": slot.SlotNumber,
		"status":      slot.Status,
	}
}

func transactionPayload(transaction models.Transaction) map[string]any {
	var amountPaid any
	if transaction.AmountPaid != nil {
		amountPaid = money.FormatMinor(*transaction.AmountPaid)
	}
	return map[string]any{
		"id":             transaction.ID,
		"transaction_id": transaction.TransactionID,
		"plate_number":   transaction.PlateNumber,
		"vehicle_model":  transaction.VehicleModel,
		"slot_id":        transaction.SlotID,
		"time_in":        transaction.TimeIn,
		"time_out":       transaction.TimeOut,
		"rate":           money.FormatMinor(transaction.Rate),
		"duration":       transaction.Duration,
		"amount_paid":    amountPaid,
		"status":         transaction.Status,
	}
}
