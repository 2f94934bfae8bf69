package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Lanxxxe/parkflow/internal/middleware"
	"github.com/Lanxxxe/parkflow/internal/models"
	"github.com/Lanxxxe/parkflow/internal/services"
	"github.com/Lanxxxe/parkflow/internal/validator"
)

func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.slots.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load parking slots")
		return
	}
	payload := make([]map[string]any, 0, len(slots))
	for _, slot := range slots {
		payload = append(payload, slotPayload(slot))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"parking_slots": payload,
	})
}

type updateSlotStatusRequest struct {
	SlotNumber string `json:"slot_number"`
	Status     string `json:"status"`
}

func (h *Handler) UpdateSlotStatus(w http.ResponseWriter, r *http.Request) {
	var req updateSlotStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.SlotNumber == "" || req.Status == "" {
		respondError(w, http.StatusBadRequest, "slot_number and status are required")
		return
	}
	if err := validator.ValidateSlotNumber(req.SlotNumber); err != nil {
		respondError(w, http.StatusBadRequest, "invalid slot number")
		return
	}
	status, err := models.ParseSlotStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, "status must be 'available' or 'taken'")
		return
	}
	actorID, _ := middleware.UserIDFromContext(r.Context())
	slot, err := h.service.UpdateSlotStatus(r.Context(), req.SlotNumber, status, actorID)
	if err != nil {
		if errors.Is(err, services.ErrSlotNotFound) {
			respondError(w, http.StatusNotFound, "Slot not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to update slot")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Slot %s status updated", slot.SlotNumber),
		"slot":    slotPayload(slot),
	})
}
