package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Lanxxxe/parkflow/internal/middleware"
	"github.com/Lanxxxe/parkflow/internal/models"
	"github.com/Lanxxxe/parkflow/internal/money"
	"github.com/Lanxxxe/parkflow/internal/services"
)

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactions.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	payload := make([]map[string]any, 0, len(transactions))
	for _, transaction := range transactions {
		payload = append(payload, transactionPayload(transaction))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"transactions": payload,
	})
}

// addTransactionRequest keeps the original field names of the dashboard's
// check-in form. Price arrives as a JSON number or string.
type addTransactionRequest struct {
	ID           string      `json:"id"`
	PlateNumber  string      `json:"plateNumber"`
	VehicleModel string      `json:"vehicleModel"`
	SlotCode     string      `json:"slotCode"`
	Duration     string      `json:"duration"`
	Price        json.Number `json:"price"`
	Status       string      `json:"status"`
}

func (req addTransactionRequest) missingFields(requireStatus bool) []string {
	var missing []string
	if req.ID == "" {
		missing = append(missing, "id")
	}
	if req.PlateNumber == "" {
		missing = append(missing, "plateNumber")
	}
	if req.VehicleModel == "" {
		missing = append(missing, "vehicleModel")
	}
	if req.SlotCode == "" {
		missing = append(missing, "slotCode")
	}
	if req.Duration == "" {
		missing = append(missing, "duration")
	}
	if req.Price.String() == "" {
		missing = append(missing, "price")
	}
	if requireStatus && req.Status == "" {
		missing = append(missing, "status")
	}
	return missing
}

// AddTransaction is the decoupled primitive: it records the session but does
// not flip the referenced slot. Use /checkIn for the coupled flow.
func (h *Handler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if missing := req.missingFields(true); len(missing) > 0 {
		respondError(w, http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
		return
	}
	status, err := models.ParseTransactionStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, "status must be 'active', 'completed' or 'Paid'")
		return
	}
	rateMinor, err := money.ParseMinor(req.Price.String())
	if err != nil || rateMinor <= 0 {
		respondError(w, http.StatusBadRequest, "invalid price")
		return
	}
	actorID, _ := middleware.UserIDFromContext(r.Context())
	transaction, err := h.service.AddTransaction(r.Context(), services.AddTransactionRequest{
		TransactionID: req.ID,
		PlateNumber:   req.PlateNumber,
		VehicleModel:  req.VehicleModel,
		SlotNumber:    req.SlotCode,
		Duration:      req.Duration,
		RateMinor:     rateMinor,
		Status:        status,
		ActorID:       actorID,
	})
	if err != nil {
		h.respondTransactionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "Transaction added successfully",
		"transaction": transactionPayload(transaction),
	})
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if missing := req.missingFields(false); len(missing) > 0 {
		respondError(w, http.StatusBadRequest, "missing required fields: "+strings.Join(missing, ", "))
		return
	}
	rateMinor, err := money.ParseMinor(req.Price.String())
	if err != nil || rateMinor <= 0 {
		respondError(w, http.StatusBadRequest, "invalid price")
		return
	}
	transaction, err := h.service.CheckIn(r.Context(), services.AddTransactionRequest{
		TransactionID: req.ID,
		PlateNumber:   req.PlateNumber,
		VehicleModel:  req.VehicleModel,
		SlotNumber:    req.SlotCode,
		Duration:      req.Duration,
		RateMinor:     rateMinor,
		ActorID:       actorID,
	})
	if err != nil {
		h.respondTransactionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "Vehicle checked in",
		"transaction": transactionPayload(transaction),
	})
}

type checkOutRequest struct {
	TransactionID string `json:"transactionId"`
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req checkOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.TransactionID == "" {
		respondError(w, http.StatusBadRequest, "transactionId is required")
		return
	}
	transaction, err := h.service.CheckOut(r.Context(), req.TransactionID, actorID)
	if err != nil {
		h.respondTransactionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"message":     "Vehicle checked out",
		"transaction": transactionPayload(transaction),
	})
}

func (h *Handler) respondTransactionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSlotNotFound):
		respondError(w, http.StatusNotFound, "Slot not found")
	case errors.Is(err, services.ErrSlotTaken):
		respondError(w, http.StatusConflict, "Slot already taken")
	case errors.Is(err, services.ErrDuplicateTransaction):
		respondError(w, http.StatusConflict, "Transaction already exists")
	case errors.Is(err, services.ErrTransactionNotFound):
		respondError(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, services.ErrTransactionClosed):
		respondError(w, http.StatusConflict, "Transaction already closed")
	default:
		respondError(w, http.StatusInternalServerError, "unable to process transaction")
	}
}
