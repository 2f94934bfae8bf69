package handlers

import (
	"net/http"

	"github.com/Lanxxxe/parkflow/internal/websocket"
)

// WSSlots streams slot-status changes to dashboard clients.
func (h *Handler) WSSlots(w http.ResponseWriter, r *http.Request) {
	websocket.ServeWS(w, r, h.hub)
}
