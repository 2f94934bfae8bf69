package handlers

import (
	"net/http"

	"github.com/Lanxxxe/parkflow/internal/config"
	"github.com/Lanxxxe/parkflow/internal/db"
	"github.com/Lanxxxe/parkflow/internal/middleware"
	"github.com/Lanxxxe/parkflow/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handler struct {
	txRunner     db.TxRunner
	cfg          config.Config
	users        UserStore
	slots        SlotStore
	transactions TransactionStore
	metrics      MetricsStore
	audit        AuditStore
	service      ParkingService
	hub          *websocket.Hub
}

func New(txRunner db.TxRunner, cfg config.Config, users UserStore, slots SlotStore, transactions TransactionStore, metrics MetricsStore, audit AuditStore, service ParkingService, hub *websocket.Hub) *Handler {
	return &Handler{
		txRunner:     txRunner,
		cfg:          cfg,
		users:        users,
		slots:        slots,
		transactions: transactions,
		metrics:      metrics,
		audit:        audit,
		service:      service,
		hub:          hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Original dashboard surface.
	router.Get("/", h.Home)
	router.Post("/login", h.Login)
	router.Get("/insert-db", h.InsertDB)
	router.Get("/metrics", h.Metrics)
	router.Get("/parkingSlots", h.ListSlots)
	router.Put("/updateSlotStatus", h.UpdateSlotStatus)
	router.Get("/getAllTransactions", h.ListTransactions)
	router.Post("/addTransaction", h.AddTransaction)

	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/checkIn", h.CheckIn)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/checkOut", h.CheckOut)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/auth/me", h.Me)
	router.With(middleware.Auth(h.cfg.JWTSecret), middleware.RequireRole(h.users, "admin")).Get("/admin/audit", h.ListAuditLogs)

	router.Get("/ws/slots", h.WSSlots)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Welcome to the Parking Management System",
	})
}
