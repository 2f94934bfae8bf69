package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lanxxxe/parkflow/internal/config"
	"github.com/Lanxxxe/parkflow/internal/models"
	"github.com/Lanxxxe/parkflow/internal/services"
	"github.com/Lanxxxe/parkflow/internal/store"
	"github.com/Lanxxxe/parkflow/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

type stubUserStore struct {
	byEmail map[string]models.User
	byID    map[string]models.User
	created []string
}

func newStubUserStore(users ...models.User) *stubUserStore {
	s := &stubUserStore{byEmail: map[string]models.User{}, byID: map[string]models.User{}}
	for _, user := range users {
		s.byEmail[user.Email] = user
		s.byID[user.ID] = user
	}
	return s
}

func (s *stubUserStore) Create(_ context.Context, _ store.Execer, id, email, passwordHash, role string) error {
	user := models.User{ID: id, Email: email, PasswordHash: passwordHash, Role: role}
	s.byEmail[email] = user
	s.byID[id] = user
	s.created = append(s.created, email)
	return nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) GetByID(_ context.Context, userID string) (models.User, error) {
	user, ok := s.byID[userID]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) GetRole(ctx context.Context, userID string) (string, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *stubUserStore) List(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(s.byEmail))
	for _, user := range s.byEmail {
		users = append(users, user)
	}
	return users, nil
}

type stubSlotStore struct {
	byNumber map[string]models.ParkingSlot
	created  []string
}

func newStubSlotStore(slots ...models.ParkingSlot) *stubSlotStore {
	s := &stubSlotStore{byNumber: map[string]models.ParkingSlot{}}
	for _, slot := range slots {
		s.byNumber[slot.SlotNumber] = slot
	}
	return s
}

func (s *stubSlotStore) Create(_ context.Context, _ store.Execer, id, slotNumber string, status models.SlotStatus) error {
	s.byNumber[slotNumber] = models.ParkingSlot{ID: id, SlotNumber: slotNumber, Status: status}
	s.created = append(s.created, slotNumber)
	return nil
}

func (s *stubSlotStore) List(_ context.Context) ([]models.ParkingSlot, error) {
	slots := make([]models.ParkingSlot, 0, len(s.byNumber))
	for _, slot := range s.byNumber {
		slots = append(slots, slot)
	}
	return slots, nil
}

func (s *stubSlotStore) GetByNumber(_ context.Context, slotNumber string) (models.ParkingSlot, error) {
	slot, ok := s.byNumber[slotNumber]
	if !ok {
		return models.ParkingSlot{}, store.ErrNotFound
	}
	return slot, nil
}

func (s *stubSlotStore) CountByStatus(_ context.Context, status models.SlotStatus) (int, error) {
	count := 0
	for _, slot := range s.byNumber {
		if slot.Status == status {
			count++
		}
	}
	return count, nil
}

type stubTransactionStore struct {
	transactions []models.Transaction
	err          error
}

func (s *stubTransactionStore) ListAll(_ context.Context) ([]models.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.transactions, nil
}

type stubMetricsStore struct {
	monthlyEarnings int64
	dailyEarnings   int64
	count           int
}

func (s *stubMetricsStore) EarningsBetween(_ context.Context, from, to time.Time) (int64, error) {
	if to.Sub(from) > 48*time.Hour {
		return s.monthlyEarnings, nil
	}
	return s.dailyEarnings, nil
}

func (s *stubMetricsStore) TransactionCountBetween(_ context.Context, _, _ time.Time) (int, error) {
	return s.count, nil
}

type stubAuditStore struct {
	actions []string
	logs    []map[string]any
}

func (s *stubAuditStore) Log(_ context.Context, _ store.Execer, _, action, _, _, _ string) error {
	s.actions = append(s.actions, action)
	return nil
}

func (s *stubAuditStore) List(_ context.Context, _, _ int) ([]map[string]any, error) {
	return s.logs, nil
}

type stubService struct {
	addFn      func(ctx context.Context, req services.AddTransactionRequest) (models.Transaction, error)
	checkInFn  func(ctx context.Context, req services.AddTransactionRequest) (models.Transaction, error)
	checkOutFn func(ctx context.Context, transactionID, actorID string) (models.Transaction, error)
	updateFn   func(ctx context.Context, slotNumber string, status models.SlotStatus, actorID string) (models.ParkingSlot, error)
}

func (s *stubService) AddTransaction(ctx context.Context, req services.AddTransactionRequest) (models.Transaction, error) {
	return s.addFn(ctx, req)
}

func (s *stubService) CheckIn(ctx context.Context, req services.AddTransactionRequest) (models.Transaction, error) {
	return s.checkInFn(ctx, req)
}

func (s *stubService) CheckOut(ctx context.Context, transactionID, actorID string) (models.Transaction, error) {
	return s.checkOutFn(ctx, transactionID, actorID)
}

func (s *stubService) UpdateSlotStatus(ctx context.Context, slotNumber string, status models.SlotStatus, actorID string) (models.ParkingSlot, error) {
	return s.updateFn(ctx, slotNumber, status, actorID)
}

type testEnv struct {
	handler *Handler
	users   *stubUserStore
	slots   *stubSlotStore
	txns    *stubTransactionStore
	metrics *stubMetricsStore
	audit   *stubAuditStore
	service *stubService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:   newStubUserStore(),
		slots:   newStubSlotStore(),
		txns:    &stubTransactionStore{},
		metrics: &stubMetricsStore{},
		audit:   &stubAuditStore{},
		service: &stubService{},
	}
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "8080",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		AllowedOrigins: "*",
	}
	env.handler = New(fakeTxRunner{}, cfg, env.users, env.slots, env.txns, env.metrics, env.audit, env.service, websocket.NewHub())
	return env
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	env.handler.Routes().ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return body
}
