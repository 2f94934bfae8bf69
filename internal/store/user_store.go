package store

import (
	"context"

	"github.com/Lanxxxe/parkflow/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, tx Execer, id, email, passwordHash, role string) error {
	query := `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
	`
	_, err := tx.ExecContext(ctx, query, id, email, passwordHash, role)
	return mapError(err)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		return models.User{}, mapError(err)
	}
	return user, nil
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		return models.User{}, mapError(err)
	}
	return user, nil
}

func (s *UserStore) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := s.db.GetContext(ctx, &role, `
		SELECT role FROM users WHERE id = $1
	`, userID)
	if err != nil {
		return "", mapError(err)
	}
	return role, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.SelectContext(ctx, &users, `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users
		ORDER BY email
	`)
	if err != nil {
		return nil, err
	}
	return users, nil
}
