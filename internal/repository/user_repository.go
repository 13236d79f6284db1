package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.UserID = uuid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (user_id, name, email, password_hash, avatar, posts, created_at, updated_at)
		VALUES (:user_id, :name, :email, :password_hash, :avatar, :posts, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to create user", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Store, "failed to get user", err)
	}

	return &user, nil
}

// GetByEmail expects a lowercased email; services normalize before calling.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Store, "failed to get user by email", err)
	}

	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User

	query := `SELECT * FROM users ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to list users", err)
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	query := `
		UPDATE users
		SET name = :name, email = :email, password_hash = :password_hash, avatar = :avatar, updated_at = :updated_at
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to update user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to check updated rows", err)
	}

	if rowsAffected == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}

	return nil
}

// AdjustPostCount mutates the denormalized post counter in a single statement,
// so concurrent adjustments never lose an increment. It is still not
// transactional with the post insert/delete it accompanies.
func (r *userRepository) AdjustPostCount(ctx context.Context, userID string, delta int) error {
	query := `
		UPDATE users
		SET posts = posts + $1, updated_at = $2
		WHERE user_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, delta, time.Now(), userID)
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to adjust post count", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to check updated rows", err)
	}

	if rowsAffected == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}

	return nil
}
