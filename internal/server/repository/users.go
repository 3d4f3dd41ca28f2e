package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mustafaciftc/notebook-app/internal/server/models"
	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
)

// UsersRepository: таблица users.
type UsersRepository struct {
	base
}

func NewUsersRepository(db *sqlx.DB, timeout time.Duration) *UsersRepository {
	return &UsersRepository{base{db: db, timeout: timeout}}
}

// ExistsByEmail проверяет, занят ли email.
func (r *UsersRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`,
		email,
	)
	if err != nil {
		return false, internal("users.exists", err)
	}
	return exists, nil
}

// Create добавляет пользователя.
//
// Нарушение UNIQUE(email) возвращается как ErrAlreadyExists: так закрывается
// гонка между ExistsByEmail и вставкой.
func (r *UsersRepository) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := r.db.GetContext(ctx, &u,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id, name, email, password_hash, created_at`,
		name, email, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, internal("users.create", err)
	}
	return u, nil
}

// GetByEmail ищет пользователя по email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := r.db.GetContext(ctx, &u,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email=$1`,
		email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, internal("users.get_by_email", err)
	}
	return u, nil
}

// GetByID ищет пользователя по id.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := r.db.GetContext(ctx, &u,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id=$1`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, internal("users.get_by_id", err)
	}
	return u, nil
}
