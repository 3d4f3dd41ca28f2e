// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Каждая операция: один параметризованный запрос через sqlx.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"

	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
)

// uniqueViolation: код ошибки PostgreSQL при нарушении UNIQUE.
const uniqueViolation = "23505"

// base: общее для всех репозиториев: пул и таймаут на запрос.
type base struct {
	db      *sqlx.DB
	timeout time.Duration
}

// withTimeout ограничивает запрос таймаутом из db.query_timeout.
func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

// internal сохраняет причину для логов, но наружу отдаёт ErrInternal.
func internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, serr.ErrInternal, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// HealthRepository проверяет доступность базы.
type HealthRepository struct {
	base
}

func NewHealthRepository(db *sqlx.DB, timeout time.Duration) *HealthRepository {
	return &HealthRepository{base{db: db, timeout: timeout}}
}

func (r *HealthRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.PingContext(ctx); err != nil {
		return internal("ping", err)
	}
	return nil
}
