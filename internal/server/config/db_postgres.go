package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v4/stdlib"

	"github.com/mustafaciftc/notebook-app/internal/server/migrations"
	"github.com/mustafaciftc/notebook-app/internal/shared/logger"
)

// DriverName: имя драйвера database/sql, который регистрирует pgx/v4/stdlib.
const DriverName = "pgx"

// OpenDB открывает пул соединений с PostgreSQL и ждёт, пока база ответит.
//
// Пинг повторяется с экспоненциальной задержкой, пока не истечёт db.connect_retry
// или ctx. Упавшие соединения пул пересоздаёт сам при следующем запросе.
func OpenDB(ctx context.Context, cfg DBConfig, log *logger.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := PingWithBackoff(ctx, db, cfg.ConnectRetry, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// PingWithBackoff пингует базу, пока она не ответит или не выйдет время.
func PingWithBackoff(ctx context.Context, db *sqlx.DB, maxElapsed time.Duration, log *logger.Logger) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxElapsed

	attempt := 0
	op := func() error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	}
	notify := func(err error, next time.Duration) {
		log.Warn("db is not ready, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("next_in", next),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("db ping after %d attempts: %w", attempt, err)
	}
	return nil
}

// RunMigrations применяет встроенные миграции из internal/server/migrations.
//
// Если миграции уже применены, migrate.ErrNoChange не считается ошибкой.
func RunMigrations(db *sqlx.DB, log *logger.Logger) error {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrations.FS, migrations.Dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
