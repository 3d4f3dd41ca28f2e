// @title           Notebook API
// @version         1.0
// @description     Note-taking backend: users with JWT sessions and a notes resource.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа сервера заметок.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - подключение к базе данных (пул + повторные попытки) и миграции;
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск HTTP-сервера (HTTPS, если включён TLS) с заданными таймаутами;
//   - graceful shutdown по SIGINT, SIGTERM, SIGQUIT.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mustafaciftc/notebook-app/internal/server/api"
	"github.com/mustafaciftc/notebook-app/internal/server/config"
	"github.com/mustafaciftc/notebook-app/internal/server/middleware"
	h "github.com/mustafaciftc/notebook-app/internal/server/net/http"
	"github.com/mustafaciftc/notebook-app/internal/server/repository"
	"github.com/mustafaciftc/notebook-app/internal/server/service"
	"github.com/mustafaciftc/notebook-app/internal/shared/logger"

	_ "github.com/mustafaciftc/notebook-app/swagger/docs"
)

// configPath можно переопределить через CONFIG_PATH.
const configPath = "./configs/server.yaml"

func main() {
	// логгер до конфига: только в stdout
	boot, _ := logger.New(logger.Options{Level: "info", File: "-", Stdout: true})
	sugar := boot.Sugar()

	if err := godotenv.Load(); err != nil {
		sugar.Warnf("no .env file loaded, error: %v", err)
	}

	path := configPath
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		sugar.Fatal(err)
	}

	log, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		Stdout:     cfg.Log.Stdout,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		sugar.Fatal(err)
	}
	defer func() { _ = log.Sync() }()
	sugar = log.Sugar()

	if !cfg.SecretConfigured() {
		sugar.Warn("SECRET is not set: register and login will answer 500")
	}

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем базу данных
	db, err := config.OpenDB(ctx, cfg.DB, log)
	if err != nil {
		sugar.Fatal(err)
	}
	// делаем отложенное закрытие бд
	defer func() { _ = db.Close() }()

	if !cfg.Migrations.Skip {
		if err := config.RunMigrations(db, log); err != nil {
			sugar.Fatal(err)
		}
	}

	// создаём репы
	repos := service.Repositories{
		Users:  repository.NewUsersRepository(db, cfg.DB.QueryTimeout),
		Notes:  repository.NewNotesRepository(db, cfg.DB.QueryTimeout),
		Health: repository.NewHealthRepository(db, cfg.DB.QueryTimeout),
	}
	// создаём сервис
	svc := service.NewServices(repos, cfg)
	verifier := middleware.NewJWTVerifier(cfg.Auth.Secret)
	handler := api.NewHandler(svc, log, verifier, api.Options{
		ProtectNotes:  cfg.Auth.ProtectNotes,
		LegacyGetByID: cfg.Notes.LegacyGetByID,
	})
	router := h.NewRouter(handler, h.OptionsFromConfig(cfg))

	addr := cfg.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, gctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		log.Info("server started", zap.String("addr", addr), zap.Bool("tls", cfg.TLS.Enabled))

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-gctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
