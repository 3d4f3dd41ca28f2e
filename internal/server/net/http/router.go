// Package http собирает HTTP-роутер сервера заметок.
//
// Пакет отвечает за:
//   - общие middleware (request id, real ip, recover, таймаут, лимит тела, CORS);
//   - логирование выполнения HTTP-запросов;
//   - Swagger UI и подключение маршрутов из пакета api.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mustafaciftc/notebook-app/internal/server/api"
	"github.com/mustafaciftc/notebook-app/internal/server/config"
	"github.com/mustafaciftc/notebook-app/internal/server/middleware"
)

// Options: параметры роутера из конфига.
type Options struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	CORS           config.CORSConfig
}

// OptionsFromConfig берёт нужные роутеру поля из конфига сервера.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		CORS:           cfg.CORS,
	}
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware для всех запросов, включая логирование;
//   - Swagger UI на /swagger/*;
//   - ресурсы /api/users, /api/notes и /healthz (api.Handler.Mount).
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(chimw.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}
	if opts.MaxBodyBytes > 0 {
		r.Use(chimw.RequestSize(opts.MaxBodyBytes))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORS.AllowedOrigins,
		AllowedMethods:   opts.CORS.AllowedMethods,
		AllowedHeaders:   opts.CORS.AllowedHeaders,
		AllowCredentials: false,
		MaxAge:           opts.CORS.MaxAge,
	}))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	h.Mount(r)

	return r
}
