package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Mount регистрирует ресурсы /api/users и /api/notes.
//
//   - register и login публичные, me требует токен;
//   - notes закрыты токеном только при Opts.ProtectNotes.
func (h *Handler) Mount(r chi.Router) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(h.Verifier.AuthMiddleware()).Get("/me", h.Me)
	})

	r.Route("/api/notes", func(r chi.Router) {
		if h.Opts.ProtectNotes {
			r.Use(h.Verifier.AuthMiddleware())
		}
		r.Post("/", h.CreateNote)
		r.Get("/", h.ListNotes)
		r.Get("/{id}", h.GetNote)
		r.Put("/{id}", h.UpdateNote)
		r.Delete("/{id}", h.DeleteNote)
	})

	r.Get("/healthz", h.Health)
}

// NewRouter: роутер только с маршрутами ресурсов, без общих middleware.
// Полная сборка живёт в internal/server/net/http.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	h.Mount(r)
	return r
}
