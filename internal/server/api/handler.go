// Package api реализует HTTP-слой сервера заметок.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - регистрацию маршрутов ресурсов users и notes.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mustafaciftc/notebook-app/internal/server/middleware"
	"github.com/mustafaciftc/notebook-app/internal/server/service"
	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	"github.com/mustafaciftc/notebook-app/internal/shared/logger"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Options: переключатели поведения HTTP-слоя из конфига.
type Options struct {
	// ProtectNotes закрывает /api/notes проверкой токена.
	ProtectNotes bool
	// LegacyGetByID: GET /api/notes/{id} отвечает только {message}.
	LegacyGetByID bool
}

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: проверка токена сессии для защищённых маршрутов.
type Handler struct {
	Svc      *service.Services
	Log      *logger.Logger
	Verifier *middleware.JWTVerifier
	Opts     Options
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.Logger, verifier *middleware.JWTVerifier, opts Options) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
		Opts:     opts,
	}
}

// WriteJSON пишет v как JSON с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError пишет {message, code}.
func WriteError(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, models.ErrorResponse{Message: msg, Code: code})
}

// fail отвечает на ошибку сервиса. Внутренние ошибки логируются с деталями,
// а клиенту уходит только fallback.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error, fallback string) {
	status := serr.Status(err)
	if status >= http.StatusInternalServerError {
		h.Log.Error(op+" failed", zap.String("uri", r.RequestURI), zap.Error(err))
	}
	WriteError(w, status, serr.Code(err), serr.MessageOr(err, fallback))
}

// decodeJSON читает тело запроса. Пустое тело даёт ErrBadJSON,
// превышение server.max_body_bytes: ErrInvalidInput с отдельным текстом.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return serr.WithMessage(serr.ErrInvalidInput, serr.MsgRequestTooLarge)
		}
		return serr.WithMessage(serr.ErrBadJSON, serr.MsgBadRequestBody)
	}
	return nil
}
