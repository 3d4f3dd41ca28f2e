// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях,
// маппятся на HTTP-статусы в api слое и восстанавливаются
// клиентом из ответа сервера (APIError).
package errors

import (
	"errors"
	"net/http"
)

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неверный пароль
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Нет токена или неверная схема заголовка Authorization
	ErrUnauthorized = errors.New("unauthorized")
	// Подпись токена не сошлась
	ErrForbidden = errors.New("forbidden")
	// Срок жизни токена истёк
	ErrTokenExpired = errors.New("token expired")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Сервер запущен без ключа подписи токенов
	ErrServerConfig = errors.New("server config error")
	// Сетевая ошибка на стороне клиента
	ErrTransport = errors.New("transport error")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Заметка не изменилась, запрос не отправлялся
	ErrNoChanges = errors.New("no changes")
)

// Машинные коды, которые сервер кладёт рядом с message.
const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeConflict     = "conflict"
	CodeNotFound     = "not_found"
	CodeServerConfig = "server_config"
	CodeInternal     = "internal"
)

// messageError привязывает к доменной ошибке текст для пользователя.
type messageError struct {
	err error
	msg string
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.err }

// WithMessage оборачивает err, сохраняя errors.Is по исходной ошибке.
func WithMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &messageError{err: err, msg: msg}
}

// Message возвращает текст для пользователя.
//
// Порядок: сообщение из WithMessage, затем APIError.Message,
// иначе err.Error(). Для nil возвращает пустую строку.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var me *messageError
	if errors.As(err, &me) {
		return me.msg
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

// MessageOr возвращает сообщение из WithMessage или APIError,
// а для прочих ошибок: fallback. Детали внутренних ошибок наружу не уходят.
func MessageOr(err error, fallback string) string {
	var me *messageError
	if errors.As(err, &me) {
		return me.msg
	}
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// Code маппит доменную ошибку в стабильный машинный код.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadJSON):
		return CodeBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrAlreadyExists):
		return CodeConflict
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrServerConfig):
		return CodeServerConfig
	default:
		return CodeInternal
	}
}

// Status маппит доменную ошибку в HTTP-статус.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrBadJSON):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// APIError: ошибочный ответ сервера, разобранный клиентом.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Is позволяет проверять APIError через errors.Is(err, ErrNotFound) и т.п.
func (e *APIError) Is(target error) bool {
	sentinel := sentinelFor(e.Status, e.Code)
	return sentinel != nil && sentinel == target
}

func sentinelFor(status int, code string) error {
	switch code {
	case CodeBadRequest:
		return ErrInvalidInput
	case CodeUnauthorized:
		return ErrUnauthorized
	case CodeForbidden:
		return ErrForbidden
	case CodeConflict:
		return ErrAlreadyExists
	case CodeNotFound:
		return ErrNotFound
	case CodeServerConfig:
		return ErrServerConfig
	case CodeInternal:
		return ErrInternal
	}
	// ответ без code: смотрим только на статус
	switch status {
	case http.StatusBadRequest:
		return ErrInvalidInput
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrAlreadyExists
	}
	if status >= http.StatusInternalServerError {
		return ErrInternal
	}
	return nil
}
