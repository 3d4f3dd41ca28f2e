// Package models содержит модели HTTP API, общие для сервера и клиента.
package models

import "time"

// User: публичное представление пользователя. Хэш пароля сюда не попадает.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Note: заметка в том виде, в котором её отдаёт GET /api/notes.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest: тело POST /api/users/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload: токен и пользователь, вложенные в ответ регистрации.
type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterResponse: ответ регистрации:
//
//	{"success":true,"message":"...","data":{"token":"...","user":{...}}}
type RegisterResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    AuthPayload `json:"data"`
}

// LoginRequest: тело POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse: ответ логина. Токен и пользователь лежат на верхнем уровне.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// MeResponse: ответ GET /api/users/me.
type MeResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// NoteRequest: тело POST /api/notes и PUT /api/notes/{id}.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreateNoteResponse: ответ POST /api/notes.
type CreateNoteResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse: ответ GET /api/notes/{id}.
//
// В режиме совместимости (notes.legacy_get_by_id) сервер отдаёт только message,
// тогда Note == nil.
type NoteResponse struct {
	Message string `json:"message"`
	Note    *Note  `json:"note,omitempty"`
}

// MessageResponse: ответ, в котором есть только текст (PUT/DELETE заметки).
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse: тело любого ошибочного ответа сервера.
//
// Success заполняется только для регистрации (success:false).
type ErrorResponse struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HealthResponse: ответ /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
