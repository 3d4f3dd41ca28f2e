// HTTP-хендлеры регистрации, логина и профиля
package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mustafaciftc/notebook-app/internal/server/middleware"
	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: пользователь создан, в data: токен и пользователь;
//   - 400 Bad Request: неверный JSON или невалидные поля;
//   - 409 Conflict: email уже занят;
//   - 500 Internal Server Error: не задан SECRET или ошибка базы.
//
// Ошибочный ответ тоже несёт success:false.
//
// @Summary      Register user
// @Description  Creates a user and returns a 30-day session token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "Register request"
// @Success      201 {object} models.RegisterResponse
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} models.ErrorResponse "Email already registered"
// @Failure      500 {object} models.ErrorResponse "Server configuration or internal error"
// @Router       /api/users/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	failed := false

	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSON(w, serr.Status(err), models.ErrorResponse{Success: &failed, Message: serr.Message(err), Code: serr.Code(err)})
		return
	}

	res, err := h.Svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		status := serr.Status(err)
		if status >= http.StatusInternalServerError {
			h.Log.Error("register failed", zap.String("email", req.Email), zap.Error(err))
		}
		WriteJSON(w, status, models.ErrorResponse{
			Success: &failed,
			Message: serr.MessageOr(err, serr.MsgServerError),
			Code:    serr.Code(err),
		})
		return
	}

	WriteJSON(w, http.StatusCreated, models.RegisterResponse{
		Success: true,
		Message: serr.MsgUserCreated,
		Data:    models.AuthPayload{Token: res.Token, User: res.User},
	})
}

// Login обрабатывает вход пользователя.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON или пустые поля;
//   - 401 Unauthorized: неверный пароль;
//   - 404 Not Found: пользователь не найден;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Verifies credentials and returns a 24-hour session token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.LoginResponse
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Wrong password"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "Server configuration or internal error"
// @Router       /api/users/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, serr.Status(err), serr.Code(err), serr.Message(err))
		return
	}

	res, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, "login", err, serr.MsgServerError)
		return
	}

	WriteJSON(w, http.StatusOK, models.LoginResponse{
		Message: serr.MsgLoginOK,
		Token:   res.Token,
		User:    res.User,
	})
}

// Me возвращает профиль владельца токена. Имя читается из базы:
// токен логина его не содержит.
//
// @Summary      Current user
// @Description  Returns the profile of the session token owner.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.MeResponse
// @Failure      401 {object} models.ErrorResponse "Token missing or expired"
// @Failure      403 {object} models.ErrorResponse "Invalid token"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "Internal error"
// @Router       /api/users/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.CodeUnauthorized, serr.MsgTokenMissing)
		return
	}

	user, err := h.Svc.Auth.Profile(r.Context(), claims.UserID)
	if err != nil {
		h.fail(w, r, "me", err, serr.MsgServerError)
		return
	}

	WriteJSON(w, http.StatusOK, models.MeResponse{
		Message: serr.MsgProfileLoaded,
		User:    user,
	})
}
