// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mustafaciftc/notebook-app/internal/server/crypto"
	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// claimsKey: ключ контекста, под которым хранятся claims проверенного токена.
const claimsKey ctxKey = "claims"

// JWTVerifier проверяет токены сессии (HS256) на защищённых маршрутах.
type JWTVerifier struct {
	SigningKey string // симметричный ключ для подписи (HS256)
}

// NewJWTVerifier создаёт новый JWTVerifier с заданным ключом.
func NewJWTVerifier(signingKey string) *JWTVerifier {
	return &JWTVerifier{SigningKey: signingKey}
}

// ClaimsFromContext достаёт claims аутентифицированного пользователя.
//
// false: запрос не проходил через AuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*crypto.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*crypto.Claims)
	return c, ok && c != nil
}

// WithClaims кладёт claims в контекст. Нужен хендлерам в тестах.
func WithClaims(ctx context.Context, c *crypto.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// AuthMiddleware возвращает HTTP middleware для проверки токена сессии.
//
// Ответы:
//   - 401: нет заголовка Authorization: Bearer <token>;
//   - 401: срок действия токена истёк;
//   - 403: любая другая ошибка проверки (подпись, формат, алгоритм).
//
// При успехе claims доступны через ClaimsFromContext.
func (v *JWTVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ExtractBearer(r.Header.Get("Authorization"))
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, serr.CodeUnauthorized, serr.MsgTokenMissing)
				return
			}

			claims, err := crypto.ParseToken(tokenStr, v.SigningKey)
			if err != nil {
				if errors.Is(err, serr.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, serr.CodeUnauthorized, serr.MsgTokenExpired)
					return
				}
				writeError(w, http.StatusForbidden, serr.CodeForbidden, serr.MsgTokenInvalid)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Message: msg, Code: code})
}
