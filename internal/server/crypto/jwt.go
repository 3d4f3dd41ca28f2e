// Package crypto содержит криптографические примитивы сервера заметок.
//
// В частности, пакет отвечает за:
//   - генерацию, подпись и проверку JWT (HS256);
//   - хэширование паролей (bcrypt по умолчанию, argon2id как альтернатива).
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
)

// Claims: полезная нагрузка токена сессии.
//
// name есть только в токене, выданном при регистрации.
type Claims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Identity: кому выдаём токен.
type Identity struct {
	UserID int64
	Email  string
	Name   string
}

// JWTConfig описывает параметры подписи токена.
type JWTConfig struct {
	// Issuer: значение поля iss (кто выдал токен).
	Issuer string
	// SigningKey: секретный ключ для подписи токена (HS256).
	SigningKey string
}

// NewToken создаёт и подписывает JWT для пользователя.
//
// Помимо userId/email/name токен содержит iss, iat, exp и jti.
// Пустой ключ подписи: ошибка конфигурации сервера (serr.ErrServerConfig).
func NewToken(id Identity, cfg JWTConfig, ttl time.Duration) (string, error) {
	if strings.TrimSpace(cfg.SigningKey) == "" {
		return "", serr.ErrServerConfig
	}

	now := time.Now()
	claims := Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Name:   id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseToken проверяет подпись и срок действия токена.
//
// Ошибки:
//   - serr.ErrTokenExpired: срок истёк;
//   - serr.ErrForbidden: всё остальное (подпись, формат, алгоритм, пустой ключ).
func ParseToken(token, signingKey string) (*Claims, error) {
	if strings.TrimSpace(signingKey) == "" {
		return nil, serr.ErrForbidden
	}

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(signingKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, serr.ErrTokenExpired
		}
		return nil, serr.ErrForbidden
	}
	return claims, nil
}
