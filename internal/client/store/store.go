// Package store содержит локальное хранилище учётных данных клиента.
//
// Хранилище: это плоский набор строковых ключей. Клиент кладёт туда токен
// (KeyToken) и пользователя в виде JSON (KeyUser). Есть две реализации:
// Memory (в памяти процесса) и File (JSON-файл в домашней директории).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

const (
	// KeyToken: ключ, под которым хранится JWT.
	KeyToken = "userToken"
	// KeyUser: ключ, под которым хранится пользователь (JSON).
	KeyUser = "user"
)

// ErrNotFound: ключа нет в хранилище.
var ErrNotFound = errors.New("store: key not found")

// Store: хранилище строк по ключу.
type Store interface {
	// Get возвращает значение или ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove не считает отсутствие ключа ошибкой.
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Batch: хранилище, которое меняет несколько ключей одной записью.
// Memory и File его реализуют; сессия через него пишется целиком или никак.
type Batch interface {
	SetMany(ctx context.Context, values map[string]string) error
	RemoveMany(ctx context.Context, keys ...string) error
}

var (
	_ Batch = (*Memory)(nil)
	_ Batch = (*File)(nil)
)

// Session: то, что клиент помнит между запусками.
type Session struct {
	Token string
	User  *models.User
}

// SaveSession перезаписывает токен и пользователя.
func SaveSession(ctx context.Context, s Store, token string, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if b, ok := s.(Batch); ok {
		return b.SetMany(ctx, map[string]string{KeyToken: token, KeyUser: string(raw)})
	}
	if err := s.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	return s.Set(ctx, KeyUser, string(raw))
}

// LoadSession читает токен и пользователя.
//
// Отсутствующие ключи дают пустые поля без ошибки. Битый JSON пользователя даёт ошибку.
func LoadSession(ctx context.Context, s Store) (Session, error) {
	var sess Session

	tok, err := s.Get(ctx, KeyToken)
	switch {
	case err == nil:
		sess.Token = tok
	case !errors.Is(err, ErrNotFound):
		return Session{}, err
	}

	raw, err := s.Get(ctx, KeyUser)
	switch {
	case err == nil:
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return Session{}, fmt.Errorf("decode stored user: %w", err)
		}
		sess.User = &u
	case !errors.Is(err, ErrNotFound):
		return Session{}, err
	}
	return sess, nil
}

// ClearSession удаляет токен и пользователя.
func ClearSession(ctx context.Context, s Store) error {
	if b, ok := s.(Batch); ok {
		return b.RemoveMany(ctx, KeyToken, KeyUser)
	}
	if err := s.Remove(ctx, KeyToken); err != nil {
		return err
	}
	return s.Remove(ctx, KeyUser)
}
