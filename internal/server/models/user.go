// Серверные модели: строки таблиц users и notes
package models

import (
	"time"

	shared "github.com/mustafaciftc/notebook-app/internal/shared/models"
)

type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Public отдаёт пользователя без хэша пароля.
func (u User) Public() shared.User {
	return shared.User{ID: u.ID, Name: u.Name, Email: u.Email}
}
