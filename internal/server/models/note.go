package models

import (
	"time"

	shared "github.com/mustafaciftc/notebook-app/internal/shared/models"
)

type Note struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func (n Note) Public() shared.Note {
	return shared.Note{ID: n.ID, Title: n.Title, Content: n.Content, CreatedAt: n.CreatedAt}
}
