package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mustafaciftc/notebook-app/internal/server/models"
	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
)

// NotesRepository: таблица notes. Владельца у заметки нет.
type NotesRepository struct {
	base
}

func NewNotesRepository(db *sqlx.DB, timeout time.Duration) *NotesRepository {
	return &NotesRepository{base{db: db, timeout: timeout}}
}

// Create вставляет заметку и возвращает её вместе с id и created_at.
func (r *NotesRepository) Create(ctx context.Context, title, content string) (models.Note, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n models.Note
	err := r.db.GetContext(ctx, &n,
		`INSERT INTO notes (title, content)
		 VALUES ($1,$2)
		 RETURNING id, title, content, created_at`,
		title, content,
	)
	if err != nil {
		return models.Note{}, internal("notes.create", err)
	}
	return n, nil
}

// List возвращает все заметки по возрастанию id. Для пустой таблицы пустой слайс.
func (r *NotesRepository) List(ctx context.Context) ([]models.Note, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	notes := make([]models.Note, 0)
	err := r.db.SelectContext(ctx, &notes,
		`SELECT id, title, content, created_at FROM notes ORDER BY id`,
	)
	if err != nil {
		return nil, internal("notes.list", err)
	}
	return notes, nil
}

func (r *NotesRepository) GetByID(ctx context.Context, id int64) (models.Note, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n models.Note
	err := r.db.GetContext(ctx, &n,
		`SELECT id, title, content, created_at FROM notes WHERE id=$1`,
		id,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, serr.ErrNotFound
		}
		return models.Note{}, internal("notes.get", err)
	}
	return n, nil
}

// Update заменяет title и content. Последняя запись побеждает.
func (r *NotesRepository) Update(ctx context.Context, id int64, title, content string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET title=$1, content=$2 WHERE id=$3`,
		title, content, id,
	)
	return affectedOne("notes.update", res, err)
}

func (r *NotesRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id=$1`, id)
	return affectedOne("notes.delete", res, err)
}

// affectedOne: 0 затронутых строк: ErrNotFound.
func affectedOne(op string, res sql.Result, err error) error {
	if err != nil {
		return internal(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return internal(op, err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}
