package service

import (
	"context"

	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	shared "github.com/mustafaciftc/notebook-app/internal/shared/models"
)

// NotesService: CRUD заметок.
//
// Сервер поля не валидирует: пустые title/content записываются как есть,
// проверка на непустые поля живёт на клиенте.
type NotesService struct {
	repo NotesRepo
}

func NewNotesService(repo NotesRepo) *NotesService {
	return &NotesService{repo: repo}
}

// Create добавляет заметку и возвращает её вместе с id и created_at.
func (s *NotesService) Create(ctx context.Context, title, content string) (shared.Note, error) {
	n, err := s.repo.Create(ctx, title, content)
	if err != nil {
		return shared.Note{}, err
	}
	return n.Public(), nil
}

// List возвращает все заметки по возрастанию id. Пустой список не nil.
func (s *NotesService) List(ctx context.Context) ([]shared.Note, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]shared.Note, 0, len(rows))
	for _, n := range rows {
		out = append(out, n.Public())
	}
	return out, nil
}

func (s *NotesService) Get(ctx context.Context, id int64) (shared.Note, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return shared.Note{}, notFound(err, serr.MsgNoteNotFound)
	}
	return n.Public(), nil
}

// Update перезаписывает title и content. Если заметки нет, ErrNotFound.
func (s *NotesService) Update(ctx context.Context, id int64, title, content string) error {
	return notFound(s.repo.Update(ctx, id, title, content), serr.MsgNoteUpdateFailed)
}

func (s *NotesService) Delete(ctx context.Context, id int64) error {
	return notFound(s.repo.Delete(ctx, id), serr.MsgNoteDeleteFailed)
}

// notFound подставляет текст для ErrNotFound, остальные ошибки не трогает.
func notFound(err error, msg string) error {
	if err != nil && serr.Code(err) == serr.CodeNotFound {
		return serr.WithMessage(serr.ErrNotFound, msg)
	}
	return err
}
