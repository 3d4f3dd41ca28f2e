package state

import (
	"context"
	"errors"
	"slices"

	"github.com/mustafaciftc/notebook-app/internal/client/store"
	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
	"github.com/mustafaciftc/notebook-app/internal/shared/validate"
)

// Имена операций контейнера заметок.
const (
	OpListNotes   = "notes/list"
	OpCreateNote  = "notes/create"
	OpGetNoteByID = "notes/getById"
	OpUpdateNote  = "notes/update"
	OpDeleteNote  = "notes/delete"
)

// NotesState: состояние заметок.
//
// IsUpdate выставляется после успешных create/update/delete: вызывающий
// должен заново запросить список.
type NotesState struct {
	Notes       []models.Note
	EditNote    *models.Note
	LastCreated *models.CreateNoteResponse
	IsLoading   bool
	IsSuccess   bool
	IsEdit      bool
	IsUpdate    bool
	IsError     bool
	Message     string
}

// NotesAPI: методы сервера, нужные контейнеру.
type NotesAPI interface {
	CreateNote(ctx context.Context, title, content, token string) (models.CreateNoteResponse, error)
	ListNotes(ctx context.Context, token string) ([]models.Note, error)
	GetNote(ctx context.Context, id int64, token string) (models.NoteResponse, error)
	UpdateNote(ctx context.Context, id int64, title, content, token string) (models.MessageResponse, error)
	DeleteNote(ctx context.Context, id int64, token string) (models.MessageResponse, error)
}

// Notes: контейнер состояния заметок.
type Notes struct {
	api   NotesAPI
	store store.Store
	obs   *observable[NotesState]
}

func cloneNotes(s NotesState) NotesState {
	s.Notes = slices.Clone(s.Notes)
	if s.EditNote != nil {
		n := *s.EditNote
		s.EditNote = &n
	}
	if s.LastCreated != nil {
		c := *s.LastCreated
		s.LastCreated = &c
	}
	return s
}

func initialNotes() NotesState {
	return NotesState{Notes: []models.Note{}}
}

// NewNotes создаёт контейнер. st может быть nil: тогда запросы идут без токена.
func NewNotes(api NotesAPI, st store.Store) *Notes {
	return &Notes{api: api, store: st, obs: newObservable(initialNotes(), cloneNotes)}
}

func (n *Notes) Snapshot() NotesState { return n.obs.snapshot() }

func (n *Notes) Subscribe(fn func(Event[NotesState])) func() { return n.obs.subscribe(fn) }

// token читает сохранённый токен. Пустой токен не ошибка.
func (n *Notes) token(ctx context.Context) (string, error) {
	if n.store == nil {
		return "", nil
	}
	tok, err := n.store.Get(ctx, store.KeyToken)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

func (n *Notes) reject(op string, err error, fallback string) error {
	msg := serr.MessageOr(err, fallback)
	n.obs.update(op, Rejected, func(s *NotesState) {
		s.IsLoading = false
		s.IsError = true
		s.Message = msg
	})
	return err
}

// ListNotes заменяет список целиком.
func (n *Notes) ListNotes(ctx context.Context) error {
	n.obs.update(OpListNotes, Pending, func(s *NotesState) {
		s.IsLoading = true
		s.IsSuccess = false
	})

	tok, err := n.token(ctx)
	if err != nil {
		return n.reject(OpListNotes, err, serr.MsgNotesListFailed)
	}
	list, err := n.api.ListNotes(ctx, tok)
	if err != nil {
		return n.reject(OpListNotes, err, serr.MsgNotesListFailed)
	}
	if list == nil {
		list = []models.Note{}
	}

	n.obs.update(OpListNotes, Fulfilled, func(s *NotesState) {
		s.IsLoading = false
		s.IsSuccess = true
		s.IsUpdate = false
		s.Notes = list
	})
	return nil
}

// CreateNote создаёт заметку. В список она не добавляется.
func (n *Notes) CreateNote(ctx context.Context, title, content string) error {
	n.obs.update(OpCreateNote, Pending, func(s *NotesState) { s.IsUpdate = false })

	if err := validate.NoteFields(title, content); err != nil {
		return n.reject(OpCreateNote, err, serr.MsgNoteCreateFailed)
	}
	tok, err := n.token(ctx)
	if err != nil {
		return n.reject(OpCreateNote, err, serr.MsgNoteCreateFailed)
	}
	resp, err := n.api.CreateNote(ctx, title, content, tok)
	if err != nil {
		return n.reject(OpCreateNote, err, serr.MsgNoteCreateFailed)
	}

	n.obs.update(OpCreateNote, Fulfilled, func(s *NotesState) {
		s.IsUpdate = true
		s.LastCreated = &resp
		s.Message = resp.Message
	})
	return nil
}

// GetNoteByID загружает заметку для редактирования.
//
// Если сервер вернул только message, EditNote остаётся nil.
func (n *Notes) GetNoteByID(ctx context.Context, id int64) error {
	n.obs.update(OpGetNoteByID, Pending, func(s *NotesState) { s.IsLoading = true })

	if id <= 0 {
		return n.reject(OpGetNoteByID, serr.WithMessage(serr.ErrInvalidInput, serr.MsgNoteIDMissing), serr.MsgNoteNotFound)
	}
	tok, err := n.token(ctx)
	if err != nil {
		return n.reject(OpGetNoteByID, err, serr.MsgNoteNotFound)
	}
	resp, err := n.api.GetNote(ctx, id, tok)
	if err != nil {
		return n.reject(OpGetNoteByID, err, serr.MsgNoteNotFound)
	}

	n.obs.update(OpGetNoteByID, Fulfilled, func(s *NotesState) {
		s.IsLoading = false
		s.IsEdit = true
		s.EditNote = resp.Note
		s.Message = resp.Message
	})
	return nil
}

// original ищет известную версию заметки: сначала EditNote, потом список.
func (n *Notes) original(id int64) (models.Note, bool) {
	s := n.Snapshot()
	if s.EditNote != nil && s.EditNote.ID == id {
		return *s.EditNote, true
	}
	for _, note := range s.Notes {
		if note.ID == id {
			return note, true
		}
	}
	return models.Note{}, false
}

// UpdateNote заменяет заголовок и текст.
//
// Если заголовок и текст совпадают с известной версией, запрос не
// отправляется: публикуется только уведомление MsgNoChanges и
// возвращается ErrNoChanges.
func (n *Notes) UpdateNote(ctx context.Context, id int64, title, content string) error {
	if id <= 0 {
		n.obs.update(OpUpdateNote, Pending, func(s *NotesState) { s.IsUpdate = false })
		return n.reject(OpUpdateNote, serr.WithMessage(serr.ErrInvalidInput, serr.MsgNoteIDMissing), serr.MsgNoteUpdateFailed)
	}
	if orig, ok := n.original(id); ok && orig.Title == title && orig.Content == content {
		n.obs.update(OpUpdateNote, Notice, func(s *NotesState) { s.Message = serr.MsgNoChanges })
		return serr.WithMessage(serr.ErrNoChanges, serr.MsgNoChanges)
	}

	n.obs.update(OpUpdateNote, Pending, func(s *NotesState) { s.IsUpdate = false })

	if err := validate.NoteFields(title, content); err != nil {
		return n.reject(OpUpdateNote, err, serr.MsgNoteUpdateFailed)
	}
	tok, err := n.token(ctx)
	if err != nil {
		return n.reject(OpUpdateNote, err, serr.MsgNoteUpdateFailed)
	}
	resp, err := n.api.UpdateNote(ctx, id, title, content, tok)
	if err != nil {
		return n.reject(OpUpdateNote, err, serr.MsgNoteUpdateFailed)
	}

	n.obs.update(OpUpdateNote, Fulfilled, func(s *NotesState) {
		s.IsUpdate = true
		s.Message = resp.Message
	})
	return nil
}

// DeleteNote удаляет заметку. Подтверждение на стороне вызывающего.
func (n *Notes) DeleteNote(ctx context.Context, id int64) error {
	n.obs.update(OpDeleteNote, Pending, func(s *NotesState) { s.IsUpdate = false })

	if id <= 0 {
		return n.reject(OpDeleteNote, serr.WithMessage(serr.ErrInvalidInput, serr.MsgNoteIDMissing), serr.MsgNoteDeleteFailed)
	}
	tok, err := n.token(ctx)
	if err != nil {
		return n.reject(OpDeleteNote, err, serr.MsgNoteDeleteFailed)
	}
	resp, err := n.api.DeleteNote(ctx, id, tok)
	if err != nil {
		return n.reject(OpDeleteNote, err, serr.MsgNoteDeleteFailed)
	}

	n.obs.update(OpDeleteNote, Fulfilled, func(s *NotesState) {
		s.IsUpdate = true
		s.Message = resp.Message
	})
	return nil
}

// Reset возвращает контейнер в начальное состояние, включая список.
func (n *Notes) Reset() {
	n.obs.update("notes/reset", Notice, func(s *NotesState) { *s = initialNotes() })
}
