package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

// noteID достаёт {id} из пути. Нечисловой или неположительный id даёт 400.
func noteID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, serr.WithMessage(serr.ErrInvalidInput, serr.MsgBadNoteID)
	}
	return id, nil
}

// CreateNote добавляет заметку.
//
// Поля не валидируются: пустые title/content записываются как есть.
//
// @Summary      Create note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        request body models.NoteRequest true "Note"
// @Success      200 {object} models.CreateNoteResponse
// @Failure      400 {object} models.ErrorResponse "Bad JSON"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req models.NoteRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, serr.Status(err), serr.Code(err), serr.Message(err))
		return
	}

	n, err := h.Svc.Notes.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		h.fail(w, r, "create note", err, serr.MsgNoteCreateFailed)
		return
	}

	WriteJSON(w, http.StatusOK, models.CreateNoteResponse{
		Message: serr.MsgNoteCreated,
		ID:      n.ID,
		Title:   n.Title,
		Content: n.Content,
	})
}

// ListNotes отдаёт все заметки массивом, без обёртки.
//
// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Success      200 {array} models.Note
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Svc.Notes.List(r.Context())
	if err != nil {
		h.fail(w, r, "list notes", err, serr.MsgNotesListFailed)
		return
	}
	WriteJSON(w, http.StatusOK, notes)
}

// GetNote отдаёт одну заметку.
//
// @Summary      Get note
// @Description  With notes.legacy_get_by_id the body carries only the message, and a missing note answers 200.
// @Tags         notes
// @Produce      json
// @Param        id path int true "Note ID"
// @Success      200 {object} models.NoteResponse
// @Failure      400 {object} models.ErrorResponse "Bad id"
// @Failure      404 {object} models.ErrorResponse "Note not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/notes/{id} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		WriteError(w, serr.Status(err), serr.Code(err), serr.Message(err))
		return
	}

	n, err := h.Svc.Notes.Get(r.Context(), id)
	if err != nil {
		// старый формат: отсутствующая заметка тоже 200 с текстом
		if h.Opts.LegacyGetByID && errors.Is(err, serr.ErrNotFound) {
			WriteJSON(w, http.StatusOK, models.NoteResponse{Message: serr.MsgNoteNotFound})
			return
		}
		h.fail(w, r, "get note", err, serr.MsgServerError)
		return
	}

	if h.Opts.LegacyGetByID {
		WriteJSON(w, http.StatusOK, models.NoteResponse{Message: serr.MsgNoteFound})
		return
	}
	WriteJSON(w, http.StatusOK, models.NoteResponse{Message: serr.MsgNoteFound, Note: &n})
}

// UpdateNote перезаписывает title и content.
//
// @Summary      Update note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id path int true "Note ID"
// @Param        request body models.NoteRequest true "Note"
// @Success      200 {object} models.MessageResponse
// @Failure      400 {object} models.ErrorResponse "Bad id or JSON"
// @Failure      404 {object} models.ErrorResponse "Note not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		WriteError(w, serr.Status(err), serr.Code(err), serr.Message(err))
		return
	}
	var req models.NoteRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, serr.Status(err), serr.Code(err), serr.Message(err))
		return
	}

	if err := h.Svc.Notes.Update(r.Context(), id, req.Title, req.Content); err != nil {
		h.fail(w, r, "update note", err, serr.MsgNoteUpdateFailed)
		return
	}
	WriteJSON(w, http.StatusOK, models.MessageResponse{Message: serr.MsgNoteUpdated})
}

// DeleteNote удаляет заметку.
//
// @Summary      Delete note
// @Tags         notes
// @Produce      json
// @Param        id path int true "Note ID"
// @Success      200 {object} models.MessageResponse
// @Failure      400 {object} models.ErrorResponse "Bad id"
// @Failure      404 {object} models.ErrorResponse "Note not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		WriteError(w, serr.Status(err), serr.Code(err), serr.Message(err))
		return
	}

	if err := h.Svc.Notes.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete note", err, serr.MsgNoteDeleteFailed)
		return
	}
	WriteJSON(w, http.StatusOK, models.MessageResponse{Message: serr.MsgNoteDeleted})
}
