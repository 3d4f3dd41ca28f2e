// Методы клиента для ресурса /api/notes.
//
// token может быть пустым: по умолчанию сервер не требует авторизации для заметок.
package api

import (
	"context"
	"strconv"

	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

func notePath(id int64) string {
	return "/api/notes/" + strconv.FormatInt(id, 10)
}

func (c *Client) CreateNote(ctx context.Context, title, content, token string) (models.CreateNoteResponse, error) {
	var resp models.CreateNoteResponse
	err := c.PostJSON(ctx, "/api/notes", models.NoteRequest{Title: title, Content: content}, &resp, token)
	return resp, err
}

// ListNotes возвращает все заметки. Сервер отдаёт голый массив.
func (c *Client) ListNotes(ctx context.Context, token string) ([]models.Note, error) {
	var resp []models.Note
	if err := c.GetJSON(ctx, "/api/notes", &resp, token); err != nil {
		return nil, err
	}
	if resp == nil {
		resp = []models.Note{}
	}
	return resp, nil
}

// GetNote запрашивает одну заметку. В режиме legacy_get_by_id Note == nil.
func (c *Client) GetNote(ctx context.Context, id int64, token string) (models.NoteResponse, error) {
	var resp models.NoteResponse
	err := c.GetJSON(ctx, notePath(id), &resp, token)
	return resp, err
}

func (c *Client) UpdateNote(ctx context.Context, id int64, title, content, token string) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.PutJSON(ctx, notePath(id), models.NoteRequest{Title: title, Content: content}, &resp, token)
	return resp, err
}

func (c *Client) DeleteNote(ctx context.Context, id int64, token string) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.DeleteJSON(ctx, notePath(id), &resp, token)
	return resp, err
}
