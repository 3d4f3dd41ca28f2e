package state_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mustafaciftc/notebook-app/internal/client/state"
	"github.com/mustafaciftc/notebook-app/internal/client/store"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

// recorder собирает уведомления контейнера.
type recorder[S any] struct {
	mu     sync.Mutex
	events []state.Event[S]
}

func record[S any](t *testing.T, subscribe func(func(state.Event[S])) func()) *recorder[S] {
	t.Helper()
	r := &recorder[S]{}
	unsub := subscribe(func(ev state.Event[S]) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, ev)
	})
	t.Cleanup(unsub)
	return r
}

func (r *recorder[S]) phases() []state.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]state.Phase, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Phase)
	}
	return out
}

func (r *recorder[S]) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func requirePhases[S any](t *testing.T, r *recorder[S], want ...state.Phase) {
	t.Helper()
	require.Equal(t, want, r.phases())
	r.reset()
}

// fakeAPI: сервер в памяти. Счётчик calls проверяет, что запросов не было.
type fakeAPI struct {
	calls int

	register func(name, email, password string) (models.RegisterResponse, error)
	login    func(email, password string) (models.LoginResponse, error)
	me       func(token string) (models.MeResponse, error)

	create func(title, content, token string) (models.CreateNoteResponse, error)
	list   func(token string) ([]models.Note, error)
	get    func(id int64, token string) (models.NoteResponse, error)
	update func(id int64, title, content, token string) (models.MessageResponse, error)
	del    func(id int64, token string) (models.MessageResponse, error)
}

func (f *fakeAPI) Register(_ context.Context, name, email, password string) (models.RegisterResponse, error) {
	f.calls++
	return f.register(name, email, password)
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (models.LoginResponse, error) {
	f.calls++
	return f.login(email, password)
}

func (f *fakeAPI) Me(_ context.Context, token string) (models.MeResponse, error) {
	f.calls++
	return f.me(token)
}

func (f *fakeAPI) CreateNote(_ context.Context, title, content, token string) (models.CreateNoteResponse, error) {
	f.calls++
	return f.create(title, content, token)
}

func (f *fakeAPI) ListNotes(_ context.Context, token string) ([]models.Note, error) {
	f.calls++
	return f.list(token)
}

func (f *fakeAPI) GetNote(_ context.Context, id int64, token string) (models.NoteResponse, error) {
	f.calls++
	return f.get(id, token)
}

func (f *fakeAPI) UpdateNote(_ context.Context, id int64, title, content, token string) (models.MessageResponse, error) {
	f.calls++
	return f.update(id, title, content, token)
}

func (f *fakeAPI) DeleteNote(_ context.Context, id int64, token string) (models.MessageResponse, error) {
	f.calls++
	return f.del(id, token)
}

// brokenStore: хранилище, которое всегда падает.
type brokenStore struct{}

var errStoreDown = errors.New("store down")

func (brokenStore) Get(context.Context, string) (string, error) { return "", errStoreDown }
func (brokenStore) Set(context.Context, string, string) error   { return errStoreDown }
func (brokenStore) Remove(context.Context, string) error        { return errStoreDown }
func (brokenStore) Clear(context.Context) error                 { return errStoreDown }

var _ store.Store = brokenStore{}
