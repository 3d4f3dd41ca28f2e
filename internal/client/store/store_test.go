package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mustafaciftc/notebook-app/internal/client/store"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

func stores(t *testing.T) map[string]store.Store {
	return map[string]store.Store{
		"memory": store.NewMemory(),
		"file":   store.NewFile(filepath.Join(t.TempDir(), "a", "credentials.json")),
	}
}

func TestStore_GetSetRemoveClear(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "k")
			require.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, s.Set(ctx, "k", "v1"))
			require.NoError(t, s.Set(ctx, "k", "v2"))
			v, err := s.Get(ctx, "k")
			require.NoError(t, err)
			require.Equal(t, "v2", v)

			require.NoError(t, s.Remove(ctx, "k"))
			require.NoError(t, s.Remove(ctx, "k"))
			_, err = s.Get(ctx, "k")
			require.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, s.Set(ctx, "a", "1"))
			require.NoError(t, s.Clear(ctx))
			_, err = s.Get(ctx, "a")
			require.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestSession_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			sess, err := store.LoadSession(ctx, s)
			require.NoError(t, err)
			require.Empty(t, sess.Token)
			require.Nil(t, sess.User)

			u := models.User{ID: 1, Name: "Ayşe", Email: "a@x.com"}
			require.NoError(t, store.SaveSession(ctx, s, "tok", u))

			sess, err = store.LoadSession(ctx, s)
			require.NoError(t, err)
			require.Equal(t, "tok", sess.Token)
			require.Equal(t, &u, sess.User)

			raw, err := s.Get(ctx, store.KeyUser)
			require.NoError(t, err)
			require.JSONEq(t, `{"id":1,"name":"Ayşe","email":"a@x.com"}`, raw)

			require.NoError(t, store.ClearSession(ctx, s))
			sess, err = store.LoadSession(ctx, s)
			require.NoError(t, err)
			require.Empty(t, sess.Token)
		})
	}
}

// userRemoveFails: Memory, у которого поштучное удаление пользователя падает.
type userRemoveFails struct {
	*store.Memory
}

func (s userRemoveFails) Remove(ctx context.Context, key string) error {
	if key == store.KeyUser {
		return errors.New("remove failed")
	}
	return s.Memory.Remove(ctx, key)
}

// Сессия очищается одним пакетным вызовом, поштучный Remove не нужен
func TestClearSession_Batch(t *testing.T) {
	ctx := context.Background()
	s := userRemoveFails{store.NewMemory()}
	require.NoError(t, store.SaveSession(ctx, s, "tok", models.User{ID: 1}))

	require.NoError(t, store.ClearSession(ctx, s))
	_, err := s.Get(ctx, store.KeyToken)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Get(ctx, store.KeyUser)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestFile_SessionSingleWrite(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "credentials.json")
	f := store.NewFile(p)

	require.NoError(t, f.Set(ctx, "other", "x"))
	require.NoError(t, store.SaveSession(ctx, f, "tok", models.User{ID: 1, Email: "a@x.com"}))
	require.NoError(t, store.ClearSession(ctx, f))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	require.JSONEq(t, `{"other":"x"}`, string(b))

	// повторная очистка файл не трогает
	require.NoError(t, store.ClearSession(ctx, f))

	// файл не читается: ни один ключ не удалён
	require.NoError(t, os.WriteFile(p, []byte(`{"userToken":"t","user":"{}"`), 0o600))
	require.Error(t, store.ClearSession(ctx, f))
	b, err = os.ReadFile(p)
	require.NoError(t, err)
	require.Contains(t, string(b), "userToken")
}

func TestLoadSession_BrokenUser(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, store.KeyUser, "{not json"))

	_, err := store.LoadSession(ctx, s)
	require.Error(t, err)
}

func TestFile_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permissions are not meaningful on windows")
	}
	p := filepath.Join(t.TempDir(), "dir", "credentials.json")
	require.NoError(t, store.NewFile(p).Set(context.Background(), store.KeyToken, "t"))

	st, err := os.Stat(p)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), st.Mode().Perm())

	dst, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o700), dst.Mode().Perm())
}

func TestFile_BrokenJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(p, []byte("{bad"), 0o600))

	_, err := store.NewFile(p).Get(context.Background(), store.KeyToken)
	require.Error(t, err)
	require.NotErrorIs(t, err, store.ErrNotFound)
}

func TestDefaultPath(t *testing.T) {
	p, err := store.DefaultPath()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".notebook", "credentials.json"), p)
}
