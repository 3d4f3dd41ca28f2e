package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/mustafaciftc/notebook-app/internal/server/api"
	"github.com/mustafaciftc/notebook-app/internal/server/crypto"
	servermodels "github.com/mustafaciftc/notebook-app/internal/server/models"
	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

// Успех
func TestRegister_Created(t *testing.T) {
	e := newEnv(t, testConfig(), api.Options{})

	e.users.EXPECT().ExistsByEmail(gomock.Any(), "a@x.com").Return(false, nil)
	e.users.EXPECT().
		Create(gomock.Any(), "Ayşe", "a@x.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, name, email, hash string) (servermodels.User, error) {
			return servermodels.User{ID: 1, Name: name, Email: email, PasswordHash: hash}, nil
		})

	rr := e.do(t, http.MethodPost, "/api/users/register", models.RegisterRequest{Name: "Ayşe", Email: "a@x.com", Password: "secret1"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	body := decode[models.RegisterResponse](t, rr)
	require.True(t, body.Success)
	require.Equal(t, serr.MsgUserCreated, body.Message)
	require.Equal(t, models.User{ID: 1, Name: "Ayşe", Email: "a@x.com"}, body.Data.User)
	require.NotContains(t, rr.Body.String(), "password")

	claims, err := crypto.ParseToken(body.Data.Token, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.UserID)
	require.Equal(t, "Ayşe", claims.Name)
}

func TestRegister_Failures(t *testing.T) {
	tests := []struct {
		name   string
		body   any
		setup  func(e *env)
		secret string
		status int
		msg    string
	}{
		{
			name:   "bad json",
			body:   "{not json",
			secret: testSecret,
			status: http.StatusBadRequest,
			msg:    serr.MsgBadRequestBody,
		},
		{
			name:   "missing fields",
			body:   models.RegisterRequest{Email: "a@x.com"},
			secret: testSecret,
			status: http.StatusBadRequest,
			msg:    serr.MsgFillAllFields,
		},
		{
			name:   "bad email",
			body:   models.RegisterRequest{Name: "A", Email: "nope", Password: "secret1"},
			secret: testSecret,
			status: http.StatusBadRequest,
			msg:    serr.MsgInvalidEmail,
		},
		{
			name:   "short password",
			body:   models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "123"},
			secret: testSecret,
			status: http.StatusBadRequest,
			msg:    serr.MsgPasswordTooShort,
		},
		{
			name:   "no secret",
			body:   models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1"},
			status: http.StatusInternalServerError,
			msg:    serr.MsgServerConfig,
		},
		{
			name: "email taken",
			body: models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1"},
			setup: func(e *env) {
				e.users.EXPECT().ExistsByEmail(gomock.Any(), "a@x.com").Return(true, nil)
			},
			secret: testSecret,
			status: http.StatusConflict,
			msg:    serr.MsgEmailTaken,
		},
		{
			name: "store failure",
			body: models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1"},
			setup: func(e *env) {
				e.users.EXPECT().ExistsByEmail(gomock.Any(), "a@x.com").Return(false, serr.ErrInternal)
			},
			secret: testSecret,
			status: http.StatusInternalServerError,
			msg:    serr.MsgServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Auth.Secret = tt.secret
			e := newEnv(t, cfg, api.Options{})
			if tt.setup != nil {
				tt.setup(e)
			}

			rr := e.do(t, http.MethodPost, "/api/users/register", tt.body, "")
			require.Equal(t, tt.status, rr.Code)

			body := decode[models.ErrorResponse](t, rr)
			require.NotNil(t, body.Success)
			require.False(t, *body.Success)
			require.Equal(t, tt.msg, body.Message)
			require.NotEmpty(t, body.Code)
		})
	}
}

// Успех
func TestLogin_OK(t *testing.T) {
	e := newEnv(t, testConfig(), api.Options{})
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	e.users.EXPECT().
		GetByEmail(gomock.Any(), "a@x.com").
		Return(servermodels.User{ID: 3, Name: "Ayşe", Email: "a@x.com", PasswordHash: string(hash)}, nil)

	rr := e.do(t, http.MethodPost, "/api/users/login", models.LoginRequest{Email: "a@x.com", Password: "secret1"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode[models.LoginResponse](t, rr)
	require.Equal(t, serr.MsgLoginOK, body.Message)
	require.Equal(t, models.User{ID: 3, Name: "Ayşe", Email: "a@x.com"}, body.User)

	claims, err := crypto.ParseToken(body.Token, testSecret)
	require.NoError(t, err)
	require.Empty(t, claims.Name)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLogin_Failures(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name   string
		body   any
		setup  func(e *env)
		status int
		msg    string
	}{
		{
			name:   "empty password",
			body:   models.LoginRequest{Email: "a@x.com"},
			status: http.StatusBadRequest,
		},
		{
			name: "unknown email",
			body: models.LoginRequest{Email: "b@x.com", Password: "secret1"},
			setup: func(e *env) {
				e.users.EXPECT().GetByEmail(gomock.Any(), "b@x.com").Return(servermodels.User{}, serr.ErrNotFound)
			},
			status: http.StatusNotFound,
			msg:    serr.MsgUserNotFound,
		},
		{
			name: "wrong password",
			body: models.LoginRequest{Email: "a@x.com", Password: "wrong12"},
			setup: func(e *env) {
				e.users.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(servermodels.User{ID: 3, PasswordHash: string(hash)}, nil)
			},
			status: http.StatusUnauthorized,
			msg:    serr.MsgWrongPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, testConfig(), api.Options{})
			if tt.setup != nil {
				tt.setup(e)
			}
			rr := e.do(t, http.MethodPost, "/api/users/login", tt.body, "")
			require.Equal(t, tt.status, rr.Code)

			body := decode[models.ErrorResponse](t, rr)
			require.Nil(t, body.Success)
			if tt.msg != "" {
				require.Equal(t, tt.msg, body.Message)
			}
		})
	}
}

func TestMe(t *testing.T) {
	e := newEnv(t, testConfig(), api.Options{})

	token, err := crypto.NewToken(crypto.Identity{UserID: 9, Email: "a@x.com", Name: "Ayşe"}, crypto.JWTConfig{SigningKey: testSecret}, time.Hour)
	require.NoError(t, err)

	e.users.EXPECT().GetByID(gomock.Any(), int64(9)).
		Return(servermodels.User{ID: 9, Name: "Ayşe", Email: "a@x.com", PasswordHash: "hash"}, nil)
	rr := e.do(t, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[models.MeResponse](t, rr)
	require.Equal(t, models.User{ID: 9, Name: "Ayşe", Email: "a@x.com"}, body.User)

	rr = e.do(t, http.MethodGet, "/api/users/me", nil, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, serr.MsgTokenMissing, decode[models.ErrorResponse](t, rr).Message)

	rr = e.do(t, http.MethodGet, "/api/users/me", nil, "garbage")
	require.Equal(t, http.StatusForbidden, rr.Code)
}

// Токен логина без name: имя всё равно приходит из базы
func TestLoginThenMe_KeepsName(t *testing.T) {
	e := newEnv(t, testConfig(), api.Options{})
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := servermodels.User{ID: 3, Name: "Ayşe", Email: "a@x.com", PasswordHash: string(hash)}

	e.users.EXPECT().GetByEmail(gomock.Any(), "a@x.com").Return(stored, nil)
	rr := e.do(t, http.MethodPost, "/api/users/login", models.LoginRequest{Email: "a@x.com", Password: "secret1"}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	login := decode[models.LoginResponse](t, rr)
	require.Equal(t, "Ayşe", login.User.Name)

	claims, err := crypto.ParseToken(login.Token, testSecret)
	require.NoError(t, err)
	require.Empty(t, claims.Name)

	e.users.EXPECT().GetByID(gomock.Any(), int64(3)).Return(stored, nil)
	rr = e.do(t, http.MethodGet, "/api/users/me", nil, login.Token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "Ayşe", decode[models.MeResponse](t, rr).User.Name)
}

// Пользователь удалён после выдачи токена
func TestMe_UserGone(t *testing.T) {
	e := newEnv(t, testConfig(), api.Options{})
	token, err := crypto.NewToken(crypto.Identity{UserID: 4, Email: "a@x.com"}, crypto.JWTConfig{SigningKey: testSecret}, time.Hour)
	require.NoError(t, err)

	e.users.EXPECT().GetByID(gomock.Any(), int64(4)).Return(servermodels.User{}, serr.ErrNotFound)
	rr := e.do(t, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, serr.MsgUserNotFound, decode[models.ErrorResponse](t, rr).Message)
}
