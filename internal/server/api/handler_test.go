package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/mustafaciftc/notebook-app/internal/server/api"
	"github.com/mustafaciftc/notebook-app/internal/server/config"
	"github.com/mustafaciftc/notebook-app/internal/server/middleware"
	"github.com/mustafaciftc/notebook-app/internal/server/service"
	"github.com/mustafaciftc/notebook-app/internal/server/service/mocks"
	"github.com/mustafaciftc/notebook-app/internal/shared/logger"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

const testSecret = "secret"

type env struct {
	router http.Handler
	users  *mocks.MockUsersRepo
	notes  *mocks.MockNotesRepo
	health *mocks.MockHealthRepo
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Secret:      testSecret,
			Issuer:      "test",
			RegisterTTL: 30 * 24 * time.Hour,
			LoginTTL:    24 * time.Hour,
		},
		Password: config.PasswordConfig{
			Hasher: "bcrypt",
			Bcrypt: config.BcryptConfig{Cost: bcrypt.MinCost},
		},
	}
}

// newEnv собирает настоящие сервисы поверх моков репозиториев.
func newEnv(t *testing.T, cfg *config.Config, opts api.Options) *env {
	t.Helper()
	ctrl := gomock.NewController(t)

	e := &env{
		users:  mocks.NewMockUsersRepo(ctrl),
		notes:  mocks.NewMockNotesRepo(ctrl),
		health: mocks.NewMockHealthRepo(ctrl),
	}
	svc := service.NewServices(service.Repositories{Users: e.users, Notes: e.notes, Health: e.health}, cfg)
	h := api.NewHandler(svc, logger.NewNop(), middleware.NewJWTVerifier(cfg.Auth.Secret), opts)
	e.router = api.NewRouter(h)
	return e
}

func (e *env) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	api.WriteError(rr, http.StatusTeapot, "tea", "çay")

	require.Equal(t, http.StatusTeapot, rr.Code)
	require.Equal(t, api.JsonContentType, rr.Header().Get(api.ContentType))
	body := decode[models.ErrorResponse](t, rr)
	require.Equal(t, "çay", body.Message)
	require.Equal(t, "tea", body.Code)
	require.Nil(t, body.Success)
}

func TestHealth(t *testing.T) {
	e := newEnv(t, testConfig(), api.Options{})

	e.health.EXPECT().Ping(gomock.Any()).Return(nil)
	rr := e.do(t, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", decode[models.HealthResponse](t, rr).Status)

	e.health.EXPECT().Ping(gomock.Any()).Return(io.ErrUnexpectedEOF)
	rr = e.do(t, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
