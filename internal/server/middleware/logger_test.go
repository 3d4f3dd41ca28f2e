package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mustafaciftc/notebook-app/internal/server/middleware"
	"github.com/mustafaciftc/notebook-app/internal/shared/logger"
)

// Статус по умолчанию и размер
func TestResponseWriter_Write_DefaultStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &middleware.ResponseWriter{ResponseWriter: rr}

	body := []byte("hello")
	n, err := w.Write(body)

	require.NoError(t, err)
	require.Equal(t, len(body), n)
	require.Equal(t, http.StatusOK, w.Status)
	require.Equal(t, len(body), w.Size)
}

// вспомогательная функция
func testHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// проверка корректного прохода статуса и тела через мидлу
func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	handler := chimw.RequestID(middleware.LoggerMiddleware(log)(testHandler(http.StatusTeapot, "tea")))

	req := httptest.NewRequest(http.MethodGet, "/api/notes?x=1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusTeapot, rr.Code)
	require.Equal(t, "tea", rr.Body.String())

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, "GET", fields["method"])
	require.Equal(t, "/api/notes?x=1", fields["uri"])
	require.Equal(t, int64(http.StatusTeapot), fields["status"])
	require.Equal(t, int64(3), fields["response_size"])
	require.NotEmpty(t, fields["request_id"])
}

// хендлер ничего не записал: в логе 200
func TestLoggerMiddleware_EmptyResponse(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := &logger.Logger{Logger: zap.New(core)}

	handler := middleware.LoggerMiddleware(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, 1, logs.Len())
	require.Equal(t, int64(http.StatusOK), logs.All()[0].ContextMap()["status"])
}

func TestLoggerMiddleware_NilLogger(t *testing.T) {
	handler := middleware.LoggerMiddleware(nil)(testHandler(http.StatusOK, "ok"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}
