package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
)

func TestWithMessage_KeepsSentinel(t *testing.T) {
	err := serr.WithMessage(serr.ErrAlreadyExists, serr.MsgEmailTaken)

	require.ErrorIs(t, err, serr.ErrAlreadyExists)
	require.Equal(t, serr.MsgEmailTaken, err.Error())
	require.Equal(t, serr.MsgEmailTaken, serr.Message(err))

	// обёртка поверх обёртки
	wrapped := fmt.Errorf("register: %w", err)
	require.ErrorIs(t, wrapped, serr.ErrAlreadyExists)
	require.Equal(t, serr.MsgEmailTaken, serr.Message(wrapped))
}

func TestWithMessage_Nil(t *testing.T) {
	require.NoError(t, serr.WithMessage(nil, "x"))
	require.Equal(t, "", serr.Message(nil))
}

func TestStatusAndCode(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{serr.ErrInvalidInput, http.StatusBadRequest, serr.CodeBadRequest},
		{serr.ErrBadJSON, http.StatusBadRequest, serr.CodeBadRequest},
		{serr.ErrInvalidCredentials, http.StatusUnauthorized, serr.CodeUnauthorized},
		{serr.ErrTokenExpired, http.StatusUnauthorized, serr.CodeUnauthorized},
		{serr.ErrForbidden, http.StatusForbidden, serr.CodeForbidden},
		{serr.ErrAlreadyExists, http.StatusConflict, serr.CodeConflict},
		{serr.ErrNotFound, http.StatusNotFound, serr.CodeNotFound},
		{serr.ErrServerConfig, http.StatusInternalServerError, serr.CodeServerConfig},
		{errors.New("boom"), http.StatusInternalServerError, serr.CodeInternal},
	}

	for _, c := range cases {
		t.Run(c.err.Error(), func(t *testing.T) {
			err := serr.WithMessage(c.err, "msg")
			require.Equal(t, c.status, serr.Status(err))
			require.Equal(t, c.code, serr.Code(err))
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	conflict := &serr.APIError{Status: http.StatusConflict, Code: serr.CodeConflict, Message: serr.MsgEmailTaken}
	require.ErrorIs(t, conflict, serr.ErrAlreadyExists)
	require.NotErrorIs(t, conflict, serr.ErrNotFound)
	require.Equal(t, serr.MsgEmailTaken, serr.Message(conflict))

	// без code определяем по статусу
	noCode := &serr.APIError{Status: http.StatusNotFound, Message: "nope"}
	require.ErrorIs(t, noCode, serr.ErrNotFound)

	teapot := &serr.APIError{Status: http.StatusTeapot, Message: "418"}
	require.NotErrorIs(t, teapot, serr.ErrInternal)
}

func TestMessageOr(t *testing.T) {
	raw := fmt.Errorf("insert note: %w: %v", serr.ErrInternal, errors.New("pq: disk full"))
	require.Equal(t, serr.MsgServerError, serr.MessageOr(raw, serr.MsgServerError))

	wrapped := fmt.Errorf("op: %w", serr.WithMessage(serr.ErrNotFound, serr.MsgNoteNotFound))
	require.Equal(t, serr.MsgNoteNotFound, serr.MessageOr(wrapped, serr.MsgServerError))

	api := &serr.APIError{Status: http.StatusConflict, Message: serr.MsgEmailTaken}
	require.Equal(t, serr.MsgEmailTaken, serr.MessageOr(api, "x"))
	require.Equal(t, "x", serr.MessageOr(&serr.APIError{Status: 500}, "x"))
}
