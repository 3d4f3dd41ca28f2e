package validate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	"github.com/mustafaciftc/notebook-app/internal/shared/validate"
)

func TestRegistration(t *testing.T) {
	cases := []struct {
		name     string
		uname    string
		email    string
		password string
		wantMsg  string
	}{
		{"ok", "Ayşe", "a@x.com", "secret1", ""},
		{"ровно 6 символов", "Ayşe", "a@x.com", "123456", ""},
		{"пустое имя", "", "a@x.com", "secret1", serr.MsgFillAllFields},
		{"пустой email", "Ayşe", "", "secret1", serr.MsgFillAllFields},
		{"пустой пароль при плохом email", "Ayşe", "bad", "", serr.MsgFillAllFields},
		{"email без точки", "Ayşe", "a@x", "secret1", serr.MsgInvalidEmail},
		{"email с пробелом", "Ayşe", "a b@x.com", "secret1", serr.MsgInvalidEmail},
		{"email и пароль плохие", "Ayşe", "nope", "123", serr.MsgInvalidEmail},
		{"короткий пароль", "Ayşe", "a@x.com", "12345", serr.MsgPasswordTooShort},
		// три символа вне BMP: шесть UTF-16 code units
		{"эмодзи считаются парами", "Ayşe", "a@x.com", "😀😀😀", ""},
		{"пять турецких букв", "Ayşe", "a@x.com", "çğüşö", serr.MsgPasswordTooShort},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := validate.Registration(c.uname, c.email, c.password)
			if c.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, serr.ErrInvalidInput)
			require.Equal(t, c.wantMsg, serr.Message(err))
		})
	}
}

func TestPasswordLen(t *testing.T) {
	require.Equal(t, 6, validate.PasswordLen("secret"))
	require.Equal(t, 3, validate.PasswordLen("çğü"))
	require.Equal(t, 2, validate.PasswordLen("😀"))
	require.Equal(t, 0, validate.PasswordLen(""))
}

func TestCredentials(t *testing.T) {
	require.NoError(t, validate.Credentials("a@x.com", "pw"))

	err := validate.Credentials("", "pw")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
	require.Equal(t, serr.MsgFillAllFields, serr.Message(err))

	require.ErrorIs(t, validate.Credentials("a@x.com", ""), serr.ErrInvalidInput)
}

func TestNoteFields(t *testing.T) {
	require.NoError(t, validate.NoteFields("A", "B"))

	err := validate.NoteFields("   ", "B")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
	require.Equal(t, serr.MsgNoteFieldsMissing, serr.Message(err))

	require.Error(t, validate.NoteFields("A", ""))
}

func TestEmail(t *testing.T) {
	require.True(t, validate.Email("user@example.com"))
	require.False(t, validate.Email("user@example"))
	require.False(t, validate.Email("@example.com"))
}
