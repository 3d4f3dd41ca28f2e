// Package validate содержит правила проверки пользовательского ввода,
// общие для сервера и клиента.
//
// Сервер использует их как авторитетную проверку, клиент как подсказку
// до отправки запроса. Ошибки возвращаются как serr.ErrInvalidInput
// с текстом для пользователя.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
)

// MinPasswordLen: минимальная длина пароля при регистрации, в UTF-16 code units.
const MinPasswordLen = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// v потокобезопасен и кэширует разбор struct-тегов.
var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	_ = val.RegisterValidation("mailaddr", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	// длина как у браузерного String.length: символ вне BMP считается за два
	_ = val.RegisterValidation("pwlen", func(fl validator.FieldLevel) bool {
		return PasswordLen(fl.Field().String()) >= MinPasswordLen
	})
	return val
}

type registration struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,mailaddr"`
	Password string `validate:"required,pwlen"`
}

type credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

type noteFields struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

// PasswordLen возвращает длину пароля в UTF-16 code units.
func PasswordLen(password string) int {
	return len(utf16.Encode([]rune(password)))
}

// Email проверяет синтаксис адреса.
func Email(email string) bool {
	return emailRe.MatchString(email)
}

// Registration проверяет данные регистрации.
//
// Порядок сообщений: сначала пустые поля, потом email, потом длина пароля.
func Registration(name, email, password string) error {
	err := v.Struct(registration{Name: name, Email: email, Password: password})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return serr.WithMessage(serr.ErrInvalidInput, serr.MsgFillAllFields)
	}

	msg := ""
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return serr.WithMessage(serr.ErrInvalidInput, serr.MsgFillAllFields)
		case "mailaddr":
			msg = serr.MsgInvalidEmail
		case "pwlen":
			if msg == "" {
				msg = serr.MsgPasswordTooShort
			}
		}
	}
	if msg == "" {
		msg = serr.MsgFillAllFields
	}
	return serr.WithMessage(serr.ErrInvalidInput, msg)
}

// Credentials проверяет, что email и пароль заданы.
func Credentials(email, password string) error {
	if err := v.Struct(credentials{Email: email, Password: password}); err != nil {
		return serr.WithMessage(serr.ErrInvalidInput, serr.MsgFillAllFields)
	}
	return nil
}

// NoteFields проверяет заголовок и текст заметки. Пробелы не считаются.
func NoteFields(title, content string) error {
	f := noteFields{Title: strings.TrimSpace(title), Content: strings.TrimSpace(content)}
	if err := v.Struct(f); err != nil {
		return serr.WithMessage(serr.ErrInvalidInput, serr.MsgNoteFieldsMissing)
	}
	return nil
}
