package state

import (
	"context"

	"github.com/mustafaciftc/notebook-app/internal/client/store"
	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	"github.com/mustafaciftc/notebook-app/internal/shared/models"
	"github.com/mustafaciftc/notebook-app/internal/shared/validate"
)

// Имена операций контейнера авторизации.
const (
	OpRegister    = "auth/register"
	OpLogin       = "auth/login"
	OpLoadStored  = "auth/loadStoredCredentials"
	OpLoadProfile = "auth/loadProfile"
	OpLogout      = "auth/logout"
)

// AuthState: состояние авторизации.
type AuthState struct {
	User            *models.User
	Token           string
	IsLoading       bool
	IsError         bool
	IsSuccess       bool
	Message         string
	IsAuthenticated bool
}

// AuthAPI: методы сервера, нужные контейнеру.
type AuthAPI interface {
	Register(ctx context.Context, name, email, password string) (models.RegisterResponse, error)
	Login(ctx context.Context, email, password string) (models.LoginResponse, error)
	Me(ctx context.Context, token string) (models.MeResponse, error)
}

// Auth: контейнер состояния авторизации.
type Auth struct {
	api   AuthAPI
	store store.Store
	obs   *observable[AuthState]
}

func cloneAuth(s AuthState) AuthState {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// NewAuth создаёт контейнер. Начальное состояние: не авторизован.
func NewAuth(api AuthAPI, st store.Store) *Auth {
	return &Auth{api: api, store: st, obs: newObservable(AuthState{}, cloneAuth)}
}

// Snapshot возвращает копию текущего состояния.
func (a *Auth) Snapshot() AuthState { return a.obs.snapshot() }

// Subscribe подписывает fn на изменения. Возвращает функцию отписки.
func (a *Auth) Subscribe(fn func(Event[AuthState])) func() { return a.obs.subscribe(fn) }

func (a *Auth) pending(op string) {
	a.obs.update(op, Pending, func(s *AuthState) {
		s.IsLoading = true
		s.IsError = false
		s.Message = ""
	})
}

// reject выставляет только флаги ошибки. user и token не трогаются.
func (a *Auth) reject(op string, err error, fallback string) error {
	msg := serr.MessageOr(err, fallback)
	a.obs.update(op, Rejected, func(s *AuthState) {
		s.IsLoading = false
		s.IsError = true
		s.Message = msg
	})
	return err
}

func (a *Auth) authenticated(op, msg, token string, user models.User) {
	a.obs.update(op, Fulfilled, func(s *AuthState) {
		s.IsLoading = false
		s.IsSuccess = true
		s.IsAuthenticated = true
		s.Message = msg
		s.User = &user
		s.Token = token
	})
}

// Register регистрирует пользователя и сохраняет токен.
//
// Ввод проверяется до запроса: при ошибке сервер не вызывается.
func (a *Auth) Register(ctx context.Context, name, email, password string) error {
	a.pending(OpRegister)

	if err := validate.Registration(name, email, password); err != nil {
		return a.reject(OpRegister, err, serr.MsgRegisterFailed)
	}

	resp, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return a.reject(OpRegister, err, serr.MsgRegisterFailed)
	}
	if err := store.SaveSession(ctx, a.store, resp.Data.Token, resp.Data.User); err != nil {
		return a.reject(OpRegister, err, serr.MsgRegisterFailed)
	}

	msg := resp.Message
	if msg == "" {
		msg = serr.MsgRegisterDefault
	}
	a.authenticated(OpRegister, msg, resp.Data.Token, resp.Data.User)
	return nil
}

// Login входит по email и паролю и сохраняет токен.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	a.pending(OpLogin)

	if err := validate.Credentials(email, password); err != nil {
		return a.reject(OpLogin, err, serr.MsgLoginFailed)
	}

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return a.reject(OpLogin, err, serr.MsgLoginFailed)
	}
	if err := store.SaveSession(ctx, a.store, resp.Token, resp.User); err != nil {
		return a.reject(OpLogin, err, serr.MsgLoginFailed)
	}

	msg := resp.Message
	if msg == "" {
		msg = serr.MsgLoginDefault
	}
	a.authenticated(OpLogin, msg, resp.Token, resp.User)
	return nil
}

// LoadStoredCredentials восстанавливает сессию из хранилища.
//
// Авторизованным контейнер становится, только если есть и токен, и пользователь.
// Отсутствие данных не ошибка.
func (a *Auth) LoadStoredCredentials(ctx context.Context) error {
	a.obs.update(OpLoadStored, Pending, func(s *AuthState) { s.IsLoading = true })

	sess, err := store.LoadSession(ctx, a.store)
	if err != nil {
		a.obs.update(OpLoadStored, Rejected, func(s *AuthState) {
			s.IsLoading = false
			s.IsAuthenticated = false
		})
		return serr.WithMessage(err, serr.MsgLoadUserFailed)
	}

	a.obs.update(OpLoadStored, Fulfilled, func(s *AuthState) {
		s.IsLoading = false
		if sess.Token != "" && sess.User != nil {
			s.Token = sess.Token
			s.User = sess.User
			s.IsAuthenticated = true
		}
	})
	return nil
}

// LoadProfile запрашивает /api/users/me с текущим токеном и обновляет пользователя.
func (a *Auth) LoadProfile(ctx context.Context) error {
	a.pending(OpLoadProfile)

	token := a.Snapshot().Token
	if token == "" {
		return a.reject(OpLoadProfile, serr.WithMessage(serr.ErrUnauthorized, serr.MsgTokenMissing), serr.MsgLoadUserFailed)
	}

	resp, err := a.api.Me(ctx, token)
	if err != nil {
		return a.reject(OpLoadProfile, err, serr.MsgLoadUserFailed)
	}

	a.obs.update(OpLoadProfile, Fulfilled, func(s *AuthState) {
		s.IsLoading = false
		s.IsSuccess = true
		s.Message = resp.Message
		u := resp.User
		// сервер без имени в ответе не затирает известное имя
		if u.Name == "" && s.User != nil && s.User.ID == u.ID {
			u.Name = s.User.Name
		}
		s.User = &u
	})
	return nil
}

// Logout удаляет токен и пользователя из хранилища.
func (a *Auth) Logout(ctx context.Context) error {
	a.obs.update(OpLogout, Pending, func(s *AuthState) { s.IsLoading = true })

	if err := store.ClearSession(ctx, a.store); err != nil {
		a.obs.update(OpLogout, Rejected, func(s *AuthState) {
			s.IsLoading = false
			s.IsError = true
			s.Message = serr.MsgLogoutFailed
		})
		return serr.WithMessage(err, serr.MsgLogoutFailed)
	}

	a.obs.update(OpLogout, Fulfilled, func(s *AuthState) {
		s.IsLoading = false
		s.IsSuccess = true
		s.IsAuthenticated = false
		s.Message = serr.MsgLogoutOK
		s.User = nil
		s.Token = ""
	})
	return nil
}

// Reset сбрасывает флаги и сообщение. user и token остаются.
func (a *Auth) Reset() {
	a.obs.update("auth/reset", Notice, func(s *AuthState) {
		s.IsLoading = false
		s.IsError = false
		s.IsSuccess = false
		s.Message = ""
	})
}
