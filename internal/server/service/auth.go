package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mustafaciftc/notebook-app/internal/server/config"
	"github.com/mustafaciftc/notebook-app/internal/server/crypto"
	serr "github.com/mustafaciftc/notebook-app/internal/shared/errors"
	shared "github.com/mustafaciftc/notebook-app/internal/shared/models"
	"github.com/mustafaciftc/notebook-app/internal/shared/validate"
)

// AuthService реализует регистрацию и вход пользователей.
//
// Токен сессии: HS256 JWT. При регистрации он живёт RegisterTTL и несёт name,
// при логине: LoginTTL и только userId/email.
type AuthService struct {
	users  UsersRepo
	hasher crypto.Hasher
	jwt    crypto.JWTConfig

	registerTTL time.Duration
	loginTTL    time.Duration
}

// AuthResult: выданный токен и публичные данные пользователя.
type AuthResult struct {
	Token string
	User  shared.User
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) *AuthService {
	hasher, err := crypto.NewHasher(cfg.Password.Hasher, cfg.Password.Bcrypt.Cost, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	})
	if err != nil {
		// конфиг уже провалидирован, сюда попадаем только из тестов
		hasher = crypto.BcryptHasher{Cost: cfg.Password.Bcrypt.Cost}
	}

	return &AuthService{
		users:  users,
		hasher: hasher,
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			SigningKey: cfg.Auth.Secret,
		},
		registerTTL: cfg.Auth.RegisterTTL,
		loginTTL:    cfg.Auth.LoginTTL,
	}
}

// secretConfigured: ключ из одних пробелов считается незаданным, как и в NewToken.
func (s *AuthService) secretConfigured() bool {
	return strings.TrimSpace(s.jwt.SigningKey) != ""
}

// Register регистрирует нового пользователя и сразу выдаёт токен.
//
// Порядок проверок:
//   - валидация полей (ErrInvalidInput), до любого обращения к базе;
//   - ключ подписи задан (ErrServerConfig);
//   - email свободен (ErrAlreadyExists);
//   - хэш пароля и вставка; гонка двух регистраций закрыта UNIQUE (ErrAlreadyExists).
func (s *AuthService) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	if err := validate.Registration(name, email, password); err != nil {
		return AuthResult{}, err
	}
	if _, ok := s.hasher.(crypto.BcryptHasher); ok && len(password) > crypto.MaxBcryptPasswordLen {
		return AuthResult{}, serr.WithMessage(serr.ErrInvalidInput, serr.MsgPasswordTooLong)
	}
	if !s.secretConfigured() {
		return AuthResult{}, serr.WithMessage(serr.ErrServerConfig, serr.MsgServerConfig)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if exists {
		return AuthResult{}, serr.WithMessage(serr.ErrAlreadyExists, serr.MsgEmailTaken)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return AuthResult{}, serr.WithMessage(serr.ErrInvalidInput, serr.MsgPasswordTooLong)
		}
		return AuthResult{}, fmt.Errorf("hash password: %w: %v", serr.ErrInternal, err)
	}

	user, err := s.users.Create(ctx, name, email, hash)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return AuthResult{}, serr.WithMessage(serr.ErrAlreadyExists, serr.MsgEmailTaken)
		}
		return AuthResult{}, err
	}

	token, err := crypto.NewToken(crypto.Identity{UserID: user.ID, Email: user.Email, Name: user.Name}, s.jwt, s.registerTTL)
	if err != nil {
		return AuthResult{}, s.tokenError(err)
	}
	return AuthResult{Token: token, User: user.Public()}, nil
}

// Login проверяет email/пароль и выдаёт токен.
//
// Ошибки:
//   - ErrInvalidInput: пустой email или пароль;
//   - ErrServerConfig: не задан ключ подписи;
//   - ErrNotFound: пользователь не найден;
//   - ErrInvalidCredentials: неверный пароль.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if err := validate.Credentials(email, password); err != nil {
		return AuthResult{}, err
	}
	if !s.secretConfigured() {
		return AuthResult{}, serr.WithMessage(serr.ErrServerConfig, serr.MsgServerConfig)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return AuthResult{}, serr.WithMessage(serr.ErrNotFound, serr.MsgUserNotFound)
		}
		return AuthResult{}, err
	}

	ok, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return AuthResult{}, fmt.Errorf("verify password: %w: %v", serr.ErrInternal, err)
	}
	if !ok {
		return AuthResult{}, serr.WithMessage(serr.ErrInvalidCredentials, serr.MsgWrongPassword)
	}

	token, err := crypto.NewToken(crypto.Identity{UserID: user.ID, Email: user.Email}, s.jwt, s.loginTTL)
	if err != nil {
		return AuthResult{}, s.tokenError(err)
	}
	return AuthResult{Token: token, User: user.Public()}, nil
}

func (s *AuthService) tokenError(err error) error {
	if errors.Is(err, serr.ErrServerConfig) {
		return serr.WithMessage(serr.ErrServerConfig, serr.MsgServerConfig)
	}
	return fmt.Errorf("sign token: %w: %v", serr.ErrInternal, err)
}

// Profile возвращает публичные данные пользователя по id из токена.
//
// Токен логина не несёт name, поэтому имя берётся из базы.
func (s *AuthService) Profile(ctx context.Context, userID int64) (shared.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return shared.User{}, serr.WithMessage(serr.ErrNotFound, serr.MsgUserNotFound)
		}
		return shared.User{}, err
	}
	return user.Public(), nil
}
