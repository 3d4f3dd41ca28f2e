// Package service содержит бизнес-логику сервера заметок.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/repos_mock.go -package=mocks

import (
	"context"

	"github.com/mustafaciftc/notebook-app/internal/server/config"
	"github.com/mustafaciftc/notebook-app/internal/server/models"
)

// Repositories: набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users  UsersRepo
	Notes  NotesRepo
	Health HealthRepo
}

// Services: агрегатор всех сервисов приложения.
type Services struct {
	Auth   *AuthService
	Notes  *NotesService
	Health *HealthService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (ключ подписи, TTL токенов, параметры хэширования).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos.Users, cfg),
		Notes:  NewNotesService(repos.Notes),
		Health: NewHealthService(repos.Health),
	}
}

// HealthRepo: минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo: репозиторий пользователей (register/login/me).
type UsersRepo interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, name, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
}

// NotesRepo: репозиторий заметок (CRUD).
type NotesRepo interface {
	Create(ctx context.Context, title, content string) (models.Note, error)
	List(ctx context.Context) ([]models.Note, error)
	GetByID(ctx context.Context, id int64) (models.Note, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
}

// HealthService проверяет, что сервер может работать с базой.
type HealthService struct {
	repo HealthRepo
}

func NewHealthService(repo HealthRepo) *HealthService {
	return &HealthService{repo: repo}
}

func (s *HealthService) Ping(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	return s.repo.Ping(ctx)
}
