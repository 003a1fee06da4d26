// Package services содержит бизнес-логику работы с читателями, включая кеширование.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/library-management/internal/lib/errs"
	"github.com/magabrotheeeer/library-management/internal/models"
)

// UserRepository определяет методы для работы с читателями в хранилище.
type UserRepository interface {
	// CreateUser добавляет нового читателя и возвращает его данные.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	// GetUserByID возвращает читателя по ID, nil если читателя нет.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// GetUserByEmail возвращает читателя по email, nil если читателя нет.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUser обновляет переданные поля профиля, nil если читателя нет.
	UpdateUser(ctx context.Context, id string, upd models.DummyUserUpdate) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// UserService реализует бизнес-логику работы с читателями.
type UserService struct {
	repo  UserRepository
	cache Cache
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create регистрирует нового читателя. Повторный email отклоняется.
// Роль по умолчанию — student.
func (s *UserService) Create(ctx context.Context, req models.DummyUser) (*models.User, error) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrEmailTaken
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := models.User{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new user", slog.String("id", created.ID))

	cacheKey := fmt.Sprintf("user:%s", created.ID)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return created, nil
}

// Read возвращает читателя по ID, используя кеш или репозиторий.
func (s *UserService) Read(ctx context.Context, id string) (*models.User, error) {
	var result *models.User
	cacheKey := fmt.Sprintf("user:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read user from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errs.ErrUserNotFound
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет переданные поля профиля читателя и обновляет кеш.
func (s *UserService) Update(ctx context.Context, id string, req models.DummyUserUpdate) (*models.User, error) {
	updated, err := s.repo.UpdateUser(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errs.ErrUserNotFound
	}
	s.log.Info("updated user", slog.String("id", id))

	cacheKey := fmt.Sprintf("user:%s", id)
	if err := s.cache.Set(cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache user", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return updated, nil
}
