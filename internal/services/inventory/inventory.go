// Package services содержит инвентарную логику: корректировку количества
// доступных экземпляров книги при выдаче и возврате.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/library-management/internal/models"
)

// BookRepository определяет метод корректировки экземпляров в хранилище.
type BookRepository interface {
	// AdjustCopies прибавляет delta к доступным экземплярам, nil если книги нет.
	AdjustCopies(ctx context.Context, id string, delta int) (*models.Book, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// InventoryService корректирует количество доступных экземпляров книги
// относительно событий выдачи и возврата.
type InventoryService struct {
	repo  BookRepository
	cache Cache
	log   *slog.Logger
}

// NewInventoryService создает новый экземпляр InventoryService.
func NewInventoryService(repo BookRepository, cache Cache, log *slog.Logger) *InventoryService {
	return &InventoryService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// AdjustCopies прибавляет delta к доступным экземплярам книги и
// инвалидирует её кеш. Если книги нет, возвращает nil без ошибки —
// вызывающий обязан трактовать это как неудачу, корректировка не выполнена.
//
// Доступность и верхняя граница против общего количества экземпляров
// здесь не проверяются: проверку доступности перед списанием выполняет
// вызывающий, нижнюю границу держит только ограничение схемы.
func (s *InventoryService) AdjustCopies(ctx context.Context, bookID string, delta int) (*models.Book, error) {
	updated, err := s.repo.AdjustCopies(ctx, bookID, delta)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		s.log.Warn("adjust copies skipped, book not found", slog.String("book_id", bookID))
		return nil, nil
	}

	cacheKey := fmt.Sprintf("book:%s", bookID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate book cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	s.log.Info("adjusted available copies",
		slog.String("book_id", bookID),
		slog.Int("delta", delta),
		slog.Int("available_copies", updated.AvailableCopies))
	return updated, nil
}
