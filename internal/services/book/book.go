// Package services содержит бизнес-логику работы с книжным фондом, включая кеширование.
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

// BookRepository определяет методы для работы с книгами в хранилище.
type BookRepository interface {
	// CreateBook добавляет новую книгу и возвращает её данные.
	CreateBook(ctx context.Context, book models.Book) (*models.Book, error)
	// GetBookByID возвращает книгу по ID, nil если книги нет.
	GetBookByID(ctx context.Context, id string) (*models.Book, error)
	// GetBookByISBN возвращает книгу по ISBN, nil если книги нет.
	GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error)
	// SearchBooks возвращает книги по подстроке названия, автора или ISBN.
	SearchBooks(ctx context.Context, term string) ([]*models.Book, error)
	// UpdateBook обновляет переданные поля книги, nil если книги нет.
	UpdateBook(ctx context.Context, id string, upd models.DummyBookUpdate) (*models.Book, error)
	// DeleteBook удаляет книгу и возвращает количество удалённых строк.
	DeleteBook(ctx context.Context, id string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// BookService реализует бизнес-логику работы с книгами.
type BookService struct {
	repo  BookRepository
	cache Cache
	log   *slog.Logger
}

// NewBookService создает новый экземпляр BookService.
func NewBookService(repo BookRepository, cache Cache, log *slog.Logger) *BookService {
	return &BookService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Add добавляет книгу в фонд. Повторный ISBN отклоняется. Количество
// экземпляров по умолчанию 1, доступные экземпляры равны общему количеству.
func (s *BookService) Add(ctx context.Context, req models.DummyBook) (*models.Book, error) {
	var isbn *string
	if req.ISBN != "" {
		existing, err := s.repo.GetBookByISBN(ctx, req.ISBN)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errs.ErrISBNTaken
		}
		isbn = &req.ISBN
	}

	copies := req.Copies
	if copies == 0 {
		copies = 1
	}

	book := models.Book{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            isbn,
		Copies:          copies,
		AvailableCopies: copies,
	}

	created, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return nil, err
	}
	s.log.Info("added new book", slog.String("id", created.ID), slog.String("title", created.Title))

	cacheKey := fmt.Sprintf("book:%s", created.ID)
	if err := s.cache.Set(cacheKey, created, time.Hour); err != nil {
		s.log.Warn("failed to cache book", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return created, nil
}

// Read возвращает книгу по ID, используя кеш или репозиторий.
func (s *BookService) Read(ctx context.Context, id string) (*models.Book, error) {
	var result *models.Book
	cacheKey := fmt.Sprintf("book:%s", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read book from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errs.ErrBookNotFound
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache book", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Search возвращает книги по подстроке поиска. Пустая строка возвращает весь фонд.
func (s *BookService) Search(ctx context.Context, term string) ([]*models.Book, error) {
	return s.repo.SearchBooks(ctx, term)
}

// Update обновляет переданные поля книги и обновляет кеш.
func (s *BookService) Update(ctx context.Context, id string, req models.DummyBookUpdate) (*models.Book, error) {
	updated, err := s.repo.UpdateBook(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errs.ErrBookNotFound
	}
	s.log.Info("updated book", slog.String("id", id))

	cacheKey := fmt.Sprintf("book:%s", id)
	if err := s.cache.Set(cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache book", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return updated, nil
}

// Remove удаляет книгу из фонда и инвалидирует кеш.
// Записи о выдачах удалённой книги остаются в истории.
func (s *BookService) Remove(ctx context.Context, id string) error {
	cacheKey := fmt.Sprintf("book:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove book from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.DeleteBook(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.ErrBookNotFound
	}
	s.log.Info("removed book", slog.String("id", id))
	return nil
}
