package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/library-management/internal/lib/errs"
	"github.com/magabrotheeeer/library-management/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateBook(ctx context.Context, book models.Book) (*models.Book, error) {
	args := m.Called(ctx, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}
func (m *RepoMock) GetBookByID(ctx context.Context, id string) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}
func (m *RepoMock) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}
func (m *RepoMock) SearchBooks(ctx context.Context, term string) ([]*models.Book, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Book), args.Error(1)
}
func (m *RepoMock) UpdateBook(ctx context.Context, id string, upd models.DummyBookUpdate) (*models.Book, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}
func (m *RepoMock) DeleteBook(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestBookService_Add(t *testing.T) {
	tests := []struct {
		name       string
		req        models.DummyBook
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    error
		wantCopies int
	}{
		{
			name: "success add with default single copy",
			req:  models.DummyBook{Title: "Dune", Author: "Frank Herbert"},
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("CreateBook", mock.Anything, mock.MatchedBy(func(b models.Book) bool {
					return b.Title == "Dune" && b.Copies == 1 && b.AvailableCopies == 1 && b.ISBN == nil
				})).Return(&models.Book{
					ID: "b-1", Title: "Dune", Author: "Frank Herbert", Copies: 1, AvailableCopies: 1,
				}, nil).Once()
				c.On("Set", "book:b-1", mock.Anything, time.Hour).Return(nil).Once()
			},
			wantCopies: 1,
		},
		{
			name: "explicit copies fill availability",
			req:  models.DummyBook{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Copies: 5},
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("GetBookByISBN", mock.Anything, "9780441013593").Return(nil, nil).Once()
				r.On("CreateBook", mock.Anything, mock.MatchedBy(func(b models.Book) bool {
					return b.Copies == 5 && b.AvailableCopies == 5 &&
						b.ISBN != nil && *b.ISBN == "9780441013593"
				})).Return(&models.Book{
					ID: "b-2", Title: "Dune", Copies: 5, AvailableCopies: 5,
				}, nil).Once()
				c.On("Set", "book:b-2", mock.Anything, time.Hour).Return(nil).Once()
			},
			wantCopies: 5,
		},
		{
			name: "duplicate isbn rejected",
			req:  models.DummyBook{Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593"},
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetBookByISBN", mock.Anything, "9780441013593").Return(&models.Book{
					ID: "b-0",
				}, nil).Once()
			},
			wantErr: errs.ErrISBNTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewBookService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			got, err := svc.Add(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantCopies, got.Copies)
				assert.Equal(t, tt.wantCopies, got.AvailableCopies)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestBookService_Read(t *testing.T) {
	book := &models.Book{ID: "b-1", Title: "Dune", Author: "Frank Herbert", Copies: 3, AvailableCopies: 2}

	t.Run("cache hit skips repo", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewBookService(repo, cache, newNoopLogger())

		cache.On("Get", "book:b-1", mock.Anything).Return(true, nil).Run(func(args mock.Arguments) {
			ptr := args.Get(1).(**models.Book)
			*ptr = book
		}).Once()

		got, err := svc.Read(context.Background(), "b-1")
		assert.NoError(t, err)
		assert.Equal(t, book, got)
		cache.AssertExpectations(t)
	})

	t.Run("cache miss reads repo and caches", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewBookService(repo, cache, newNoopLogger())

		cache.On("Get", "book:b-1", mock.Anything).Return(false, nil).Once()
		repo.On("GetBookByID", mock.Anything, "b-1").Return(book, nil).Once()
		cache.On("Set", "book:b-1", book, time.Hour).Return(nil).Once()

		got, err := svc.Read(context.Background(), "b-1")
		assert.NoError(t, err)
		assert.Equal(t, book, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("missing book", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		svc := NewBookService(repo, cache, newNoopLogger())

		cache.On("Get", "book:b-404", mock.Anything).Return(false, nil).Once()
		repo.On("GetBookByID", mock.Anything, "b-404").Return(nil, nil).Once()

		_, err := svc.Read(context.Background(), "b-404")
		assert.ErrorIs(t, err, errs.ErrBookNotFound)
		repo.AssertExpectations(t)
	})
}

func TestBookService_Search(t *testing.T) {
	books := []*models.Book{
		{ID: "b-1", Title: "Dune", Author: "Frank Herbert"},
		{ID: "b-2", Title: "Dune Messiah", Author: "Frank Herbert"},
	}

	repo := new(RepoMock)
	svc := NewBookService(repo, new(CacheMock), newNoopLogger())

	repo.On("SearchBooks", mock.Anything, "dune").Return(books, nil).Once()

	got, err := svc.Search(context.Background(), "dune")
	assert.NoError(t, err)
	assert.Equal(t, books, got)
	repo.AssertExpectations(t)
}

func TestBookService_Remove(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    error
	}{
		{
			name: "success remove invalidates cache",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Invalidate", "book:b-1").Return(nil).Once()
				r.On("DeleteBook", mock.Anything, "b-1").Return(1, nil).Once()
			},
		},
		{
			name: "cache invalidate error but proceed",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Invalidate", "book:b-1").Return(errors.New("cache fail")).Once()
				r.On("DeleteBook", mock.Anything, "b-1").Return(1, nil).Once()
			},
		},
		{
			name: "missing book",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Invalidate", "book:b-1").Return(nil).Once()
				r.On("DeleteBook", mock.Anything, "b-1").Return(0, nil).Once()
			},
			wantErr: errs.ErrBookNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			svc := NewBookService(repo, cache, newNoopLogger())

			tt.setupMocks(repo, cache)

			err := svc.Remove(context.Background(), "b-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
