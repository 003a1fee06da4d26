package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/library-management/internal/lib/errs"
	"github.com/magabrotheeeer/library-management/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, id string) (*models.Book, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

const bookID = "3a1c9d5e-7f60-48a2-8b33-222222222222"

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение книги",
			id:   bookID,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, bookID).Return(&models.Book{
					ID:              bookID,
					Title:           "Dune",
					Author:          "Frank Herbert",
					Copies:          3,
					AvailableCopies: 2,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Dune"`,
		},
		{
			name:           "некорректный id в URL",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"Invalid book ID"`,
		},
		{
			name: "книга не найдена",
			id:   bookID,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, bookID).Return(nil, errs.ErrBookNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"Book not found"`,
		},
		{
			name: "ошибка сервиса чтения",
			id:   bookID,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, bookID).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"Failed to fetch book"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/books/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
