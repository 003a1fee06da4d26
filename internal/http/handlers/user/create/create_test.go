package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/library-management/internal/lib/errs"
	"github.com/magabrotheeeer/library-management/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.DummyUser) (*models.User, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация читателя",
			body: `{"name":"Alice","email":"alice@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, models.DummyUser{
					Name:  "Alice",
					Email: "alice@example.com",
				}).Return(&models.User{
					ID:    "8d2f4b8e-0d23-4b5f-9c55-111111111111",
					Name:  "Alice",
					Email: "alice@example.com",
					Role:  models.RoleStudent,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"role":"student"`,
		},
		{
			name:           "отсутствует email",
			body:           `{"name":"Alice"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"Name and email are required"`,
		},
		{
			name:           "некорректный email",
			body:           `{"name":"Alice","email":"not-an-email"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"Name and email are required"`,
		},
		{
			name:           "недопустимая роль",
			body:           `{"name":"Alice","email":"alice@example.com","role":"wizard"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"Name and email are required"`,
		},
		{
			name: "занятый email",
			body: `{"name":"Alice","email":"alice@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errs.ErrEmailTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"User with this email already exists"`,
		},
		{
			name: "ошибка сервиса",
			body: `{"name":"Alice","email":"alice@example.com"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"Failed to create user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
