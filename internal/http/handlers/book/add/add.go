// Package add реализует HTTP-обработчик добавления книги в фонд.
//
// Handler принимает JSON-запрос с данными книги, валидирует их, вызывает
// бизнес-логику добавления и возвращает созданную книгу в JSON-формате.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/library-management/internal/http/response"
	"github.com/magabrotheeeer/library-management/internal/lib/errs"
	"github.com/magabrotheeeer/library-management/internal/lib/sl"
	"github.com/magabrotheeeer/library-management/internal/models"
)

// Handler управляет HTTP-запросами на добавление книг.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления книги.
type Service interface {
	Add(ctx context.Context, req models.DummyBook) (*models.Book, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить книгу
// @Description Добавляет книгу в фонд. ISBN, если указан, должен быть уникальным.
// @Tags Books
// @Accept  json
// @Produce  json
// @Param request body models.DummyBook true "Данные новой книги"
// @Success 201 {object} models.Book "Добавленная книга"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или занятый ISBN"
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/books [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.add"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBook
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Title and author are required"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Title and author are required"))
		return
	}

	book, err := h.service.Add(r.Context(), req)
	if errors.Is(err, errs.ErrISBNTaken) {
		log.Error("isbn already taken", slog.String("isbn", req.ISBN))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Book with this ISBN already exists"))
		return
	}
	if err != nil {
		log.Error("failed to add book", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to add book", err))
		return
	}

	log.Info("added book", slog.String("id", book.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, book)
}
