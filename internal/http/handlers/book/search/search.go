// Package search реализует HTTP-обработчик поиска книг по подстроке
// названия, автора или ISBN. Без параметра поиска возвращает весь фонд.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/library-management/internal/http/response"
	"github.com/magabrotheeeer/library-management/internal/lib/sl"
	"github.com/magabrotheeeer/library-management/internal/models"
)

// Handler обрабатывает запросы на поиск книг.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска книг.
type Service interface {
	Search(ctx context.Context, term string) ([]*models.Book, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Найти книги
// @Tags Books
// @Produce  json
// @Param search query string false "Подстрока названия, автора или ISBN"
// @Success 200 {array} models.Book
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/books [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	term := r.URL.Query().Get("search")

	books, err := h.service.Search(r.Context(), term)
	if err != nil {
		log.Error("failed to search books", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to search books", err))
		return
	}
	if books == nil {
		books = []*models.Book{}
	}

	render.JSON(w, r, books)
}
