// Package remove реализует HTTP-обработчик удаления книги из фонда.
// Успешное удаление отвечает кодом 204 без тела.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/library-management/internal/http/response"
	"github.com/magabrotheeeer/library-management/internal/lib/errs"
	"github.com/magabrotheeeer/library-management/internal/lib/sl"
)

// Handler обрабатывает запросы на удаление книги.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления книги.
type Service interface {
	Remove(ctx context.Context, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить книгу
// @Tags Books
// @Param id path string true "ID книги"
// @Success 204 "Книга удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Книга не найдена"
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/books/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		log.Error("invalid book id", slog.String("id", id))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid book ID"))
		return
	}

	err := h.service.Remove(r.Context(), id)
	if errors.Is(err, errs.ErrBookNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Book not found"))
		return
	}
	if err != nil {
		log.Error("failed to delete book", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to delete book", err))
		return
	}

	log.Info("removed book", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
