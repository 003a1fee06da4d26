// Package popular реализует HTTP-обработчик отчёта о самых выдаваемых книгах.
package popular

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

// Handler обрабатывает запросы отчёта о востребованных книгах.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс отчётной логики по книгам.
type Service interface {
	PopularBooks(ctx context.Context) ([]models.PopularBook, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Самые выдаваемые книги
// @Description Возвращает до десяти книг с наибольшим количеством выдач за всё время.
// @Tags Reports
// @Produce  json
// @Success 200 {array} models.PopularBook
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/loans/books/popular [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.popular"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	books, err := h.service.PopularBooks(r.Context())
	if err != nil {
		log.Error("failed to fetch popular books", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to fetch popular books", err))
		return
	}

	render.JSON(w, r, books)
}
