// Package overdue реализует HTTP-обработчик получения списка просроченных
// выдач: активных записей, срок возврата которых уже прошёл.
package overdue

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

// Handler обрабатывает запросы на получение просроченных выдач.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения просрочек.
type Service interface {
	Overdue(ctx context.Context) ([]models.OverdueLoanItem, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Просроченные выдачи
// @Tags Loans
// @Produce  json
// @Success 200 {array} models.OverdueLoanItem
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/loans/overdue [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.overdue"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	loans, err := h.service.Overdue(r.Context())
	if err != nil {
		log.Error("failed to fetch overdue loans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to fetch overdue loans", err))
		return
	}

	render.JSON(w, r, loans)
}
