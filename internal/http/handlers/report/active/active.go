// Package active реализует HTTP-обработчик отчёта о самых активных читателях.
package active

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

// Handler обрабатывает запросы отчёта об активных читателях.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс отчётной логики по читателям.
type Service interface {
	ActiveUsers(ctx context.Context) ([]models.ActiveUser, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Самые активные читатели
// @Description Возвращает до десяти читателей с наибольшим количеством выдач за всё время.
// @Tags Reports
// @Produce  json
// @Success 200 {array} models.ActiveUser
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/loans/users/active [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.active"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.ActiveUsers(r.Context())
	if err != nil {
		log.Error("failed to fetch active users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to fetch active users", err))
		return
	}

	render.JSON(w, r, users)
}
