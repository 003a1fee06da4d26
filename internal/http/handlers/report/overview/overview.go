// Package overview реализует HTTP-обработчик сводной статистики библиотеки.
package overview

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

// Handler обрабатывает запросы сводной статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс отчётной логики сводной статистики.
type Service interface {
	SystemStats(ctx context.Context) (*models.SystemStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводная статистика
// @Description Возвращает суммарный фонд, количество читателей, просрочки и выдачи/возвраты за сегодня.
// @Tags Reports
// @Produce  json
// @Success 200 {object} models.SystemStats
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/loans/overview [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.overview"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.SystemStats(r.Context())
	if err != nil {
		log.Error("failed to fetch system statistics", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to fetch system statistics", err))
		return
	}

	render.JSON(w, r, stats)
}
