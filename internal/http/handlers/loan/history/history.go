// Package history реализует HTTP-обработчик получения истории выдач
// читателя, новые выдачи первыми.
package history

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
	"github.com/magabrotheeeer/library-management/internal/models"
)

// Handler обрабатывает запросы на получение истории выдач читателя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения истории выдач.
type Service interface {
	UserLoans(ctx context.Context, userID string) ([]models.UserLoanItem, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История выдач читателя
// @Tags Loans
// @Produce  json
// @Param user_id path string true "ID читателя"
// @Success 200 {array} models.UserLoanItem
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Читатель не найден"
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/loans/{user_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.history"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "user_id")
	if uuid.Validate(userID) != nil {
		log.Error("invalid user id", slog.String("user_id", userID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid user ID"))
		return
	}

	loans, err := h.service.UserLoans(r.Context(), userID)
	if errors.Is(err, errs.ErrUserNotFound) {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("User not found"))
		return
	}
	if err != nil {
		log.Error("failed to fetch user loans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to fetch user loans", err))
		return
	}

	render.JSON(w, r, loans)
}
