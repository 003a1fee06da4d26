// Package extend реализует HTTP-обработчик продления срока выдачи.
//
// Handler проверяет идентификатор и количество дней, вызывает бизнес-логику
// продления и возвращает проекцию с исходной и новой датами возврата.
package extend

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/library-management/internal/http/response"
	"github.com/magabrotheeeer/library-management/internal/lib/errs"
	"github.com/magabrotheeeer/library-management/internal/lib/sl"
	"github.com/magabrotheeeer/library-management/internal/models"
)

// Handler управляет HTTP-запросами на продление выдач.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики продления выдачи.
type Service interface {
	Extend(ctx context.Context, loanID string, extensionDays int) (*models.ExtensionReceipt, error)
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
// @Summary Продлить выдачу
// @Description Продлевает активную выдачу на указанное количество календарных дней.
// @Tags Loans
// @Accept  json
// @Produce  json
// @Param id path string true "ID записи о выдаче"
// @Param request body models.DummyExtend true "Количество дней продления"
// @Success 200 {object} models.ExtensionReceipt "Запись после продления"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или неактивная выдача"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/loans/{id}/extend [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.extend"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		log.Error("invalid loan id", slog.String("id", id))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid loan ID"))
		return
	}

	var req models.DummyExtend
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Valid extension days are required"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Valid extension days are required"))
		return
	}

	receipt, err := h.service.Extend(r.Context(), id, req.ExtensionDays)
	switch {
	case errors.Is(err, errs.ErrLoanNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Loan not found"))
		return
	case errors.Is(err, errs.ErrLoanNotActive):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Only active loans can be extended"))
		return
	case err != nil:
		log.Error("failed to extend loan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to extend loan", err))
		return
	}

	log.Info("extended loan", slog.String("loan_id", receipt.ID),
		slog.Int("extensions_count", receipt.ExtensionsCount))
	render.JSON(w, r, receipt)
}
