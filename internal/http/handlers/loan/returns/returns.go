// Package returns реализует HTTP-обработчик возврата книги.
//
// Handler принимает ID записи о выдаче, вызывает бизнес-логику возврата
// и возвращает обновлённую проекцию с датой возврата. Повторный возврат
// отклоняется.
package returns

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/library-management/internal/http/response"
	"github.com/magabrotheeeer/library-management/internal/lib/errs"
	"github.com/magabrotheeeer/library-management/internal/lib/sl"
	"github.com/magabrotheeeer/library-management/internal/models"
)

// Handler управляет HTTP-запросами на возврат книг.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики возврата книги.
type Service interface {
	Return(ctx context.Context, loanID string) (*models.LoanReceipt, error)
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
// @Summary Вернуть книгу
// @Tags Loans
// @Accept  json
// @Produce  json
// @Param request body models.DummyReturn true "ID записи о выдаче"
// @Success 200 {object} models.LoanReceipt "Запись после возврата"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или повторный возврат"
// @Failure 404 {object} response.ErrorResponse "Запись или книга не найдены"
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/loans/returns [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.returns"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyReturn
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Loan ID is required"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Loan ID is required"))
		return
	}

	if uuid.Validate(req.LoanID) != nil {
		log.Error("invalid loan id", slog.String("loan_id", req.LoanID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid loan ID"))
		return
	}

	receipt, err := h.service.Return(r.Context(), req.LoanID)
	switch {
	case errors.Is(err, errs.ErrLoanNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Loan not found"))
		return
	case errors.Is(err, errs.ErrLoanAlreadyReturned):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("This book has already been returned"))
		return
	case errors.Is(err, errs.ErrBookNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Book not found for this loan"))
		return
	case err != nil:
		log.Error("failed to return book", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to return book", err))
		return
	}

	log.Info("returned book", slog.String("loan_id", receipt.ID))
	render.JSON(w, r, receipt)
}
