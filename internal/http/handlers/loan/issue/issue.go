// Package issue реализует HTTP-обработчик выдачи книги читателю.
//
// Handler проверяет наличие и формат идентификаторов, парсит срок возврата,
// вызывает бизнес-логику выдачи и возвращает проекцию созданной записи.
package issue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/library-management/internal/http/response"
	"github.com/magabrotheeeer/library-management/internal/lib/errs"
	"github.com/magabrotheeeer/library-management/internal/lib/sl"
	"github.com/magabrotheeeer/library-management/internal/models"
)

// Handler управляет HTTP-запросами на выдачу книг.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики выдачи книги.
type Service interface {
	Issue(ctx context.Context, userID, bookID string, dueDate time.Time) (*models.LoanReceipt, error)
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
// @Summary Выдать книгу
// @Description Оформляет выдачу книги читателю до указанной даты.
// @Tags Loans
// @Accept  json
// @Produce  json
// @Param request body models.DummyIssue true "Читатель, книга и срок возврата"
// @Success 201 {object} models.LoanReceipt "Созданная запись о выдаче"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или нет доступных экземпляров"
// @Failure 404 {object} response.ErrorResponse "Читатель или книга не найдены"
// @Failure 500 {object} response.InternalErrorResponse "Ошибка сервера"
// @Router /api/loans [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.issue"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyIssue
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("User ID, Book ID, and due date are required"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("User ID, Book ID, and due date are required"))
		return
	}

	if uuid.Validate(req.UserID) != nil || uuid.Validate(req.BookID) != nil {
		log.Error("invalid user or book id",
			slog.String("user_id", req.UserID), slog.String("book_id", req.BookID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid user or book ID"))
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		log.Error("invalid due date", slog.String("due_date", req.DueDate))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid due date"))
		return
	}

	receipt, err := h.service.Issue(r.Context(), req.UserID, req.BookID, dueDate)
	switch {
	case errors.Is(err, errs.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("User not found"))
		return
	case errors.Is(err, errs.ErrBookNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("Book not found"))
		return
	case errors.Is(err, errs.ErrBookUnavailable):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Book is not available for loan"))
		return
	case err != nil:
		log.Error("failed to issue book", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Internal("Failed to issue book", err))
		return
	}

	log.Info("issued book", slog.String("loan_id", receipt.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, receipt)
}

// parseDueDate принимает срок возврата в RFC3339 или в формате 2006-01-02.
func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
