// Package services содержит бизнес-логику жизненного цикла выдач:
// выдачу, возврат и продление, а также чтение истории и просрочек.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/library-management/internal/lib/day"
	"github.com/magabrotheeeer/library-management/internal/lib/errs"
	"github.com/magabrotheeeer/library-management/internal/models"
)

// LoanRepository определяет методы для работы с выдачами в хранилище.
type LoanRepository interface {
	// CreateLoan добавляет новую запись о выдаче.
	CreateLoan(ctx context.Context, loan models.Loan) (*models.Loan, error)
	// GetLoanByID возвращает запись по ID, nil если записи нет.
	GetLoanByID(ctx context.Context, id string) (*models.Loan, error)
	// MarkLoanReturned проставляет дату возврата и статус RETURNED.
	MarkLoanReturned(ctx context.Context, id string, returnDate time.Time) (*models.Loan, error)
	// ExtendLoan сохраняет новую и исходную даты возврата и счётчик продлений.
	ExtendLoan(ctx context.Context, id string, dueDate, originalDueDate time.Time, extensionsCount int) (*models.Loan, error)
	// ListLoansByUser возвращает выдачи читателя, новые первыми.
	ListLoansByUser(ctx context.Context, userID string) ([]*models.Loan, error)
	// ListOverdueLoans возвращает активные выдачи со сроком раньше now.
	ListOverdueLoans(ctx context.Context, now time.Time) ([]*models.Loan, error)
}

// UserProvider выдаёт данные читателей.
type UserProvider interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// BookProvider выдаёт данные книг.
type BookProvider interface {
	GetBookByID(ctx context.Context, id string) (*models.Book, error)
}

// InventoryManager корректирует количество доступных экземпляров книги.
type InventoryManager interface {
	AdjustCopies(ctx context.Context, bookID string, delta int) (*models.Book, error)
}

// LoanService реализует переходы жизненного цикла выдачи и производные
// представления: историю читателя и список просрочек.
type LoanService struct {
	repo      LoanRepository
	users     UserProvider
	books     BookProvider
	inventory InventoryManager
	log       *slog.Logger
}

// NewLoanService создает новый экземпляр LoanService.
func NewLoanService(repo LoanRepository, users UserProvider, books BookProvider,
	inventory InventoryManager, log *slog.Logger) *LoanService {
	return &LoanService{
		repo:      repo,
		users:     users,
		books:     books,
		inventory: inventory,
		log:       log,
	}
}

// Issue выдаёт книгу читателю: проверяет существование читателя и книги,
// доступность экземпляров, создаёт запись ACTIVE и списывает один экземпляр.
//
// Запись о выдаче и корректировка экземпляров — два отдельных обращения к
// хранилищу без транзакции. Если списание не удалось после создания записи,
// возвращается errs.ErrPartialFailure, компенсация не выполняется.
func (s *LoanService) Issue(ctx context.Context, userID, bookID string, dueDate time.Time) (*models.LoanReceipt, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrUserNotFound
	}

	book, err := s.books.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errs.ErrBookNotFound
	}
	if book.AvailableCopies <= 0 {
		return nil, errs.ErrBookUnavailable
	}

	loan := models.Loan{
		ID:        uuid.NewString(),
		UserID:    userID,
		BookID:    bookID,
		IssueDate: time.Now(),
		DueDate:   dueDate,
		Status:    models.StatusActive,
	}
	created, err := s.repo.CreateLoan(ctx, loan)
	if err != nil {
		return nil, err
	}
	s.log.Info("issued book", slog.String("loan_id", created.ID),
		slog.String("user_id", userID), slog.String("book_id", bookID))

	adjusted, err := s.inventory.AdjustCopies(ctx, bookID, -1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrPartialFailure, err)
	}
	if adjusted == nil {
		return nil, fmt.Errorf("%w: book %s disappeared", errs.ErrPartialFailure, bookID)
	}

	return &models.LoanReceipt{
		ID:        created.ID,
		UserID:    created.UserID,
		BookID:    created.BookID,
		IssueDate: created.IssueDate,
		DueDate:   created.DueDate,
		Status:    created.Status,
	}, nil
}

// Return оформляет возврат книги: переводит запись из ACTIVE в RETURNED
// ровно один раз и возвращает экземпляр в фонд. Повторный возврат отклоняется.
func (s *LoanService) Return(ctx context.Context, loanID string) (*models.LoanReceipt, error) {
	loan, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, errs.ErrLoanNotFound
	}
	if loan.Status == models.StatusReturned {
		return nil, errs.ErrLoanAlreadyReturned
	}

	book, err := s.books.GetBookByID(ctx, loan.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errs.ErrBookNotFound
	}

	updated, err := s.repo.MarkLoanReturned(ctx, loanID, time.Now())
	if err != nil {
		return nil, err
	}
	s.log.Info("returned book", slog.String("loan_id", loanID))

	if _, err := s.inventory.AdjustCopies(ctx, loan.BookID, 1); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrPartialFailure, err)
	}

	return &models.LoanReceipt{
		ID:         updated.ID,
		UserID:     updated.UserID,
		BookID:     updated.BookID,
		IssueDate:  updated.IssueDate,
		DueDate:    updated.DueDate,
		ReturnDate: updated.ReturnDate,
		Status:     updated.Status,
	}, nil
}

// Extend продлевает активную выдачу на extensionDays календарных дней.
// При первом продлении текущий срок замораживается как исходный и далее
// не перезаписывается; счётчик продлений растёт с каждым успешным вызовом.
func (s *LoanService) Extend(ctx context.Context, loanID string, extensionDays int) (*models.ExtensionReceipt, error) {
	loan, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, errs.ErrLoanNotFound
	}
	if loan.Status != models.StatusActive {
		return nil, errs.ErrLoanNotActive
	}

	originalDueDate := loan.DueDate
	if loan.OriginalDueDate != nil {
		originalDueDate = *loan.OriginalDueDate
	}
	newDueDate := loan.DueDate.AddDate(0, 0, extensionDays)

	updated, err := s.repo.ExtendLoan(ctx, loanID, newDueDate, originalDueDate, loan.ExtensionsCount+1)
	if err != nil {
		return nil, err
	}
	s.log.Info("extended loan", slog.String("loan_id", loanID),
		slog.Int("extension_days", extensionDays),
		slog.Int("extensions_count", updated.ExtensionsCount))

	return &models.ExtensionReceipt{
		ID:              updated.ID,
		UserID:          updated.UserID,
		BookID:          updated.BookID,
		IssueDate:       updated.IssueDate,
		OriginalDueDate: originalDueDate,
		ExtendedDueDate: updated.DueDate,
		Status:          updated.Status,
		ExtensionsCount: updated.ExtensionsCount,
	}, nil
}

// UserLoans возвращает историю выдач читателя, новые первыми. Сведения о
// книге подтягиваются отдельным запросом на каждую выдачу; для удалённых
// книг вложение равно nil.
func (s *LoanService) UserLoans(ctx context.Context, userID string) ([]models.UserLoanItem, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrUserNotFound
	}

	loans, err := s.repo.ListLoansByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]models.UserLoanItem, 0, len(loans))
	for _, loan := range loans {
		var summary *models.BookSummary
		book, err := s.books.GetBookByID(ctx, loan.BookID)
		if err != nil {
			return nil, err
		}
		if book != nil {
			summary = &models.BookSummary{
				ID:     book.ID,
				Title:  book.Title,
				Author: book.Author,
			}
		}
		result = append(result, models.UserLoanItem{
			ID:         loan.ID,
			Book:       summary,
			IssueDate:  loan.IssueDate,
			DueDate:    loan.DueDate,
			ReturnDate: loan.ReturnDate,
			Status:     loan.Status,
		})
	}
	return result, nil
}

// Overdue возвращает активные выдачи с истёкшим сроком, дополняя каждую
// сведениями о читателе и книге и количеством дней просрочки.
func (s *LoanService) Overdue(ctx context.Context) ([]models.OverdueLoanItem, error) {
	now := time.Now()

	loans, err := s.repo.ListOverdueLoans(ctx, now)
	if err != nil {
		return nil, err
	}

	result := make([]models.OverdueLoanItem, 0, len(loans))
	for _, loan := range loans {
		var userSummary *models.UserSummary
		user, err := s.users.GetUserByID(ctx, loan.UserID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			userSummary = &models.UserSummary{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
			}
		}

		var bookSummary *models.BookSummary
		book, err := s.books.GetBookByID(ctx, loan.BookID)
		if err != nil {
			return nil, err
		}
		if book != nil {
			bookSummary = &models.BookSummary{
				ID:     book.ID,
				Title:  book.Title,
				Author: book.Author,
			}
		}

		result = append(result, models.OverdueLoanItem{
			ID:          loan.ID,
			User:        userSummary,
			Book:        bookSummary,
			IssueDate:   loan.IssueDate,
			DueDate:     loan.DueDate,
			DaysOverdue: day.Overdue(now, loan.DueDate),
		})
	}
	return result, nil
}
