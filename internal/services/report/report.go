// Package services содержит отчётную логику: востребованность книг,
// активность читателей и сводную статистику по библиотеке.
// Отчёты только читают хранилище и не изменяют состояние.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/library-management/internal/lib/day"
	"github.com/magabrotheeeer/library-management/internal/models"
)

// Размер всех топ-отчётов.
const topLimit = 10

// ReportRepository определяет запросы чтения и агрегирования для отчётов.
type ReportRepository interface {
	// GroupLoansByBook возвращает книги по убыванию количества выдач.
	GroupLoansByBook(ctx context.Context, limit int) ([]models.BookBorrowCount, error)
	// GroupLoansByUser возвращает читателей по убыванию количества выдач.
	GroupLoansByUser(ctx context.Context, limit int) ([]models.UserBorrowCount, error)
	// CountActiveLoansByUsers считает активные выдачи переданных читателей.
	CountActiveLoansByUsers(ctx context.Context, userIDs []string) (map[string]int, error)
	// ListUsersByIDs возвращает читателей по набору идентификаторов.
	ListUsersByIDs(ctx context.Context, ids []string) ([]*models.User, error)
	// GetBookByID возвращает книгу по ID, nil если книги нет.
	GetBookByID(ctx context.Context, id string) (*models.Book, error)
	// GetInventoryStats возвращает суммарные количества экземпляров по фонду.
	GetInventoryStats(ctx context.Context) (*models.InventoryStats, error)
	// CountUsers возвращает общее количество читателей.
	CountUsers(ctx context.Context) (int, error)
	// CountOverdueLoans считает активные выдачи со сроком раньше before.
	CountOverdueLoans(ctx context.Context, before time.Time) (int, error)
	// CountLoansIssuedBetween считает выдачи в полуинтервале [from, to).
	CountLoansIssuedBetween(ctx context.Context, from, to time.Time) (int, error)
	// CountLoansReturnedBetween считает возвраты в полуинтервале [from, to).
	CountLoansReturnedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// ReportService строит отчёты по данным о книгах, читателях и выдачах.
type ReportService struct {
	repo ReportRepository
	log  *slog.Logger
}

// NewReportService создает новый экземпляр ReportService.
func NewReportService(repo ReportRepository, log *slog.Logger) *ReportService {
	return &ReportService{
		repo: repo,
		log:  log,
	}
}

// PopularBooks возвращает до десяти самых выдаваемых книг за всё время.
// Книги, уже удалённые из фонда, из отчёта выпадают.
func (s *ReportService) PopularBooks(ctx context.Context) ([]models.PopularBook, error) {
	counts, err := s.repo.GroupLoansByBook(ctx, topLimit)
	if err != nil {
		return nil, err
	}

	result := make([]models.PopularBook, 0, len(counts))
	for _, item := range counts {
		book, err := s.repo.GetBookByID(ctx, item.BookID)
		if err != nil {
			return nil, err
		}
		if book == nil {
			continue
		}
		result = append(result, models.PopularBook{
			BookID:      book.ID,
			Title:       book.Title,
			Author:      book.Author,
			BorrowCount: item.Count,
		})
	}
	return result, nil
}

// ActiveUsers возвращает до десяти читателей с наибольшим количеством
// выдач за всё время вместе с количеством текущих активных выдач.
// Удалённые читатели остаются в отчёте с подписью "Unknown User".
func (s *ReportService) ActiveUsers(ctx context.Context) ([]models.ActiveUser, error) {
	counts, err := s.repo.GroupLoansByUser(ctx, topLimit)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(counts))
	for _, item := range counts {
		userIDs = append(userIDs, item.UserID)
	}

	activeByUser, err := s.repo.CountActiveLoansByUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.ListUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	nameByUser := make(map[string]string, len(users))
	for _, user := range users {
		nameByUser[user.ID] = user.Name
	}

	result := make([]models.ActiveUser, 0, len(counts))
	for _, item := range counts {
		name, ok := nameByUser[item.UserID]
		if !ok {
			name = "Unknown User"
		}
		result = append(result, models.ActiveUser{
			UserID:         item.UserID,
			Name:           name,
			BooksBorrowed:  item.Count,
			CurrentBorrows: activeByUser[item.UserID],
		})
	}
	return result, nil
}

// SystemStats возвращает сводную статистику: суммарный фонд, количество
// читателей, просрочки на начало текущих суток и выдачи/возвраты за
// сегодняшний день в границах [начало сегодня, начало завтра).
func (s *ReportService) SystemStats(ctx context.Context) (*models.SystemStats, error) {
	today := day.StartOf(time.Now())
	tomorrow := day.StartOfNext(time.Now())

	inventory, err := s.repo.GetInventoryStats(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	overdueLoans, err := s.repo.CountOverdueLoans(ctx, today)
	if err != nil {
		return nil, err
	}

	loansToday, err := s.repo.CountLoansIssuedBetween(ctx, today, tomorrow)
	if err != nil {
		return nil, err
	}

	returnsToday, err := s.repo.CountLoansReturnedBetween(ctx, today, tomorrow)
	if err != nil {
		return nil, err
	}

	return &models.SystemStats{
		TotalBooks:     inventory.TotalBooks,
		TotalUsers:     totalUsers,
		BooksAvailable: inventory.BooksAvailable,
		BooksBorrowed:  inventory.TotalBooks - inventory.BooksAvailable,
		OverdueLoans:   overdueLoans,
		LoansToday:     loansToday,
		ReturnsToday:   returnsToday,
	}, nil
}
