package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/library-management/internal/models"
)

// GroupLoansByBook возвращает книги, отсортированные по количеству выдач
// за всё время, не более limit штук.
func (s *Storage) GroupLoansByBook(ctx context.Context, limit int) ([]models.BookBorrowCount, error) {
	const op = "storage.GroupLoansByBook"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT book_id, COUNT(*) AS borrow_count
			  FROM loans
			  GROUP BY book_id
			  ORDER BY borrow_count DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []models.BookBorrowCount
	for rows.Next() {
		var item models.BookBorrowCount
		if err := rows.Scan(&item.BookID, &item.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GroupLoansByUser возвращает читателей, отсортированных по количеству
// выдач за всё время, не более limit штук.
func (s *Storage) GroupLoansByUser(ctx context.Context, limit int) ([]models.UserBorrowCount, error) {
	const op = "storage.GroupLoansByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, COUNT(*) AS books_borrowed
			  FROM loans
			  GROUP BY user_id
			  ORDER BY books_borrowed DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []models.UserBorrowCount
	for rows.Next() {
		var item models.UserBorrowCount
		if err := rows.Scan(&item.UserID, &item.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountActiveLoansByUsers считает текущие активные выдачи каждого из
// переданных читателей. Читатели без активных выдач в результат не попадают.
func (s *Storage) CountActiveLoansByUsers(ctx context.Context, userIDs []string) (map[string]int, error) {
	const op = "storage.CountActiveLoansByUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if len(userIDs) == 0 {
		return map[string]int{}, nil
	}

	query := `SELECT user_id, COUNT(*) AS current_borrows
			  FROM loans
			  WHERE user_id = ANY($1::uuid[]) AND status = $2
			  GROUP BY user_id`
	rows, err := s.DB.QueryContext(ctx, query, userIDs, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]int, len(userIDs))
	for rows.Next() {
		var userID string
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[userID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
