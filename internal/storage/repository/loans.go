package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/library-management/internal/models"
)

// CreateLoan вставляет новую запись о выдаче и возвращает её данные.
func (s *Storage) CreateLoan(ctx context.Context, loan models.Loan) (*models.Loan, error) {
	const op = "storage.CreateLoan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO loans (id, user_id, book_id, issue_date, due_date, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, user_id, book_id, issue_date, due_date, return_date,
			      status, extensions_count, original_due_date`
	row := s.DB.QueryRowContext(ctx, query,
		loan.ID, loan.UserID, loan.BookID, loan.IssueDate, loan.DueDate, loan.Status)

	var result models.Loan
	if err := row.Scan(&result.ID, &result.UserID, &result.BookID, &result.IssueDate,
		&result.DueDate, &result.ReturnDate, &result.Status,
		&result.ExtensionsCount, &result.OriginalDueDate); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetLoanByID возвращает запись о выдаче по ID. Если записи нет, возвращает nil без ошибки.
func (s *Storage) GetLoanByID(ctx context.Context, id string) (*models.Loan, error) {
	const op = "storage.GetLoanByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, book_id, issue_date, due_date, return_date,
			      status, extensions_count, original_due_date
			  FROM loans WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Loan
	err := row.Scan(&result.ID, &result.UserID, &result.BookID, &result.IssueDate,
		&result.DueDate, &result.ReturnDate, &result.Status,
		&result.ExtensionsCount, &result.OriginalDueDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// MarkLoanReturned проставляет дату возврата и статус RETURNED и возвращает
// обновлённую запись.
func (s *Storage) MarkLoanReturned(ctx context.Context, id string, returnDate time.Time) (*models.Loan, error) {
	const op = "storage.MarkLoanReturned"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE loans
			  SET return_date = $2, status = $3, updated_at = now()
			  WHERE id = $1
			  RETURNING id, user_id, book_id, issue_date, due_date, return_date,
			      status, extensions_count, original_due_date`
	row := s.DB.QueryRowContext(ctx, query, id, returnDate, models.StatusReturned)

	var result models.Loan
	if err := row.Scan(&result.ID, &result.UserID, &result.BookID, &result.IssueDate,
		&result.DueDate, &result.ReturnDate, &result.Status,
		&result.ExtensionsCount, &result.OriginalDueDate); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ExtendLoan сохраняет новую дату возврата, исходную дату (замороженную при
// первом продлении) и счётчик продлений, возвращает обновлённую запись.
func (s *Storage) ExtendLoan(ctx context.Context, id string, dueDate, originalDueDate time.Time, extensionsCount int) (*models.Loan, error) {
	const op = "storage.ExtendLoan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE loans
			  SET due_date = $2, original_due_date = $3, extensions_count = $4, updated_at = now()
			  WHERE id = $1
			  RETURNING id, user_id, book_id, issue_date, due_date, return_date,
			      status, extensions_count, original_due_date`
	row := s.DB.QueryRowContext(ctx, query, id, dueDate, originalDueDate, extensionsCount)

	var result models.Loan
	if err := row.Scan(&result.ID, &result.UserID, &result.BookID, &result.IssueDate,
		&result.DueDate, &result.ReturnDate, &result.Status,
		&result.ExtensionsCount, &result.OriginalDueDate); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListLoansByUser возвращает все выдачи читателя, новые первыми.
func (s *Storage) ListLoansByUser(ctx context.Context, userID string) ([]*models.Loan, error) {
	const op = "storage.ListLoansByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, book_id, issue_date, due_date, return_date,
			      status, extensions_count, original_due_date
			  FROM loans
			  WHERE user_id = $1
			  ORDER BY issue_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Loan
	for rows.Next() {
		var item models.Loan
		if err := rows.Scan(&item.ID, &item.UserID, &item.BookID, &item.IssueDate,
			&item.DueDate, &item.ReturnDate, &item.Status,
			&item.ExtensionsCount, &item.OriginalDueDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListOverdueLoans возвращает активные выдачи, срок возврата которых
// строго раньше переданного момента.
func (s *Storage) ListOverdueLoans(ctx context.Context, now time.Time) ([]*models.Loan, error) {
	const op = "storage.ListOverdueLoans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, book_id, issue_date, due_date, return_date,
			      status, extensions_count, original_due_date
			  FROM loans
			  WHERE status = $1 AND due_date < $2`
	rows, err := s.DB.QueryContext(ctx, query, models.StatusActive, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Loan
	for rows.Next() {
		var item models.Loan
		if err := rows.Scan(&item.ID, &item.UserID, &item.BookID, &item.IssueDate,
			&item.DueDate, &item.ReturnDate, &item.Status,
			&item.ExtensionsCount, &item.OriginalDueDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountOverdueLoans считает активные выдачи, срок которых истёк до
// переданного момента.
func (s *Storage) CountOverdueLoans(ctx context.Context, before time.Time) (int, error) {
	const op = "storage.CountOverdueLoans"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM loans WHERE status = $1 AND due_date < $2`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, models.StatusActive, before).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountLoansIssuedBetween считает выдачи, оформленные в полуинтервале [from, to).
func (s *Storage) CountLoansIssuedBetween(ctx context.Context, from, to time.Time) (int, error) {
	const op = "storage.CountLoansIssuedBetween"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM loans WHERE issue_date >= $1 AND issue_date < $2`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountLoansReturnedBetween считает возвраты, оформленные в полуинтервале [from, to).
func (s *Storage) CountLoansReturnedBetween(ctx context.Context, from, to time.Time) (int, error) {
	const op = "storage.CountLoansReturnedBetween"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM loans WHERE return_date >= $1 AND return_date < $2`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
