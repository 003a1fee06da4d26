package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/library-management/internal/models"
)

// CreateBook вставляет новую книгу и возвращает её данные.
func (s *Storage) CreateBook(ctx context.Context, book models.Book) (*models.Book, error) {
	const op = "storage.CreateBook"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO books (id, title, author, isbn, copies, available_copies)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, title, author, isbn, copies, available_copies, created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query,
		book.ID, book.Title, book.Author, book.ISBN, book.Copies, book.AvailableCopies)

	var result models.Book
	if err := row.Scan(&result.ID, &result.Title, &result.Author, &result.ISBN,
		&result.Copies, &result.AvailableCopies, &result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetBookByID возвращает книгу по ID. Если книги нет, возвращает nil без ошибки.
func (s *Storage) GetBookByID(ctx context.Context, id string) (*models.Book, error) {
	const op = "storage.GetBookByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, author, isbn, copies, available_copies, created_at, updated_at
			  FROM books WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Book
	err := row.Scan(&result.ID, &result.Title, &result.Author, &result.ISBN,
		&result.Copies, &result.AvailableCopies, &result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetBookByISBN возвращает книгу по ISBN. Если книги нет, возвращает nil без ошибки.
func (s *Storage) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	const op = "storage.GetBookByISBN"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, author, isbn, copies, available_copies, created_at, updated_at
			  FROM books WHERE isbn = $1`
	row := s.DB.QueryRowContext(ctx, query, isbn)

	var result models.Book
	err := row.Scan(&result.ID, &result.Title, &result.Author, &result.ISBN,
		&result.Copies, &result.AvailableCopies, &result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// SearchBooks возвращает книги, у которых название, автор или ISBN содержат
// искомую подстроку без учёта регистра, в алфавитном порядке названий.
// Пустая строка поиска возвращает весь фонд.
func (s *Storage) SearchBooks(ctx context.Context, term string) ([]*models.Book, error) {
	const op = "storage.SearchBooks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, author, isbn, copies, available_copies, created_at, updated_at
			  FROM books
			  WHERE $1 = ''
			     OR title ILIKE '%' || $1 || '%'
			     OR author ILIKE '%' || $1 || '%'
			     OR isbn ILIKE '%' || $1 || '%'
			  ORDER BY title`
	rows, err := s.DB.QueryContext(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Book
	for rows.Next() {
		var item models.Book
		if err := rows.Scan(&item.ID, &item.Title, &item.Author, &item.ISBN,
			&item.Copies, &item.AvailableCopies, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateBook обновляет только переданные поля книги и возвращает обновлённые
// данные. Если книги нет, возвращает nil без ошибки.
func (s *Storage) UpdateBook(ctx context.Context, id string, upd models.DummyBookUpdate) (*models.Book, error) {
	const op = "storage.UpdateBook"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE books
			  SET title = COALESCE($2, title),
			      author = COALESCE($3, author),
			      isbn = COALESCE($4, isbn),
			      copies = COALESCE($5, copies),
			      available_copies = COALESCE($6, available_copies),
			      updated_at = now()
			  WHERE id = $1
			  RETURNING id, title, author, isbn, copies, available_copies, created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query,
		id, upd.Title, upd.Author, upd.ISBN, upd.Copies, upd.AvailableCopies)

	var result models.Book
	err := row.Scan(&result.ID, &result.Title, &result.Author, &result.ISBN,
		&result.Copies, &result.AvailableCopies, &result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// DeleteBook удаляет книгу по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteBook(ctx context.Context, id string) (int, error) {
	const op = "storage.DeleteBook"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// AdjustCopies прибавляет delta к количеству доступных экземпляров книги и
// возвращает обновлённые данные. Верхняя граница против общего количества
// экземпляров не проверяется; нижнюю держит только ограничение схемы.
// Если книги нет, возвращает nil без ошибки.
func (s *Storage) AdjustCopies(ctx context.Context, id string, delta int) (*models.Book, error) {
	const op = "storage.AdjustCopies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE books
			  SET available_copies = available_copies + $2,
			      updated_at = now()
			  WHERE id = $1
			  RETURNING id, title, author, isbn, copies, available_copies, created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query, id, delta)

	var result models.Book
	err := row.Scan(&result.ID, &result.Title, &result.Author, &result.ISBN,
		&result.Copies, &result.AvailableCopies, &result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetInventoryStats возвращает суммарные количества экземпляров по фонду.
func (s *Storage) GetInventoryStats(ctx context.Context) (*models.InventoryStats, error) {
	const op = "storage.GetInventoryStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(copies), 0), COALESCE(SUM(available_copies), 0) FROM books`
	var result models.InventoryStats
	if err := s.DB.QueryRowContext(ctx, query).Scan(&result.TotalBooks, &result.BooksAvailable); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
