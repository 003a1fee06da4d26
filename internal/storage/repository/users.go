package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/library-management/internal/models"
)

// CreateUser вставляет нового читателя и возвращает его данные.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, name, email, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, name, email, role, created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query, user.ID, user.Name, user.Email, user.Role)

	var result models.User
	if err := row.Scan(&result.ID, &result.Name, &result.Email, &result.Role,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetUserByID возвращает читателя по ID. Если читателя нет, возвращает nil без ошибки.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, role, created_at, updated_at
			  FROM users WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.User
	err := row.Scan(&result.ID, &result.Name, &result.Email, &result.Role,
		&result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetUserByEmail возвращает читателя по email. Если читателя нет, возвращает nil без ошибки.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, role, created_at, updated_at
			  FROM users WHERE email = $1`
	row := s.DB.QueryRowContext(ctx, query, email)

	var result models.User
	err := row.Scan(&result.ID, &result.Name, &result.Email, &result.Role,
		&result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateUser обновляет только переданные поля профиля и возвращает
// обновлённые данные читателя. Если читателя нет, возвращает nil без ошибки.
func (s *Storage) UpdateUser(ctx context.Context, id string, upd models.DummyUserUpdate) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = COALESCE($2, name),
			      email = COALESCE($3, email),
			      role = COALESCE($4, role),
			      updated_at = now()
			  WHERE id = $1
			  RETURNING id, name, email, role, created_at, updated_at`
	row := s.DB.QueryRowContext(ctx, query, id, upd.Name, upd.Email, upd.Role)

	var result models.User
	err := row.Scan(&result.ID, &result.Name, &result.Email, &result.Role,
		&result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListUsersByIDs возвращает читателей по набору идентификаторов.
func (s *Storage) ListUsersByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	const op = "storage.ListUsersByIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, email, role, created_at, updated_at
			  FROM users WHERE id = ANY($1::uuid[])`
	rows, err := s.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.User
	for rows.Next() {
		var item models.User
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Role,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountUsers возвращает общее количество читателей.
func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	const op = "storage.CountUsers"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
