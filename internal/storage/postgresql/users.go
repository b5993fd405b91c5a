package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/glam-app/internal/models"
	"github.com/magabrotheeeer/glam-app/internal/storage"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, email, name, passwordHash string) (string, error) {
	const op = "storage.postgresql.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id string
	query := `INSERT INTO users (user_id, email, name, password, is_admin)
			  VALUES ($1, $2, $3, $4, FALSE)
			  RETURNING user_id;`
	if err := s.DB.QueryRowContext(ctx, query, newID(), email, name, passwordHash).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// FindByEmail возвращает пользователя по email.
func (s *Storage) FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error) {
	const op = "storage.postgresql.FindByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, email, name, password, is_admin, created_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	err := s.DB.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !withPassword {
		u.PasswordHash = ""
	}
	return u, nil
}

// ListUsers возвращает всех пользователей, новые первыми.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.postgresql.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT user_id, email, name, is_admin, created_at
		FROM users
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	res := make([]*models.User, 0)
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// UpsertAdmin вставляет администратора или обновляет существующую запись.
func (s *Storage) UpsertAdmin(ctx context.Context, email, name, passwordHash string) (bool, error) {
	const op = "storage.postgresql.UpsertAdmin"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	// xmax = 0 только у строки, вставленной этим запросом.
	query := `INSERT INTO users (user_id, email, name, password, is_admin)
			  VALUES ($1, $2, $3, $4, TRUE)
			  ON CONFLICT (email) DO UPDATE
			  SET name = EXCLUDED.name, password = EXCLUDED.password, is_admin = TRUE
			  RETURNING (xmax = 0);`
	var created bool
	if err := s.DB.QueryRowContext(ctx, query, newID(), email, name, passwordHash).Scan(&created); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}
