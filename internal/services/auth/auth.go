// Package auth содержит бизнес-логику учётных записей: регистрацию, проверку
// пароля при входе, список пользователей и выдачу прав администратора.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
	"github.com/magabrotheeeer/glam-app/internal/models"
	"github.com/magabrotheeeer/glam-app/internal/storage"
)

// ErrInvalidCredentials одинакова для неизвестного email и неверного пароля.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, email, name, passwordHash string) (string, error)
	FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpsertAdmin(ctx context.Context, email, name, passwordHash string) (bool, error)
}

// Hasher хеширует и проверяет пароли.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// AuthService отвечает за регистрацию и аутентификацию.
type AuthService struct {
	users  UserRepository
	hasher Hasher
	log    *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, hasher Hasher, log *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		log:    log,
	}
}

// Register создаёт обычного пользователя. Занятый email даёт storage.ErrConflict.
// Сессия не выдаётся.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	const op = "services.auth.Register"

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	id, err := s.users.CreateUser(ctx, email, name, hash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.User{ID: id, Email: email, Name: name}, nil
}

// Authenticate проверяет пару email/пароль и возвращает пользователя без хэша.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	const op = "services.auth.Authenticate"

	user, err := s.users.FindByEmail(ctx, email, true)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error("stored password hash is malformed", slog.String("user_id", user.ID), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// ListUsers возвращает пользователей, новые первыми.
func (s *AuthService) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "services.auth.ListUsers"

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// ProvisionAdmin создаёт администратора или повышает существующего пользователя.
// Уже выданные сессии пользователя сохраняют прежний флаг до повторного входа.
func (s *AuthService) ProvisionAdmin(ctx context.Context, email, name, password string) (bool, error) {
	const op = "services.auth.ProvisionAdmin"

	if email == "" || password == "" {
		return false, fmt.Errorf("%s: email and password are required", op)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.users.UpsertAdmin(ctx, email, name, hash)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("admin provisioned", slog.String("email", email), slog.Bool("created", created))
	return created, nil
}
