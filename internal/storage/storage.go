// Package storage описывает контракт хранилища учётных записей и каталога.
//
// Реализации находятся в подпакетах postgresql, mongodb и memory,
// выбор между ними делает пакет driver по конфигурации.
package storage

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/glam-app/internal/models"
)

var (
	// ErrConflict возвращается при нарушении уникальности (email, id товара).
	ErrConflict = errors.New("conflict")
	// ErrNotFound возвращается, когда запись отсутствует.
	ErrNotFound = errors.New("not found")
)

// UserRepository хранит учётные записи.
type UserRepository interface {
	// CreateUser создаёт обычного пользователя и возвращает его ID.
	// Если email уже занят, возвращает ErrConflict.
	CreateUser(ctx context.Context, email, name, passwordHash string) (string, error)
	// FindByEmail возвращает пользователя или ErrNotFound.
	// Хэш пароля заполняется только при withPassword.
	FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error)
	// ListUsers возвращает пользователей без хэшей, новые первыми.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// UpsertAdmin создаёт администратора или выдаёт права существующему пользователю,
	// заменяя имя и хэш. created сообщает, была ли запись вставлена.
	UpsertAdmin(ctx context.Context, email, name, passwordHash string) (created bool, err error)
}

// ProductRepository хранит каталог.
type ProductRepository interface {
	// ListProducts возвращает товары по возрастанию названия.
	// Без includeInactive отдаются только активные товары с ненулевым остатком.
	ListProducts(ctx context.Context, includeInactive bool) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) error
	// UpdateProduct заменяет все поля товара. ErrNotFound, если товара нет.
	UpdateProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// Repository объединяет оба хранилища одного бэкенда.
type Repository interface {
	UserRepository
	ProductRepository
	Close(ctx context.Context) error
}
