// Package memory реализует storage.Repository в памяти процесса.
//
// Используется локально и в тестах, данные теряются при перезапуске.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/glam-app/internal/models"
	"github.com/magabrotheeeer/glam-app/internal/storage"
)

// Storage хранит пользователей и товары в map под одним RWMutex.
type Storage struct {
	mu       sync.RWMutex
	users    map[string]*models.User // по email
	products map[string]*models.Product
	now      func() time.Time
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		users:    make(map[string]*models.User),
		products: make(map[string]*models.Product),
		now:      time.Now,
	}
}

func (s *Storage) CreateUser(ctx context.Context, email, name, passwordHash string) (string, error) {
	const op = "storage.memory.CreateUser"
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return "", fmt.Errorf("%s: %w", op, storage.ErrConflict)
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}
	s.users[email] = u
	return u.ID, nil
}

func (s *Storage) FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error) {
	const op = "storage.memory.FindByEmail"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	cp := *u
	if !withPassword {
		cp.PasswordHash = ""
	}
	return &cp, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.memory.ListUsers"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	res := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		cp.PasswordHash = ""
		res = append(res, &cp)
	}
	s.mu.RUnlock()

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID < res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (s *Storage) UpsertAdmin(ctx context.Context, email, name, passwordHash string) (bool, error) {
	const op = "storage.memory.UpsertAdmin"
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[email]; ok {
		u.Name = name
		u.PasswordHash = passwordHash
		u.IsAdmin = true
		return false, nil
	}
	s.users[email] = &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		IsAdmin:      true,
		CreatedAt:    s.now().UTC(),
	}
	return true, nil
}

func (s *Storage) ListProducts(ctx context.Context, includeInactive bool) ([]*models.Product, error) {
	const op = "storage.memory.ListProducts"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	res := make([]*models.Product, 0, len(s.products))
	for _, p := range s.products {
		if !includeInactive && !p.Visible() {
			continue
		}
		cp := *p
		res = append(res, &cp)
	}
	s.mu.RUnlock()

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Name == res[j].Name {
			return res[i].ID < res[j].ID
		}
		return res[i].Name < res[j].Name
	})
	return res, nil
}

func (s *Storage) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	const op = "storage.memory.GetProduct"
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (s *Storage) CreateProduct(ctx context.Context, p models.Product) error {
	const op = "storage.memory.CreateProduct"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrConflict)
	}
	s.products[p.ID] = &p
	return nil
}

func (s *Storage) UpdateProduct(ctx context.Context, p models.Product) error {
	const op = "storage.memory.UpdateProduct"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	s.products[p.ID] = &p
	return nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id string) error {
	const op = "storage.memory.DeleteProduct"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	delete(s.products, id)
	return nil
}

// Close ничего не освобождает.
func (s *Storage) Close(context.Context) error {
	return nil
}

var _ storage.Repository = (*Storage)(nil)
