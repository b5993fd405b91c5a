// Package catalog содержит бизнес-логику каталога товаров.
//
// Карточки читаются через кэш (cache-aside), изменения сбрасывают кэш.
// Когда остаток после создания или изменения опускается до порога,
// в брокер уходит StockAlert.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
	"github.com/magabrotheeeer/glam-app/internal/lib/slug"
	"github.com/magabrotheeeer/glam-app/internal/models"
)

// ErrInvalidProduct отрицательная цена или остаток.
var ErrInvalidProduct = errors.New("invalid product")

// ProductRepository описывает хранилище товаров.
type ProductRepository interface {
	ListProducts(ctx context.Context, includeInactive bool) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) error
	UpdateProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// Cache кэш карточек товаров.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// AlertPublisher отправляет уведомления о заканчивающемся товаре.
type AlertPublisher interface {
	PublishStockAlert(ctx context.Context, alert models.StockAlert) error
}

// Fields поля товара, которые присылает клиент.
// Отсутствующие поля приходят нулевыми значениями и так и сохраняются.
type Fields struct {
	Name        string
	Price       float64
	Description string
	ImageURL    string
	VideoID     string
	Stock       int
	IsActive    bool
}

func (f Fields) validate() error {
	if f.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if f.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	return nil
}

func (f Fields) product(id string) models.Product {
	return models.Product{
		ID:          id,
		Name:        f.Name,
		Price:       f.Price,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		VideoID:     f.VideoID,
		Stock:       f.Stock,
		IsActive:    f.IsActive,
	}
}

// Options настройки сервиса.
type Options struct {
	CacheTTL          time.Duration
	LowStockThreshold int
}

// CatalogService управляет каталогом.
type CatalogService struct {
	repo   ProductRepository
	cache  Cache
	alerts AlertPublisher
	opts   Options
	log    *slog.Logger
	now    func() time.Time
}

// NewCatalogService создаёт сервис. alerts может быть nil, тогда уведомления не отправляются.
func NewCatalogService(repo ProductRepository, cache Cache, alerts AlertPublisher, opts Options, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:   repo,
		cache:  cache,
		alerts: alerts,
		opts:   opts,
		log:    log,
		now:    time.Now,
	}
}

func cacheKey(id string) string {
	return "product:" + id
}

// List возвращает витрину или, при includeInactive, весь каталог.
func (s *CatalogService) List(ctx context.Context, includeInactive bool) ([]*models.Product, error) {
	const op = "services.catalog.List"

	products, err := s.repo.ListProducts(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

// Get возвращает товар по ID. Ошибки кэша не мешают чтению из хранилища.
func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	const op = "services.catalog.Get"

	var cached models.Product
	found, err := s.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("product cache read failed", slog.String("id", id), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, cacheKey(id), p, s.opts.CacheTTL); err != nil {
		s.log.Warn("product cache write failed", slog.String("id", id), sl.Err(err))
	}
	return p, nil
}

// Create сохраняет новый товар и возвращает сгенерированный ID.
func (s *CatalogService) Create(ctx context.Context, f Fields) (string, error) {
	const op = "services.catalog.Create"

	if err := f.validate(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	p := f.product(slug.Generate(f.Name, s.now()))
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.checkStock(ctx, p)
	return p.ID, nil
}

// Update заменяет все поля товара id значениями из f.
func (s *CatalogService) Update(ctx context.Context, id string, f Fields) error {
	const op = "services.catalog.Update"

	if err := f.validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	p := f.product(id)
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	s.checkStock(ctx, p)
	return nil
}

// Delete удаляет товар.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	const op = "services.catalog.Delete"

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Warn("product cache invalidation failed", slog.String("id", id), sl.Err(err))
	}
}

// checkStock публикует StockAlert. Ошибка брокера только логируется.
func (s *CatalogService) checkStock(ctx context.Context, p models.Product) {
	if s.alerts == nil || p.Stock > s.opts.LowStockThreshold {
		return
	}
	alert := models.StockAlert{ProductID: p.ID, Name: p.Name, Stock: p.Stock}
	if err := s.alerts.PublishStockAlert(ctx, alert); err != nil {
		s.log.Error("failed to publish stock alert", slog.String("id", p.ID), sl.Err(err))
		return
	}
	s.log.Info("stock alert published", slog.String("id", p.ID), slog.Int("stock", p.Stock))
}
