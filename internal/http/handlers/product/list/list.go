// Package list отдаёт каталог, упорядоченный по названию.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/glam-app/internal/http/response"
	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
	"github.com/magabrotheeeer/glam-app/internal/models"
)

// Service читает каталог.
type Service interface {
	List(ctx context.Context, includeInactive bool) ([]*models.Product, error)
}

// Handler обрабатывает GET /api/products.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список товаров
// @Description По умолчанию только активные товары в наличии. all=1 возвращает весь каталог.
// @Tags Products
// @Produce json
// @Param all query string false "1 чтобы включить неактивные и закончившиеся"
// @Success 200 {array} models.Product
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/products [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	all := r.URL.Query().Get("all") == "1"
	products, err := h.service.List(r.Context(), all)
	if err != nil {
		log.Error("failed to list products", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []*models.Product{}
	}
	render.JSON(w, r, products)
}
