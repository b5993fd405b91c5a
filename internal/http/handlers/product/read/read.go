// Package read отдаёт карточку товара.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/glam-app/internal/http/handlers/product"
	"github.com/magabrotheeeer/glam-app/internal/models"
)

// Service читает товар.
type Service interface {
	Get(ctx context.Context, id string) (*models.Product, error)
}

// Handler обрабатывает GET /api/products/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка товара
// @Tags Products
// @Produce json
// @Param id path string true "ID товара"
// @Success 200 {object} models.Product
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/products/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		product.FailFromError(w, r, log, err, "product not found")
		return
	}
	render.JSON(w, r, p)
}
