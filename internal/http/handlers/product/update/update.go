// Package update реализует полную замену полей товара.
//
// Поля, не переданные клиентом, сбрасываются в нулевые значения, а не сохраняются.
package update

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/glam-app/internal/http/handlers/product"
	"github.com/magabrotheeeer/glam-app/internal/lib/validate"
	"github.com/magabrotheeeer/glam-app/internal/services/catalog"
)

// Service заменяет поля товара.
type Service interface {
	Update(ctx context.Context, id string, f catalog.Fields) error
}

// Handler обрабатывает PUT /api/products/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновление товара
// @Description Полная замена: отсутствующие поля становятся нулевыми.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "ID товара"
// @Param request body product.Request true "Поля товара"
// @Success 200 {object} product.Message
// @Failure 400 {object} response.ErrorResponse "Некорректные поля"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 404 {object} response.ErrorResponse "Товар не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/products/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	req, ok := product.Decode(w, r, h.validate, log)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), id, req.Fields()); err != nil {
		product.FailFromError(w, r, log, err, "product not found")
		return
	}

	log.Info("product updated", slog.String("id", id))
	render.JSON(w, r, product.Message{Message: "product updated"})
}
