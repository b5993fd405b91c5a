// Package create реализует создание товара.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/glam-app/internal/http/handlers/product"
	"github.com/magabrotheeeer/glam-app/internal/lib/validate"
	"github.com/magabrotheeeer/glam-app/internal/services/catalog"
)

// Response ID созданного товара.
type Response struct {
	ID string `json:"id"`
}

// Service создаёт товар.
type Service interface {
	Create(ctx context.Context, f catalog.Fields) (string, error)
}

// Handler обрабатывает POST /api/products.
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
// @Summary Создание товара
// @Description ID строится из названия и времени создания.
// @Tags Products
// @Accept json
// @Produce json
// @Param request body product.Request true "Поля товара"
// @Success 201 {object} Response
// @Failure 400 {object} response.ErrorResponse "Некорректные поля"
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Failure 409 {object} response.ErrorResponse "ID уже существует"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/products [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.product.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req, ok := product.Decode(w, r, h.validate, log)
	if !ok {
		return
	}

	id, err := h.service.Create(r.Context(), req.Fields())
	if err != nil {
		product.FailFromError(w, r, log, err, "product not found")
		return
	}

	log.Info("product created", slog.String("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{ID: id})
}
