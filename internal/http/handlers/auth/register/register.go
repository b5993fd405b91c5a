// Package register реализует HTTP-обработчик регистрации покупателя.
//
// Регистрация всегда создаёт обычного пользователя и не открывает сессию,
// после неё клиент должен выполнить вход.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/glam-app/internal/http/response"
	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
	"github.com/magabrotheeeer/glam-app/internal/lib/validate"
	"github.com/magabrotheeeer/glam-app/internal/models"
	"github.com/magabrotheeeer/glam-app/internal/storage"
)

// Request входные данные регистрации.
type Request struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response созданный пользователь.
type Response struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Service бизнес-логика регистрации.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
}

// Handler обрабатывает POST /api/register.
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
// @Summary Регистрация пользователя
// @Description Создаёт обычного пользователя. Сессия не выдаётся.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Имя, email и пароль"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Пустые поля"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		response.Fail(w, r, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, storage.ErrConflict) {
		log.Info("email already registered")
		response.Fail(w, r, http.StatusConflict, "user already exists")
		return
	}
	if err != nil {
		log.Error("failed to register user", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	render.JSON(w, r, Response{ID: user.ID, Name: user.Name, Email: user.Email})
}
