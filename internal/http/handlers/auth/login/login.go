// Package login реализует HTTP-обработчик входа.
//
// Неизвестный email и неверный пароль дают одинаковый ответ 401.
// При успехе выдаётся новая сессия, предыдущая сессия запроса удаляется.
package login

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
	"github.com/magabrotheeeer/glam-app/internal/services/auth"
	"github.com/magabrotheeeer/glam-app/internal/session"
)

// Request учётные данные.
type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response вошедший пользователь.
type Response struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// Service проверяет учётные данные.
type Service interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// Sessions выдаёт сессию.
type Sessions interface {
	Issue(w http.ResponseWriter, r *http.Request, user *models.User) (*session.Session, error)
}

// Handler обрабатывает POST /api/login.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход
// @Description Проверяет email и пароль, ставит HttpOnly-куку сессии.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Пустые поля"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Info("login rejected")
		response.Fail(w, r, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if _, err := h.sessions.Issue(w, r, user); err != nil {
		log.Error("failed to issue session", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Info("login success", slog.String("user_id", user.ID), slog.Bool("is_admin", user.IsAdmin))
	render.JSON(w, r, Response{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
}
