// Package send реализует POST /enviar-sms.
//
// В тестовом режиме провайдер не вызывается, ответ помечается simulated.
package send

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
	"github.com/magabrotheeeer/glam-app/internal/services/sms"
)

// Request номер получателя и текст.
type Request struct {
	To   string `json:"to" validate:"required"`
	Body string `json:"body" validate:"required"`
}

// Response результат отправки.
type Response struct {
	Success   bool   `json:"success"`
	Simulated bool   `json:"simulated,omitempty"`
	SID       string `json:"sid,omitempty"`
}

// Service отправляет SMS.
type Service interface {
	Send(ctx context.Context, to, body string) (sms.Result, error)
}

// Handler обрабатывает POST /enviar-sms.
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
// @Summary Отправка SMS
// @Tags SMS
// @Accept json
// @Produce json
// @Param request body Request true "Получатель и текст"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Нет номера или текста"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Ошибка провайдера"
// @Router /enviar-sms [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sms.send"

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
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		response.Fail(w, r, http.StatusBadRequest, "invalid request")
		return
	}

	res, err := h.service.Send(r.Context(), req.To, req.Body)
	if err != nil {
		log.Error("failed to send sms", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "failed to send sms")
		return
	}

	render.JSON(w, r, Response{Success: true, Simulated: res.Simulated, SID: res.SID})
}
