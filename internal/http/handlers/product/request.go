// Package product содержит общие для обработчиков каталога типы и разбор ошибок.
package product

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/glam-app/internal/http/response"
	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
	"github.com/magabrotheeeer/glam-app/internal/services/catalog"
	"github.com/magabrotheeeer/glam-app/internal/storage"
)

// Request поля товара. Отсутствующее поле сохраняется нулевым значением,
// в том числе при обновлении.
type Request struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	VideoID     string  `json:"video_id"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsActive    bool    `json:"is_active"`
}

// Fields переводит запрос в поля сервиса каталога.
func (req Request) Fields() catalog.Fields {
	return catalog.Fields{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		VideoID:     req.VideoID,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	}
}

// Message тело успешного ответа на изменение.
type Message struct {
	Message string `json:"message"`
}

// Decode читает и валидирует Request. Пустое тело равно пустому объекту.
// При ошибке ответ уже записан и возвращается false.
func Decode(w http.ResponseWriter, r *http.Request, v *validator.Validate, log *slog.Logger) (Request, bool) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if err := v.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(verrs))
			return req, false
		}
		response.Fail(w, r, http.StatusBadRequest, "invalid request")
		return req, false
	}
	return req, true
}

// FailFromError пишет ответ для ошибки сервиса каталога.
func FailFromError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.Fail(w, r, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, storage.ErrConflict):
		response.Fail(w, r, http.StatusConflict, "product id already exists")
	case errors.Is(err, catalog.ErrInvalidProduct):
		response.Fail(w, r, http.StatusBadRequest, "price and stock must not be negative")
	default:
		log.Error("catalog operation failed", sl.Err(err))
		response.Fail(w, r, http.StatusInternalServerError, "internal server error")
	}
}
