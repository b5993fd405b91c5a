// Package me возвращает личность из текущей сессии.
//
// Данные берутся из снимка сессии, хранилище пользователей не читается.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/glam-app/internal/http/middlewarectx"
	"github.com/magabrotheeeer/glam-app/internal/http/response"
)

// Response текущий пользователь.
type Response struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// Handler обрабатывает GET /api/me.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Auth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "Нет сессии"
// @Router /api/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := middlewarectx.SessionFrom(r.Context())
	if !ok {
		response.Fail(w, r, http.StatusUnauthorized, "not authenticated")
		return
	}
	render.JSON(w, r, Response{ID: sess.UserID, Name: sess.UserName, IsAdmin: sess.IsAdmin})
}
