package me

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/glam-app/internal/http/middlewarectx"
	"github.com/magabrotheeeer/glam-app/internal/session"
)

func TestMeHandler_ServeHTTP(t *testing.T) {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"not authenticated"}`, w.Body.String())
	})

	t.Run("session snapshot", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		r = r.WithContext(middlewarectx.WithSession(r.Context(), &session.Session{UserID: "u1", UserName: "A", IsAdmin: true}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"u1","name":"A","is_admin":true}`, w.Body.String())
	})
}
