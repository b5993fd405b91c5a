package list

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/glam-app/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestListHandler_ServeHTTP(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("ListUsers", mock.Anything).Return([]*models.User{
			{ID: "u2", Email: "b@b.com", Name: "B", IsAdmin: true, CreatedAt: created, PasswordHash: "secret"},
		}, nil).Once()

		w := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "secret")

		var got []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "u2", got[0]["user_id"])
		assert.Equal(t, true, got[0]["is_admin"])
		assert.Equal(t, "2024-05-01T10:00:00Z", got[0]["created_at"])
	})

	t.Run("empty list is an array", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("ListUsers", mock.Anything).Return([]*models.User{}, nil).Once()

		w := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("ListUsers", mock.Anything).Return(nil, errors.New("db down")).Once()

		w := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
