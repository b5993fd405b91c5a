package read

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/glam-app/internal/models"
	"github.com/magabrotheeeer/glam-app/internal/storage"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Get(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestReadHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		product  *models.Product
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "found",
			product:  &models.Product{ID: "antifaz-1", Name: "Antifaz", Price: 10, Stock: 2, IsActive: true},
			wantCode: http.StatusOK,
			wantBody: `{"id":"antifaz-1","name":"Antifaz","price":10,"description":"","image_url":"","video_id":"","stock":2,"is_active":true}`,
		},
		{
			name:     "not found",
			err:      fmt.Errorf("x: %w", storage.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"message":"product not found"}`,
		},
		{
			name:     "store failure",
			err:      errors.New("db down"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Get", mock.Anything, "antifaz-1").Return(tt.product, tt.err).Once()

			router := chi.NewRouter()
			router.Method(http.MethodGet, "/api/products/{id}", New(newNoopLogger(), svc))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/antifaz-1", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
