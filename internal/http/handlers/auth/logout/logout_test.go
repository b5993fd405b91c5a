package logout

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type SessionsMock struct {
	mock.Mock
}

func (m *SessionsMock) Destroy(w http.ResponseWriter, r *http.Request) error {
	args := m.Called(w, r)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLogoutHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "success", wantCode: http.StatusOK, wantBody: `{"ok":true}`},
		{name: "store failure", err: errors.New("closed"), wantCode: http.StatusInternalServerError, wantBody: `{"message":"failed to log out"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := new(SessionsMock)
			sm.On("Destroy", mock.Anything, mock.Anything).Return(tt.err).Once()

			w := httptest.NewRecorder()
			New(newNoopLogger(), sm).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			sm.AssertExpectations(t)
		})
	}
}
