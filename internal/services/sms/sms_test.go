package sms

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type SenderMock struct {
	mock.Mock
}

func (m *SenderMock) Send(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Send(t *testing.T) {
	tests := []struct {
		name     string
		testMode bool
		setup    func(m *SenderMock)
		want     Result
		wantErr  bool
	}{
		{
			name:     "test mode short-circuits",
			testMode: true,
			setup:    func(_ *SenderMock) {},
			want:     Result{Simulated: true},
		},
		{
			name: "provider success",
			setup: func(m *SenderMock) {
				m.On("Send", mock.Anything, "+100", "hi").Return("SM1", nil).Once()
			},
			want: Result{SID: "SM1"},
		},
		{
			name: "provider failure",
			setup: func(m *SenderMock) {
				m.On("Send", mock.Anything, "+100", "hi").Return("", errors.New("twilio down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := new(SenderMock)
			tt.setup(sender)

			svc := NewService(sender, tt.testMode, newNoopLogger())
			got, err := svc.Send(context.Background(), "+100", "hi")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "services.sms.Send")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			sender.AssertExpectations(t)
		})
	}
}

func TestService_NilSender(t *testing.T) {
	t.Run("test mode is simulated", func(t *testing.T) {
		svc := NewService(nil, true, newNoopLogger())
		got, err := svc.Send(context.Background(), "+1", "x")
		require.NoError(t, err)
		assert.True(t, got.Simulated)
	})

	t.Run("outside test mode fails", func(t *testing.T) {
		svc := NewService(nil, false, newNoopLogger())
		got, err := svc.Send(context.Background(), "+1", "x")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.False(t, got.Simulated)
	})
}
