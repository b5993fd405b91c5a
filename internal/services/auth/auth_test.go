package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/glam-app/internal/lib/password"
	"github.com/magabrotheeeer/glam-app/internal/models"
	"github.com/magabrotheeeer/glam-app/internal/services/auth"
	"github.com/magabrotheeeer/glam-app/internal/storage"
	"github.com/magabrotheeeer/glam-app/internal/storage/memory"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, email, name, passwordHash string) (string, error) {
	args := m.Called(ctx, email, name, passwordHash)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string, withPassword bool) (*models.User, error) {
	args := m.Called(ctx, email, withPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepoMock) UpsertAdmin(ctx context.Context, email, name, passwordHash string) (bool, error) {
	args := m.Called(ctx, email, name, passwordHash)
	return args.Bool(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewAuthService(memory.New(), password.New(4), newNoopLogger())

	u, err := svc.Register(ctx, "A", "a@a.com", "abcd")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "A", u.Name)
	assert.Equal(t, "a@a.com", u.Email)
	assert.False(t, u.IsAdmin)

	_, err = svc.Register(ctx, "A", "a@a.com", "abcd")
	require.ErrorIs(t, err, storage.ErrConflict)
}

func TestAuthService_RegisterStoresHash(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("CreateUser", mock.Anything, "a@a.com", "A", mock.MatchedBy(func(h string) bool {
		return h != "abcd" && len(h) == 60
	})).Return("id-1", nil).Once()

	svc := auth.NewAuthService(repo, password.New(4), newNoopLogger())
	u, err := svc.Register(context.Background(), "A", "a@a.com", "abcd")
	require.NoError(t, err)
	assert.Equal(t, "id-1", u.ID)
	repo.AssertExpectations(t)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := auth.NewAuthService(store, password.New(4), newNoopLogger())

	_, err := svc.Register(ctx, "A", "a@a.com", "abcd")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "a@a.com", password: "abcd"},
		{name: "wrong password", email: "a@a.com", password: "nope", wantErr: auth.ErrInvalidCredentials},
		{name: "unknown email", email: "x@a.com", password: "abcd", wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "A", u.Name)
			assert.Empty(t, u.PasswordHash)
		})
	}
}

func TestAuthService_AuthenticateErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *UserRepoMock)
	}{
		{
			name: "store failure",
			setup: func(r *UserRepoMock) {
				r.On("FindByEmail", mock.Anything, "a@a.com", true).Return(nil, errors.New("db down")).Once()
			},
		},
		{
			name: "malformed hash",
			setup: func(r *UserRepoMock) {
				r.On("FindByEmail", mock.Anything, "a@a.com", true).
					Return(&models.User{ID: "1", PasswordHash: "garbage"}, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setup(repo)

			svc := auth.NewAuthService(repo, password.New(4), newNoopLogger())
			_, err := svc.Authenticate(context.Background(), "a@a.com", "abcd")
			require.Error(t, err)
			assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ProvisionAdmin(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := auth.NewAuthService(store, password.New(4), newNoopLogger())

	created, err := svc.ProvisionAdmin(ctx, "admin@admin.com", "ADMIN", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	u, err := svc.Authenticate(ctx, "admin@admin.com", "admin123")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	created, err = svc.ProvisionAdmin(ctx, "admin@admin.com", "Boss", "newpass")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.Authenticate(ctx, "admin@admin.com", "admin123")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.ProvisionAdmin(ctx, "", "x", "y")
	require.Error(t, err)
}

func TestAuthService_ListUsers(t *testing.T) {
	repo := new(UserRepoMock)
	users := []*models.User{{ID: "2"}, {ID: "1"}}
	repo.On("ListUsers", mock.Anything).Return(users, nil).Once()

	svc := auth.NewAuthService(repo, password.New(4), newNoopLogger())
	got, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, users, got)

	repo.On("ListUsers", mock.Anything).Return(nil, errors.New("db down")).Once()
	_, err = svc.ListUsers(context.Background())
	require.Error(t, err)
}
