package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ProvisionerMock struct {
	mock.Mock
}

func (m *ProvisionerMock) ProvisionAdmin(ctx context.Context, email, name, password string) (bool, error) {
	args := m.Called(ctx, email, name, password)
	return args.Bool(0), args.Error(1)
}

func TestRunCreateAdmin(t *testing.T) {
	tests := []struct {
		name    string
		created bool
		err     error
		wantOut string
	}{
		{name: "created", created: true, wantOut: "admin root@glam.com created\n"},
		{name: "promoted", created: false, wantOut: "user root@glam.com updated and promoted to admin\n"},
		{name: "failure", err: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := new(ProvisionerMock)
			p.On("ProvisionAdmin", mock.Anything, "root@glam.com", "ADMIN", "s3cret").Return(tt.created, tt.err).Once()

			var out bytes.Buffer
			err := runCreateAdmin(context.Background(), &out, p, "root@glam.com", "ADMIN", "s3cret")
			if tt.err != nil {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out.String())
		})
	}
}

func TestCreateAdminCmd_MemoryStore(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "testdata-missing.env")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	var out bytes.Buffer
	root := rootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"create-admin", "--email", "root@glam.com"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "admin root@glam.com created")
}

func TestCreateAdminCmd_RequiresEmail(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")

	root := rootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"create-admin"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--email and --password are required")
}

func TestMigrateCmd_RequiresDSN(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "testdata-missing.env")
	t.Setenv("POSTGRES_DSN", "")

	root := rootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"migrate"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_DSN is not set")
}
