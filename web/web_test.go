package web

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsAuthHelper(t *testing.T) {
	data, err := fs.ReadFile(FS, "auth.js")
	require.NoError(t, err)
	assert.Contains(t, string(data), "/api/me")
	assert.Contains(t, string(data), "credentials = 'include'")
}

func TestFS_AuthHelperAlertsAPIErrors(t *testing.T) {
	data, err := fs.ReadFile(FS, "auth.js")
	require.NoError(t, err)
	src := string(data)

	assert.Contains(t, src, "alert(err.message")
	for _, call := range []string{"'/api/login'", "'/api/register'", "'/api/logout'"} {
		assert.Contains(t, src, call)
	}
	assert.Equal(t, 3, strings.Count(src, ".catch(alertError)"))
}
