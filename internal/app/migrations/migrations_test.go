package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS(t *testing.T) {

	// Act
	names, err := fs.Glob(FS, "*.sql")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, names, "0001_init.up.sql")
	assert.Contains(t, names, "0001_init.down.sql")
	assert.Len(t, names, 2*(len(names)/2), "every up has a down")
}

func TestRun_Validation(t *testing.T) {
	assert.Error(t, Run("", Up))
	assert.ErrorContains(t, Run("postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1", "sideways"), "unknown direction")
}
