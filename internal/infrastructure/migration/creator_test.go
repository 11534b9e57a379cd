package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_orders_table", sanitizeName("Add Orders Table"))
	assert.Equal(t, "drop_index", sanitizeName("  drop--index!!  "))
	assert.Equal(t, "", sanitizeName("???"))
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	up, down, err := CreateMigration(dir, "add customers table")
	require.NoError(t, err)

	assert.FileExists(t, up)
	assert.FileExists(t, down)
	assert.Contains(t, filepath.Base(up), "add_customers_table.up.sql")
	assert.Contains(t, filepath.Base(down), "add_customers_table.down.sql")
}

func TestCreateMigrationInvalidName(t *testing.T) {
	_, _, err := CreateMigration(t.TempDir(), "!!!")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_b.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_a.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	files, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.up.sql", "002_b.up.sql"}, files)
}
