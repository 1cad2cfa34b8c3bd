package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_UpStatusDown(t *testing.T) {
	ctx := context.Background()
	db, err := New(filepath.Join(t.TempDir(), "nested", "marquee.db"))
	require.NoError(t, err)
	defer db.Close()

	applied, err := db.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	again, err := db.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again, "second run has nothing to apply")

	statuses, err := db.MigrationStatus(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, int64(1), statuses[0].Version)
	assert.Equal(t, "00001_bookmarked_movies.sql", statuses[0].Name)
	assert.True(t, statuses[0].Applied)

	var count int
	require.NoError(t, db.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM bookmarked_movies").Scan(&count))
	assert.Equal(t, 0, count)

	require.NoError(t, db.MigrateDown(ctx))
	statuses, err = db.MigrationStatus(ctx)
	require.NoError(t, err)
	assert.False(t, statuses[0].Applied)
}
