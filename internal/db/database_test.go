package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestPing(t *testing.T) {
	saved := DB
	t.Cleanup(func() { DB = saved })

	DB = nil
	assert.Error(t, Ping(context.Background()))

	testDB, err := SetupTestDB()
	require.NoError(t, err)
	DB = testDB
	assert.NoError(t, Ping(context.Background()))

	CleanupTestDB(testDB)
	assert.Error(t, Ping(context.Background()))
}

func TestNewGormLogger(t *testing.T) {
	l := newGormLogger(100 * time.Millisecond)
	require.NotNil(t, l)
	assert.NotNil(t, l.LogMode(logger.Info))
}

func TestSeedTestCatalog(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { CleanupTestDB(testDB) })

	require.NoError(t, SeedTestCatalog(testDB))

	var courses, tags int64
	require.NoError(t, testDB.Table("course").Count(&courses).Error)
	require.NoError(t, testDB.Table("product_tag").Count(&tags).Error)
	assert.Equal(t, int64(10), courses)
	assert.Equal(t, int64(3), tags)

	require.NoError(t, TruncateAllTables(testDB))
	require.NoError(t, testDB.Table("course").Count(&courses).Error)
	assert.Zero(t, courses)
}

func TestCatalogTables(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { CleanupTestDB(testDB) })

	tables, err := CatalogTables(testDB)
	require.NoError(t, err)
	assert.Len(t, tables, len(catalogModels))

	store, ok := tables["share_store"]
	require.True(t, ok)
	assert.Contains(t, store.Columns, "store_id")
	assert.Contains(t, store.Columns, "store_tel")

	join, ok := tables["product_tag"]
	require.True(t, ok)
	assert.Len(t, join.Columns, 2)
}
