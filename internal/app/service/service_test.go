package service

import (
	"testing"

	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/internal/app/repository"
	"github.com/ikkim/catalog-backend/internal/db"
	"github.com/stretchr/testify/require"
)

func setupComposer(t *testing.T) *query.Composer {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	require.NoError(t, db.SeedTestCatalog(testDB))
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	reg, err := repository.NewRegistry(testDB.NamingStrategy)
	require.NoError(t, err)
	return query.NewComposer(testDB, reg, query.Options{})
}
