package repository

import (
	"testing"

	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*gorm.DB, *query.Composer) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	require.NoError(t, db.SeedTestCatalog(testDB))

	reg, err := NewRegistry(testDB.NamingStrategy)
	require.NoError(t, err)

	return testDB, query.NewComposer(testDB, reg, query.Options{})
}

func field(records []query.Record, key string) []interface{} {
	out := make([]interface{}, 0, len(records))
	for _, r := range records {
		out = append(out, r[key])
	}
	return out
}
