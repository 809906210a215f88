package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/ikkim/catalog-backend/internal/app/model"
	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func setupProductTest(t *testing.T) (ProductRepository, func()) {
	testDB, composer := setupCatalogTest(t)
	repo, err := NewProductRepository(composer)
	require.NoError(t, err)
	return repo, func() { db.CleanupTestDB(testDB) }
}

func TestProductRepository_FindAll(t *testing.T) {
	repo, cleanup := setupProductTest(t)
	defer cleanup()

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 4)

	first := products[0]
	assert.Equal(t, "Red Rose Bouquet", first["name"])
	assert.Equal(t, query.Record{"id": uint(2), "name": "Roses", "parent_id": &[]uint{1}[0]}, first.Record("category"))
	assert.Equal(t, query.Record{"name": "Red", "code": "#FF0000"}, first.Record("colors"))
	assert.Equal(t, query.Record{"store_id": uint(1), "store_name": "Bloom Studio", "store_info": "Floral workshop"}, first.Record("stores"))
	assert.Equal(t, []interface{}{"gift", "wedding"}, field(first.Records("tags"), "name"))

	images := first.Records("images")
	require.Len(t, images, 2)
	assert.Equal(t, query.Record{"id": uint(1), "url": "p1-thumb.jpg", "is_thumbnail": true}, images[0])

	reviews := first.Records("reviews")
	require.Len(t, reviews, 2)
	assert.Len(t, reviews[0], 8)
	assert.Equal(t, query.Record{"id": uint(5), "name": "five stars", "numbers": 5}, reviews[0].Record("star"))
	assert.Equal(t, query.Record{"id": uint(2), "name": "Bob"}, reviews[1].Record("member"))
}

func TestProductRepository_FindWithFilter(t *testing.T) {
	repo, cleanup := setupProductTest(t)
	defer cleanup()

	parent1, parent4, parent9 := uint(1), uint(4), uint(9)

	tests := []struct {
		name   string
		filter ProductFilter
		want   []interface{}
	}{
		{"no filter", ProductFilter{}, []interface{}{uint(1), uint(2), uint(3), uint(4)}},
		{"parent category", ProductFilter{ParentID: &parent1}, []interface{}{uint(1), uint(2)}},
		{"unknown parent", ProductFilter{ParentID: &parent9}, []interface{}{}},
		{"keyword", ProductFilter{Keyword: "Pot"}, []interface{}{uint(3), uint(4)}},
		{"price ascending", ProductFilter{Sort: ProductSortPriceAsc}, []interface{}{uint(3), uint(2), uint(1), uint(4)}},
		{"price descending", ProductFilter{Sort: ProductSortPriceDesc}, []interface{}{uint(4), uint(1), uint(2), uint(3)}},
		{"newest", ProductFilter{Sort: ProductSortNewest}, []interface{}{uint(4), uint(3), uint(2), uint(1)}},
		{"oldest", ProductFilter{Sort: ProductSortOldest}, []interface{}{uint(1), uint(2), uint(3), uint(4)}},
		{"parent, keyword and sort", ProductFilter{ParentID: &parent4, Keyword: "Pot", Sort: ProductSortPriceDesc}, []interface{}{uint(4), uint(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.FindWithFilter(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, field(products, "id"))
		})
	}

	_, err := repo.FindWithFilter(context.Background(), ProductFilter{Sort: "popular"})
	assert.ErrorIs(t, err, query.ErrQuery)
}

func TestProductRepository_FindByID(t *testing.T) {
	repo, cleanup := setupProductTest(t)
	defer cleanup()

	product, err := repo.FindByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, query.Record{"name": "Roses"}, product.Record("category"))
	assert.NotContains(t, product, "colors")
	assert.Len(t, product.Records("reviews"), 2)

	_, err = repo.FindByID(context.Background(), "77")
	assert.ErrorIs(t, err, query.ErrNotFound)
}

func TestProductSort_Valid(t *testing.T) {
	for _, s := range []ProductSort{ProductSortDefault, ProductSortPriceAsc, ProductSortPriceDesc, ProductSortNewest, ProductSortOldest} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ProductSort("rating").Valid())
}

func TestProductRepository_ListLimit(t *testing.T) {
	testDB, composer := setupCatalogTest(t)
	defer db.CleanupTestDB(testDB)

	bulk := make([]model.Product, 200)
	for i := range bulk {
		bulk[i] = model.Product{
			Name:              fmt.Sprintf("Bulk %d", i),
			Price:             i,
			ShareStoreID:      1,
			ProductCategoryID: 2,
			ShareColorID:      1,
			CreatedAt:         db.SeedBaseTime,
		}
	}
	require.NoError(t, testDB.Omit(clause.Associations).CreateInBatches(&bulk, 100).Error)

	repo, err := NewProductRepository(composer)
	require.NoError(t, err)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, ProductListLimit)

	parent := uint(1)
	filtered, err := repo.FindWithFilter(context.Background(), ProductFilter{ParentID: &parent, Sort: ProductSortPriceDesc})
	require.NoError(t, err)
	assert.Len(t, filtered, ProductListLimit)
	assert.Equal(t, uint(1), filtered[0]["id"])
}
