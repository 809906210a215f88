package db

import (
	"fmt"

	"github.com/ikkim/catalog-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// catalogModels lists every table of the catalog schema in dependency order.
var catalogModels = []interface{}{
	&model.ShareStore{},
	&model.ShareTag{},
	&model.ShareColor{},
	&model.ShareStar{},
	&model.SharePayment{},
	&model.SharePaymentStatus{},
	&model.ShareOrderStatus{},
	&model.Member{},
	&model.CourseCategory{},
	&model.Course{},
	&model.CourseImage{},
	&model.CourseNews{},
	&model.CourseDatetime{},
	&model.CourseReview{},
	&model.CourseOrder{},
	&model.CourseOrderItem{},
	&model.ProductCategory{},
	&model.Product{},
	&model.ProductImage{},
	&model.ProductTag{},
	&model.ProductReview{},
}

// Table describes one catalog table by its database column names.
type Table struct {
	Name    string
	Columns map[string]*schema.Field
}

// CatalogTables parses every catalog model with the naming strategy of gdb
// and returns the tables keyed by name.
func CatalogTables(gdb *gorm.DB) (map[string]Table, error) {
	tables := make(map[string]Table, len(catalogModels))
	for _, m := range catalogModels {
		stmt := &gorm.Statement{DB: gdb}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("failed to parse %T: %w", m, err)
		}
		columns := make(map[string]*schema.Field, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			columns[name] = stmt.Schema.FieldsByDBName[name]
		}
		tables[stmt.Schema.Table] = Table{Name: stmt.Schema.Table, Columns: columns}
	}
	return tables, nil
}
