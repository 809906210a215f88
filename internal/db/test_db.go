package db

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/catalog-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing. Every call
// gets its own database so parallel tests never share rows.
func SetupTestDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get test database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.SetupJoinTable(&model.Product{}, "Tags", &model.ProductTag{}); err != nil {
		return nil, fmt.Errorf("failed to set up product_tag join table: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(catalogModels...); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return db, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}

// TruncateAllTables removes all data from tables
func TruncateAllTables(db *gorm.DB) error {
	stmt := &gorm.Statement{DB: db}
	for i := len(catalogModels) - 1; i >= 0; i-- {
		if err := stmt.Parse(catalogModels[i]); err != nil {
			return err
		}
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", stmt.Schema.Table)).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedBaseTime is the created_at of the first seeded course and product.
// Later rows are one hour apart.
var SeedBaseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// SeedTestCatalog inserts a small, fixed catalog:
//
//   - 10 courses over two stores and two categories. Course 1 has two images
//     (one main), one news entry, datetimes for periods 1 (x2) and 2, and a
//     review by member 1. Course 2 has a main image and one period 1 datetime.
//   - 2 course orders. Order 1 (member 1) books course 1 period 1, course 1
//     period 2 and course 2 period 3, which has no datetimes. Order 2
//     (member 2) books course 2 period 1.
//   - 4 products under a two level category tree: categories 2 and 3 have
//     parent 1, category 5 has parent 4.
func SeedTestCatalog(db *gorm.DB) error {
	parent1, parent4 := uint(1), uint(4)
	at := func(h int) time.Time { return SeedBaseTime.Add(time.Duration(h) * time.Hour) }

	rows := []interface{}{
		&[]model.ShareStore{
			{ID: 1, StoreName: "Bloom Studio", StoreAddress: "1 Garden Rd", StoreTel: "02-1234-5678", StoreInfo: "Floral workshop"},
			{ID: 2, StoreName: "Green Room", StoreAddress: "9 Leaf St", StoreTel: "02-8765-4321", StoreInfo: "Plant shop"},
		},
		&[]model.Member{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}},
		&[]model.SharePayment{{ID: 1, Name: "credit card"}},
		&[]model.SharePaymentStatus{{ID: 1, Name: "paid"}},
		&[]model.ShareOrderStatus{{ID: 1, Name: "completed"}},
		&[]model.CourseCategory{
			{ID: 2, Name: "Gardening", Path: "garden"},
			{ID: 1, Name: "Floristry", Path: "flower"},
		},
	}

	courses := make([]model.Course, 0, 10)
	for i := 1; i <= 10; i++ {
		c := model.Course{
			ID:         uint(i),
			Name:       fmt.Sprintf("Course %d", i),
			Intro:      fmt.Sprintf("Intro %d", i),
			Price:      1000 * i,
			StoreID:    uint(2 - i%2),
			CategoryID: 1,
			CreatedAt:  at(i),
			UpdatedAt:  at(i),
		}
		if i > 5 {
			c.CategoryID = 2
		}
		courses = append(courses, c)
	}
	rows = append(rows,
		&courses,
		&[]model.CourseImage{
			{ID: 1, CourseID: 1, Path: "c1-main.jpg", IsMain: true},
			{ID: 2, CourseID: 1, Path: "c1-side.jpg"},
			{ID: 3, CourseID: 2, Path: "c2-main.jpg", IsMain: true},
		},
		&[]model.CourseNews{{ID: 1, CourseID: 1, Title: "New term", Content: "Spring classes open", CreatedAt: at(0)}},
		&[]model.CourseDatetime{
			{ID: 1, CourseID: 1, Period: 1, Date: at(24), StartTime: "09:00", EndTime: "12:00"},
			{ID: 2, CourseID: 1, Period: 1, Date: at(48), StartTime: "09:00", EndTime: "12:00"},
			{ID: 3, CourseID: 1, Period: 2, Date: at(72), StartTime: "14:00", EndTime: "17:00"},
			{ID: 4, CourseID: 2, Period: 1, Date: at(24), StartTime: "10:00", EndTime: "11:00"},
		},
		&[]model.CourseReview{{ID: 1, CourseID: 1, MemberID: 1, Rating: 5, Comment: "Lovely", CreatedAt: at(30)}},
		&[]model.CourseOrder{
			{ID: 1, MemberID: 1, SharePaymentID: 1, SharePaymentStatusID: 1, ShareOrderStatusID: 1, CreatedAt: at(20)},
			{ID: 2, MemberID: 2, SharePaymentID: 1, SharePaymentStatusID: 1, ShareOrderStatusID: 1, CreatedAt: at(21)},
		},
		&[]model.CourseOrderItem{
			{ID: 1, OrderID: 1, CourseID: 1, Period: 1},
			{ID: 2, OrderID: 1, CourseID: 1, Period: 2},
			{ID: 3, OrderID: 1, CourseID: 2, Period: 3},
			{ID: 4, OrderID: 2, CourseID: 2, Period: 1},
		},
		&[]model.ProductCategory{
			{ID: 1, Name: "Bouquets"},
			{ID: 2, Name: "Roses", ParentID: &parent1},
			{ID: 3, Name: "Tulips", ParentID: &parent1},
			{ID: 4, Name: "Planters"},
			{ID: 5, Name: "Ceramic", ParentID: &parent4},
		},
		&[]model.ShareColor{{ID: 1, Name: "Red", Code: "#FF0000"}, {ID: 2, Name: "White", Code: "#FFFFFF"}},
		&[]model.ShareTag{{ID: 1, Name: "gift"}, {ID: 2, Name: "wedding"}},
		&[]model.ShareStar{{ID: 1, Name: "one star", Numbers: 1}, {ID: 5, Name: "five stars", Numbers: 5}},
		&[]model.Product{
			{ID: 1, Name: "Red Rose Bouquet", Price: 1200, Info: "A dozen roses", ShareStoreID: 1, ProductCategoryID: 2, ShareColorID: 1, CreatedAt: at(1)},
			{ID: 2, Name: "White Tulips", Price: 800, Info: "Ten tulips", ShareStoreID: 2, ProductCategoryID: 3, ShareColorID: 2, CreatedAt: at(2)},
			{ID: 3, Name: "Ceramic Pot", Price: 450, Info: "Glazed pot", ShareStoreID: 1, ProductCategoryID: 5, ShareColorID: 2, CreatedAt: at(3)},
			{ID: 4, Name: "Rose Petal Pot", Price: 1500, Info: "Hand painted", ShareStoreID: 2, ProductCategoryID: 5, ShareColorID: 1, CreatedAt: at(4)},
		},
		&[]model.ProductImage{
			{ID: 1, ProductID: 1, URL: "p1-thumb.jpg", IsThumbnail: true},
			{ID: 2, ProductID: 1, URL: "p1-detail.jpg"},
			{ID: 3, ProductID: 2, URL: "p2-thumb.jpg", IsThumbnail: true},
		},
		&[]model.ProductTag{{ProductID: 1, ShareTagID: 1}, {ProductID: 1, ShareTagID: 2}, {ProductID: 2, ShareTagID: 1}},
		&[]model.ProductReview{
			{ID: 1, ProductID: 1, MemberID: 1, ShareStarID: 5, Comment: "Beautiful", CreatedAt: at(5)},
			{ID: 2, ProductID: 1, MemberID: 2, ShareStarID: 1, Comment: "Wilted fast", CreatedAt: at(6)},
		},
	)

	for _, r := range rows {
		if err := db.Omit(clause.Associations).Create(r).Error; err != nil {
			return fmt.Errorf("failed to seed %T: %w", r, err)
		}
	}
	return nil
}
