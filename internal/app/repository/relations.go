package repository

import (
	"errors"

	"github.com/ikkim/catalog-backend/internal/app/model"
	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/pkg/logger"
	"gorm.io/gorm/schema"
)

// Entity names used in queries and relation declarations.
const (
	EntityCourse             = "Course"
	EntityCourseCategory     = "Course_Category"
	EntityCourseImage        = "Course_Image"
	EntityCourseNews         = "Course_News"
	EntityCourseDatetime     = "Course_Datetime"
	EntityCourseReview       = "Course_Review"
	EntityCourseOrder        = "Course_Order"
	EntityCourseOrderItem    = "Course_Order_Item"
	EntityProduct            = "Product"
	EntityProductImage       = "Product_Image"
	EntityProductCategory    = "Product_Category"
	EntityProductReview      = "Product_Review"
	EntityShareStore         = "Share_Store"
	EntityShareTag           = "Share_Tag"
	EntityShareColor         = "Share_Color"
	EntityShareStar          = "Share_Star"
	EntitySharePayment       = "Share_Payment"
	EntitySharePaymentStatus = "Share_Payment_Status"
	EntityShareOrderStatus   = "Share_Order_Status"
	EntityMember             = "Member"
)

// NewRegistry declares every association of the catalog schema. It is called
// once at startup; the returned registry is shared by all repositories.
func NewRegistry(namer schema.Namer) (*query.Registry, error) {
	b := query.NewBuilder().
		Entity(EntityCourse, &model.Course{}).
		Entity(EntityCourseCategory, &model.CourseCategory{}).
		Entity(EntityCourseImage, &model.CourseImage{}).
		Entity(EntityCourseNews, &model.CourseNews{}).
		Entity(EntityCourseDatetime, &model.CourseDatetime{}).
		Entity(EntityCourseReview, &model.CourseReview{}).
		Entity(EntityCourseOrder, &model.CourseOrder{}).
		Entity(EntityCourseOrderItem, &model.CourseOrderItem{}).
		Entity(EntityProduct, &model.Product{}).
		Entity(EntityProductImage, &model.ProductImage{}).
		Entity(EntityProductCategory, &model.ProductCategory{}).
		Entity(EntityProductReview, &model.ProductReview{}).
		Entity(EntityShareStore, &model.ShareStore{}).
		Entity(EntityShareTag, &model.ShareTag{}).
		Entity(EntityShareColor, &model.ShareColor{}).
		Entity(EntityShareStar, &model.ShareStar{}).
		Entity(EntitySharePayment, &model.SharePayment{}).
		Entity(EntitySharePaymentStatus, &model.SharePaymentStatus{}).
		Entity(EntityShareOrderStatus, &model.ShareOrderStatus{}).
		Entity(EntityMember, &model.Member{})

	// 강좌
	b.Register(
		query.Relation{Source: EntityCourse, Alias: "images", Kind: query.HasMany, Target: EntityCourseImage, Field: "Images", ForeignKey: "course_id"},
		query.Relation{Source: EntityCourse, Alias: "news", Kind: query.HasMany, Target: EntityCourseNews, Field: "News", ForeignKey: "course_id"},
		query.Relation{Source: EntityCourse, Alias: "datetimes", Kind: query.HasMany, Target: EntityCourseDatetime, Field: "Datetimes", ForeignKey: "course_id"},
		query.Relation{Source: EntityCourse, Alias: "reviews", Kind: query.HasMany, Target: EntityCourseReview, Field: "Reviews", ForeignKey: "course_id"},
		query.Relation{Source: EntityCourse, Alias: "orderItems", Kind: query.HasMany, Target: EntityCourseOrderItem, Field: "OrderItems", ForeignKey: "course_id"},
		query.Relation{Source: EntityCourse, Alias: "store", Kind: query.BelongsTo, Target: EntityShareStore, Field: "Store", ForeignKey: "store_id"},
		query.Relation{Source: EntityCourseReview, Alias: "member", Kind: query.BelongsTo, Target: EntityMember, Field: "Member", ForeignKey: "member_id"},
	)

	// 강좌 주문
	b.Register(
		query.Relation{Source: EntityCourseOrder, Alias: "items", Kind: query.HasMany, Target: EntityCourseOrderItem, Field: "Items", ForeignKey: "order_id"},
		query.Relation{Source: EntityCourseOrder, Alias: "payment", Kind: query.BelongsTo, Target: EntitySharePayment, Field: "Payment", ForeignKey: "share_payment_id"},
		query.Relation{Source: EntityCourseOrder, Alias: "payment_status", Kind: query.BelongsTo, Target: EntitySharePaymentStatus, Field: "PaymentStatus", ForeignKey: "share_payment_status_id"},
		query.Relation{Source: EntityCourseOrder, Alias: "order_status", Kind: query.BelongsTo, Target: EntityShareOrderStatus, Field: "OrderStatus", ForeignKey: "share_order_status_id"},
		query.Relation{Source: EntityCourseOrderItem, Alias: "order", Kind: query.BelongsTo, Target: EntityCourseOrder, Field: "Order", ForeignKey: "order_id"},
		query.Relation{Source: EntityCourseOrderItem, Alias: "course", Kind: query.BelongsTo, Target: EntityCourse, Field: "Course", ForeignKey: "course_id"},
	)

	// 상품
	b.Register(
		query.Relation{Source: EntityProduct, Alias: "images", Kind: query.HasMany, Target: EntityProductImage, Field: "Images", ForeignKey: "product_id"},
		query.Relation{Source: EntityProduct, Alias: "tags", Kind: query.ManyToMany, Target: EntityShareTag, Field: "Tags", ForeignKey: "product_id", JoinTable: "product_tag", JoinForeignKey: "share_tag_id"},
		query.Relation{Source: EntityProduct, Alias: "category", Kind: query.BelongsTo, Target: EntityProductCategory, Field: "Category", ForeignKey: "product_category_id"},
		query.Relation{Source: EntityProduct, Alias: "stores", Kind: query.BelongsTo, Target: EntityShareStore, Field: "Store", ForeignKey: "share_store_id"},
		query.Relation{Source: EntityProduct, Alias: "colors", Kind: query.BelongsTo, Target: EntityShareColor, Field: "Color", ForeignKey: "share_color_id"},
		query.Relation{Source: EntityProduct, Alias: "reviews", Kind: query.HasMany, Target: EntityProductReview, Field: "Reviews", ForeignKey: "product_id"},
		query.Relation{Source: EntityProductReview, Alias: "product", Kind: query.BelongsTo, Target: EntityProduct, Field: "Product", ForeignKey: "product_id"},
		query.Relation{Source: EntityProductReview, Alias: "star", Kind: query.BelongsTo, Target: EntityShareStar, Field: "Star", ForeignKey: "share_star_id"},
		query.Relation{Source: EntityProductReview, Alias: "member", Kind: query.BelongsTo, Target: EntityMember, Field: "Member", ForeignKey: "member_id"},
	)

	return b.Build(namer)
}

// validateQueries checks the static include trees of a repository against
// the registry so a bad declaration stops the process at boot.
func validateQueries(reg *query.Registry, queries ...query.Query) error {
	for _, q := range queries {
		if err := reg.Validate(q); err != nil {
			return &query.ConfigurationError{Entity: q.Entity, Reason: err.Error()}
		}
	}
	return nil
}

// logFetchError logs a failed fetch. Misses are expected and only logged at
// debug level.
func logFetchError(msg string, err error, fields map[string]interface{}) {
	if errors.Is(err, query.ErrNotFound) {
		logger.Debug(msg, fields)
		return
	}
	logger.Error(msg, err, fields)
}
