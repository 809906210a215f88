package model

import (
	"time"
)

type Product struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Price             int       `gorm:"not null;default:0" json:"price"`
	Info              string    `gorm:"type:text" json:"info"`
	ShareStoreID      uint      `gorm:"index" json:"share_store_id"`
	ProductCategoryID uint      `gorm:"index" json:"product_category_id"`
	ShareColorID      uint      `gorm:"index" json:"share_color_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationships
	Images   []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Tags     []ShareTag       `gorm:"many2many:product_tag;joinForeignKey:ProductID;joinReferences:ShareTagID" json:"tags,omitempty"`
	Category *ProductCategory `gorm:"foreignKey:ProductCategoryID" json:"category,omitempty"`
	Store    *ShareStore      `gorm:"foreignKey:ShareStoreID" json:"stores,omitempty"`
	Color    *ShareColor      `gorm:"foreignKey:ShareColorID" json:"colors,omitempty"`
	Reviews  []ProductReview  `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
}

func (Product) TableName() string {
	return "product"
}

type ProductImage struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	ProductID   uint   `gorm:"not null;index" json:"product_id"`
	URL         string `gorm:"not null" json:"url"`
	IsThumbnail bool   `gorm:"default:false" json:"is_thumbnail"`
}

func (ProductImage) TableName() string {
	return "product_image"
}

type ProductCategory struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	ParentID *uint  `gorm:"index" json:"parent_id"`
}

func (ProductCategory) TableName() string {
	return "product_category"
}

// ProductTag is the product/share_tag join table. It carries no payload.
type ProductTag struct {
	ProductID  uint `gorm:"primaryKey" json:"product_id"`
	ShareTagID uint `gorm:"primaryKey" json:"share_tag_id"`
}

func (ProductTag) TableName() string {
	return "product_tag"
}

type ProductReview struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ProductID   uint      `gorm:"not null;index" json:"product_id"`
	MemberID    uint      `gorm:"not null;index" json:"member_id"`
	ShareStarID uint      `gorm:"index" json:"share_star_id"`
	Comment     string    `gorm:"type:text" json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Product *Product   `gorm:"foreignKey:ProductID" json:"-"`
	Star    *ShareStar `gorm:"foreignKey:ShareStarID" json:"star,omitempty"`
	Member  *Member    `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (ProductReview) TableName() string {
	return "product_review"
}
