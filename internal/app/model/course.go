package model

import (
	"time"
)

type Course struct {
	ID         uint      `gorm:"primarykey" json:"id"`            // 강좌 ID
	Name       string    `gorm:"not null" json:"name"`            // 강좌명
	Intro      string    `gorm:"type:text" json:"intro"`          // 강좌 소개
	Price      int       `gorm:"not null;default:0" json:"price"` // 가격
	StoreID    uint      `gorm:"index" json:"store_id"`           // 매장 ID (share_store.store_id)
	CategoryID uint      `gorm:"index" json:"category_id"`        // 카테고리 ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"`         // 생성 시간
	UpdatedAt  time.Time `json:"updated_at"`                      // 수정 시간

	Store      *ShareStore       `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Images     []CourseImage     `gorm:"foreignKey:CourseID" json:"images,omitempty"`
	News       []CourseNews      `gorm:"foreignKey:CourseID" json:"news,omitempty"`
	Datetimes  []CourseDatetime  `gorm:"foreignKey:CourseID" json:"datetimes,omitempty"`
	Reviews    []CourseReview    `gorm:"foreignKey:CourseID" json:"reviews,omitempty"`
	OrderItems []CourseOrderItem `gorm:"foreignKey:CourseID" json:"-"`
}

func (Course) TableName() string {
	return "course"
}

type CourseCategory struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Path     string `json:"path"`                   // 프론트엔드 경로
	ParentID *uint  `gorm:"index" json:"parent_id"` // 상위 카테고리 (nullable)
}

func (CourseCategory) TableName() string {
	return "course_category"
}

type CourseImage struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	CourseID uint   `gorm:"not null;index" json:"course_id"`
	Path     string `gorm:"not null" json:"path"`
	IsMain   bool   `gorm:"default:false" json:"is_main"` // 대표 이미지
}

func (CourseImage) TableName() string {
	return "course_image"
}

type CourseNews struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (CourseNews) TableName() string {
	return "course_news"
}

// CourseDatetime is one session of a course. Period groups the sessions
// that an order item books together.
type CourseDatetime struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	Period    int       `gorm:"not null" json:"period"`             // 기수
	Date      time.Time `gorm:"type:date" json:"date"`              // 수업 날짜
	StartTime string    `gorm:"type:varchar(10)" json:"start_time"` // 예: "09:00"
	EndTime   string    `gorm:"type:varchar(10)" json:"end_time"`   // 예: "12:00"
}

func (CourseDatetime) TableName() string {
	return "course_datetime"
}

type CourseReview struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	MemberID  uint      `gorm:"not null;index" json:"member_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (CourseReview) TableName() string {
	return "course_review"
}
