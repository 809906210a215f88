package model

import (
	"time"
)

type CourseOrder struct {
	ID                   uint      `gorm:"primarykey" json:"id"`                 // 주문 ID
	MemberID             uint      `gorm:"not null;index" json:"member_id"`      // 주문 회원
	SharePaymentID       uint      `gorm:"index" json:"share_payment_id"`        // 결제 수단
	SharePaymentStatusID uint      `gorm:"index" json:"share_payment_status_id"` // 결제 상태
	ShareOrderStatusID   uint      `gorm:"index" json:"share_order_status_id"`   // 주문 상태
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	Items         []CourseOrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payment       *SharePayment       `gorm:"foreignKey:SharePaymentID" json:"payment,omitempty"`
	PaymentStatus *SharePaymentStatus `gorm:"foreignKey:SharePaymentStatusID" json:"payment_status,omitempty"`
	OrderStatus   *ShareOrderStatus   `gorm:"foreignKey:ShareOrderStatusID" json:"order_status,omitempty"`
}

func (CourseOrder) TableName() string {
	return "course_order"
}

// CourseOrderItem books one period of a course. Period is not a foreign
// key: it selects the matching CourseDatetime rows of the course.
type CourseOrderItem struct {
	ID       uint `gorm:"primarykey" json:"id"`
	OrderID  uint `gorm:"not null;index" json:"order_id"`
	CourseID uint `gorm:"not null;index" json:"course_id"`
	Period   int  `gorm:"not null" json:"period"`

	Order  *CourseOrder `gorm:"foreignKey:OrderID" json:"-"`
	Course *Course      `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (CourseOrderItem) TableName() string {
	return "course_order_item"
}
