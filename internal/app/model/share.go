package model

// Reference tables shared by the course and product domains.

// ShareStore keeps the legacy store_id primary key column. The Go field is
// named ID so GORM does not mistake Course.StoreID for a has-one key.
type ShareStore struct {
	ID           uint   `gorm:"column:store_id;primaryKey" json:"store_id"`
	StoreName    string `gorm:"not null" json:"store_name"`
	StoreAddress string `json:"store_address"`
	StoreTel     string `gorm:"type:varchar(30)" json:"store_tel"`
	StoreInfo    string `gorm:"type:text" json:"store_info"`
}

func (ShareStore) TableName() string {
	return "share_store"
}

type ShareTag struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(50);not null" json:"name"`
}

func (ShareTag) TableName() string {
	return "share_tag"
}

type ShareColor struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Code string `gorm:"type:varchar(10)" json:"code"` // #RRGGBB
}

func (ShareColor) TableName() string {
	return "share_color"
}

// ShareStar is the rating scale used by product reviews.
type ShareStar struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Numbers int    `gorm:"not null" json:"numbers"`
}

func (ShareStar) TableName() string {
	return "share_star"
}

type SharePayment struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (SharePayment) TableName() string {
	return "share_payment"
}

type SharePaymentStatus struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (SharePaymentStatus) TableName() string {
	return "share_payment_status"
}

type ShareOrderStatus struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (ShareOrderStatus) TableName() string {
	return "share_order_status"
}

type Member struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Member) TableName() string {
	return "member"
}
