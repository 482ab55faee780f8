package model

import "time"

type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "Pending"
	ItemStatusShipped   ItemStatus = "Shipped"
	ItemStatusDelivered ItemStatus = "Delivered"
)

// 作成直後のtracking
const DefaultTracking = "Малчин хүлээж авч байна"

// 注文明細。IDは採番される安定キーで、削除しても他の明細に影響しない。
type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`

	ProductID int64 `gorm:"not null;index" json:"product_id"`

	//所有者の照合はこのFKだけで行う（名前・メールでは照合しない）
	HerderID int64 `gorm:"not null;index" json:"herder_id"`

	//表示用スナップショット
	HerderName  string `gorm:"type:varchar(255);not null" json:"herder_name"`
	HerderEmail string `gorm:"type:varchar(255);not null" json:"herder_email"`
	ProductType string `gorm:"type:varchar(255);not null" json:"product_type"`
	Animal      string `gorm:"type:varchar(100)" json:"animal"`
	Image       string `gorm:"type:text" json:"image"`

	UnitPrice int64 `gorm:"not null" json:"unit_price"`
	Quantity  int64 `gorm:"not null" json:"quantity"`

	Status   ItemStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Tracking string     `gorm:"type:varchar(500);not null" json:"tracking"`

	//牧夫側のソフト削除。購入者側の表示には影響しない。
	HerderDeleted bool `gorm:"not null;default:false" json:"herder_deleted"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
