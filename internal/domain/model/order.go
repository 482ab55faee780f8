package model

import "time"

type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//人間可読の注文番号（ORD-YYYYMMDD-XXXXXX）
	OrderNumber string `gorm:"type:varchar(40);not null;uniqueIndex" json:"order_number"`

	UserID        int64  `gorm:"not null;index" json:"user_id"`
	CustomerEmail string `gorm:"type:varchar(255);not null" json:"customer_email"`

	TotalItems  int64 `gorm:"not null" json:"total_items"`
	TotalAmount int64 `gorm:"not null" json:"total_amount"`

	//購入者側のソフト削除。明細側のフラグとは独立。
	IsDeleted bool `gorm:"not null;default:false" json:"is_deleted"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
