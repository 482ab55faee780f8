package model

import "time"

type NotificationKind string

const (
	//出品が承認された（牧夫向け）
	NotificationProductApproved NotificationKind = "product_approved"
	//出品が差し戻された（牧夫向け）
	NotificationProductRejected NotificationKind = "product_rejected"
	//新しい注文明細が入った（牧夫向け）
	NotificationOrderItem NotificationKind = "order_item"
	//明細の配送状態が変わった（購入者向け）
	NotificationItemStatus NotificationKind = "item_status"
)

type Notification struct {
	ID     string           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID int64            `gorm:"not null;index" json:"user_id"`
	Kind   NotificationKind `gorm:"type:varchar(30);not null" json:"kind"`

	//対象のID（商品IDや注文番号など、kindによる）
	RefID string `gorm:"type:varchar(40);not null" json:"ref_id"`

	Message   string     `gorm:"type:varchar(500);not null" json:"message"`
	SeenAt    *time.Time `gorm:"index" json:"seen_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
