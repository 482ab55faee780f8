package model

import "time"

// 管理者・牧夫の操作種別。
type AuditAction string

const (
	AuditActionApproveProduct AuditAction = "APPROVE_PRODUCT"
	AuditActionRejectProduct  AuditAction = "REJECT_PRODUCT"
	AuditActionRevertProduct  AuditAction = "REVERT_PRODUCT"
	AuditActionTrashProduct   AuditAction = "TRASH_PRODUCT"
	AuditActionRestoreProduct AuditAction = "RESTORE_PRODUCT"
	AuditActionPurgeProduct   AuditAction = "PURGE_PRODUCT"

	AuditActionUpdateItemStatus AuditAction = "UPDATE_ITEM_STATUS"

	AuditActionDeactivateUser AuditAction = "DEACTIVATE_USER"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceProduct   AuditResourceType = "product"
	AuditResourceOrderItem AuditResourceType = "order_item"
	AuditResourceUser      AuditResourceType = "user"
)

// 監査ログ。「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
