package model

import (
	"strings"
	"time"
)

type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
)

type ProductCategory string

const (
	CategoryMeat  ProductCategory = "meat"
	CategoryDairy ProductCategory = "dairy"
	CategoryHides ProductCategory = "hides"
	CategoryLive  ProductCategory = "live"
	CategoryOther ProductCategory = "other"
)

// どちらのゴミ箱に入っているか（nil=公開側）
type TrashBin string

const (
	TrashBinAdmin  TrashBin = "admin"
	TrashBinHerder TrashBin = "herder"
)

// 出品。掲載か、ゴミ箱か、どちらか一方にしか存在しない。
type Product struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	HerderID int64 `gorm:"not null;index" json:"herder_id"`

	//表示用スナップショット（出品時点の値、以後照合には使わない）
	HerderName  string `gorm:"type:varchar(255);not null" json:"herder_name"`
	HerderEmail string `gorm:"type:varchar(255);not null" json:"herder_email"`

	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	ProductType string          `gorm:"type:varchar(255);not null" json:"product_type"`
	Animal      string          `gorm:"type:varchar(100);not null" json:"animal"`
	Category    ProductCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Price       int64           `gorm:"not null" json:"price"`
	Desc        string          `gorm:"column:description;type:text" json:"desc"`

	//商品画像はdata URIのまま保存
	Image string `gorm:"type:text" json:"image"`

	Status ProductStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//rejectedのときだけ設定。approve/revertでは消さない（履歴として残す）。
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`

	TrashBin  *TrashBin  `gorm:"type:varchar(20);index" json:"trash_bin,omitempty"`
	TrashedAt *time.Time `json:"trashed_at,omitempty"`

	//楽観ロック用。更新のたびに+1。
	Version int64 `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (p Product) IsTrashed() bool {
	return p.TrashBin != nil
}

// productType/titleの部分一致でカテゴリを判定する。
// 出品時に一度だけ実行して行に保存する。
func DetectCategory(productType string, title string) ProductCategory {
	t := strings.ToLower(productType)
	ti := strings.ToLower(title)

	switch {
	case containsAny(t, "мах", "гэдэс") || strings.Contains(ti, "мах"):
		return CategoryMeat
	case containsAny(t, "сүү", "тараг", "ааруул", "өрөм", "бяслаг", "айраг"):
		return CategoryDairy
	case containsAny(t, "ноос", "ноолуур", "арьс", "шир"):
		return CategoryHides
	case containsAny(t, "амьд", "мал"):
		return CategoryLive
	default:
		return CategoryOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
