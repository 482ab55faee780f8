package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	FindByID(ctx context.Context, itemID int64) (model.OrderItem, error)

	//herder_idのFKだけで照合する。trashed=falseで稼働ビュー、trueでゴミ箱ビュー。
	ListByHerder(ctx context.Context, herderID int64, trashed bool) ([]model.OrderItem, error)

	//未処理（Pendingかつ未削除）の件数。バッジ表示用。
	CountPendingByHerder(ctx context.Context, herderID int64) (int64, error)

	UpdateStatus(ctx context.Context, itemID int64, status model.ItemStatus, tracking string) error
	SetHerderDeleted(ctx context.Context, itemID int64, deleted bool) error

	//物理削除。兄弟明細には影響しない。
	Delete(ctx context.Context, itemID int64) error
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
