package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (model.Order, error)
	//新しい順
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	//牧夫ビューで明細の親をまとめて引く
	ListByIDs(ctx context.Context, orderIDs []int64) ([]model.Order, error)
	//購入者側のソフト削除フラグ
	SetDeleted(ctx context.Context, orderID int64, deleted bool) error
	//物理削除（明細はOrderItemRepository側で消す）
	Delete(ctx context.Context, orderID int64) error
}
