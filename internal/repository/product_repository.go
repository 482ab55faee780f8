package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// 楽観ロックの版ずれ
var ErrConflict = errors.New("conflict")

// 公開一覧の検索条件
type PublicListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category *model.ProductCategory
}

// 商品の永続化だけを約束。
type ProductRepository interface {
	//approvedかつゴミ箱に入っていないものだけ
	ListPublic(ctx context.Context, q PublicListQuery) ([]model.Product, int64, error)

	//管理者用。掲載側をstatusで絞る。
	ListByStatus(ctx context.Context, status model.ProductStatus) ([]model.Product, error)

	//牧夫の掲載側一覧
	ListByHerder(ctx context.Context, herderID int64) ([]model.Product, error)

	//ゴミ箱一覧。herderIDを渡すと所有分だけ。
	ListTrash(ctx context.Context, bin model.TrashBin, herderID *int64) ([]model.Product, error)

	FindByID(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)

	//p.Versionが現在値と一致するときだけ更新してversionを+1する。
	//ずれていたらErrConflict。
	UpdateVersioned(ctx context.Context, p model.Product) error

	MoveToTrash(ctx context.Context, id int64, bin model.TrashBin, at time.Time) error

	//ゴミ箱から掲載側へ戻す。status=pending、却下理由はクリア。
	Restore(ctx context.Context, id int64) error

	//物理削除。ゴミ箱内の行にだけ使う（usecase側で保証）。
	Delete(ctx context.Context, id int64) error
}
