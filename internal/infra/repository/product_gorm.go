package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// approvedかつゴミ箱に入っていない商品を、検索/カテゴリ/ページング付きで返す。
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.PublicListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("status = ?", model.ProductStatusApproved).
		Where("trash_bin IS NULL")

	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("title LIKE ? OR product_type LIKE ?", like, like)
	}
	if q.Category != nil {
		tx = tx.Where("category = ?", *q.Category)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	err := tx.Order("created_at desc").Order("id desc").
		Offset(offset).Limit(q.Limit).Find(&products).Error
	if err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *ProductGormRepository) ListByStatus(ctx context.Context, status model.ProductStatus) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Where("trash_bin IS NULL").
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductGormRepository) ListByHerder(ctx context.Context, herderID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("herder_id = ?", herderID).
		Where("trash_bin IS NULL").
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductGormRepository) ListTrash(ctx context.Context, bin model.TrashBin, herderID *int64) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Where("trash_bin = ?", bin)
	if herderID != nil {
		tx = tx.Where("herder_id = ?", *herderID)
	}

	var products []model.Product
	if err := tx.Order("trashed_at desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if p.Version == 0 {
		p.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 楽観ロック付き更新。versionが一致した行だけ書き換えてversionを+1する。
func (r *ProductGormRepository) UpdateVersioned(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND version = ?", p.ID, p.Version).
		Updates(map[string]interface{}{
			"price":            p.Price,
			"description":      p.Desc,
			"image":            p.Image,
			"status":           p.Status,
			"rejection_reason": p.RejectionReason,
			"rejected_at":      p.RejectedAt,
			"version":          p.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		//存在しないのか、版がずれたのかを切り分ける
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Product{}).
			Where("id = ?", p.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return repo.ErrNotFound
		}
		return repo.ErrConflict
	}
	return nil
}

func (r *ProductGormRepository) MoveToTrash(ctx context.Context, id int64, bin model.TrashBin, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND trash_bin IS NULL", id).
		Updates(map[string]interface{}{
			"trash_bin":  bin,
			"trashed_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Restore(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND trash_bin IS NOT NULL", id).
		Updates(map[string]interface{}{
			"trash_bin":        nil,
			"trashed_at":       nil,
			"status":           model.ProductStatusPending,
			"rejection_reason": nil,
			"rejected_at":      nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
