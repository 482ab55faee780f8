package repository_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	infra "app/internal/infra/repository"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
)

func newProduct(herderID int64, title string, status model.ProductStatus) model.Product {
	return model.Product{
		HerderID:    herderID,
		HerderName:  "Бат",
		HerderEmail: "bat@example.mn",
		Title:       title,
		ProductType: title,
		Category:    model.DetectCategory(title, title),
		Price:       18000,
		Status:      status,
	}
}

func TestProductGorm_UpdateVersioned_StaleVersion(t *testing.T) {
	db := newTestDB(t, &model.Product{})
	r := infra.NewProductGormRepository(db)
	ctx := context.Background()

	p, err := r.Create(ctx, newProduct(7, "Үхрийн мах", model.ProductStatusPending))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.Version)

	p.Price = 20000
	assert.NoError(t, r.UpdateVersioned(ctx, p))

	//古い版のまま二重更新 → conflict
	p.Price = 99999
	err = r.UpdateVersioned(ctx, p)
	assert.ErrorIs(t, err, repo.ErrConflict)

	got, err := r.FindByID(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(20000), got.Price)
	assert.Equal(t, int64(2), got.Version)
}

func TestProductGorm_UpdateVersioned_MissingRow(t *testing.T) {
	db := newTestDB(t, &model.Product{})
	r := infra.NewProductGormRepository(db)

	err := r.UpdateVersioned(context.Background(), model.Product{ID: 404, Version: 1})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductGorm_MoveToTrash_OnlyOnce(t *testing.T) {
	db := newTestDB(t, &model.Product{})
	r := infra.NewProductGormRepository(db)
	ctx := context.Background()

	p, err := r.Create(ctx, newProduct(7, "Өрөм", model.ProductStatusApproved))
	assert.NoError(t, err)

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.NoError(t, r.MoveToTrash(ctx, p.ID, model.TrashBinAdmin, at))

	//既にゴミ箱にある行は対象外
	err = r.MoveToTrash(ctx, p.ID, model.TrashBinHerder, at)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	got, err := r.FindByID(ctx, p.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, got.TrashBin) {
		assert.Equal(t, model.TrashBinAdmin, *got.TrashBin)
	}
}

func TestProductGorm_Restore_ResetsModeration(t *testing.T) {
	db := newTestDB(t, &model.Product{})
	r := infra.NewProductGormRepository(db)
	ctx := context.Background()

	reason := "зураг бүдэг"
	rejectedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := newProduct(7, "Ааруул", model.ProductStatusRejected)
	p.RejectionReason = &reason
	p.RejectedAt = &rejectedAt
	p, err := r.Create(ctx, p)
	assert.NoError(t, err)

	assert.NoError(t, r.MoveToTrash(ctx, p.ID, model.TrashBinHerder, time.Now()))
	assert.NoError(t, r.Restore(ctx, p.ID))

	got, err := r.FindByID(ctx, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, model.ProductStatusPending, got.Status)
	assert.Nil(t, got.TrashBin)
	assert.Nil(t, got.TrashedAt)
	assert.Nil(t, got.RejectionReason)
	assert.Nil(t, got.RejectedAt)
}

func TestProductGorm_Restore_NotInTrash(t *testing.T) {
	db := newTestDB(t, &model.Product{})
	r := infra.NewProductGormRepository(db)
	ctx := context.Background()

	p, err := r.Create(ctx, newProduct(7, "Айраг", model.ProductStatusApproved))
	assert.NoError(t, err)

	err = r.Restore(ctx, p.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductGorm_ListPublic_HidesPendingAndTrashed(t *testing.T) {
	db := newTestDB(t, &model.Product{})
	r := infra.NewProductGormRepository(db)
	ctx := context.Background()

	visible, err := r.Create(ctx, newProduct(7, "Үхрийн мах", model.ProductStatusApproved))
	assert.NoError(t, err)
	_, err = r.Create(ctx, newProduct(7, "Хонины мах", model.ProductStatusPending))
	assert.NoError(t, err)
	trashed, err := r.Create(ctx, newProduct(8, "Өрөм", model.ProductStatusApproved))
	assert.NoError(t, err)
	assert.NoError(t, r.MoveToTrash(ctx, trashed.ID, model.TrashBinHerder, time.Now()))

	products, total, err := r.ListPublic(ctx, repo.PublicListQuery{Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	if assert.Len(t, products, 1) {
		assert.Equal(t, visible.ID, products[0].ID)
	}
}

func TestProductGorm_ListPublic_SearchAndCategory(t *testing.T) {
	db := newTestDB(t, &model.Product{})
	r := infra.NewProductGormRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, newProduct(7, "Үхрийн мах", model.ProductStatusApproved))
	assert.NoError(t, err)
	_, err = r.Create(ctx, newProduct(7, "Өрөм", model.ProductStatusApproved))
	assert.NoError(t, err)

	_, total, err := r.ListPublic(ctx, repo.PublicListQuery{Page: 1, Limit: 20, Q: "мах"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)

	dairy := model.CategoryDairy
	_, total, err = r.ListPublic(ctx, repo.PublicListQuery{Page: 1, Limit: 20, Category: &dairy})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestProductGorm_ListTrash_SplitsBins(t *testing.T) {
	db := newTestDB(t, &model.Product{})
	r := infra.NewProductGormRepository(db)
	ctx := context.Background()

	admin, err := r.Create(ctx, newProduct(7, "Ноолуур", model.ProductStatusApproved))
	assert.NoError(t, err)
	herder, err := r.Create(ctx, newProduct(7, "Айраг", model.ProductStatusPending))
	assert.NoError(t, err)
	assert.NoError(t, r.MoveToTrash(ctx, admin.ID, model.TrashBinAdmin, time.Now()))
	assert.NoError(t, r.MoveToTrash(ctx, herder.ID, model.TrashBinHerder, time.Now()))

	adminBin, err := r.ListTrash(ctx, model.TrashBinAdmin, nil)
	assert.NoError(t, err)
	if assert.Len(t, adminBin, 1) {
		assert.Equal(t, admin.ID, adminBin[0].ID)
	}

	herderID := int64(7)
	herderBin, err := r.ListTrash(ctx, model.TrashBinHerder, &herderID)
	assert.NoError(t, err)
	if assert.Len(t, herderBin, 1) {
		assert.Equal(t, herder.ID, herderBin[0].ID)
	}

	other := int64(99)
	empty, err := r.ListTrash(ctx, model.TrashBinHerder, &other)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductGorm_Delete_NotFound(t *testing.T) {
	db := newTestDB(t, &model.Product{})
	r := infra.NewProductGormRepository(db)

	err := r.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}
