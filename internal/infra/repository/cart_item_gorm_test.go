package repository_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	infra "app/internal/infra/repository"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestCartItemGorm_Upsert_MergesQuantity(t *testing.T) {
	db := newTestDB(t, &model.Cart{}, &model.CartItem{})
	carts := infra.NewCartGormRepository(db)
	items := infra.NewCartItemGormRepository(db)
	ctx := context.Background()

	cart, err := carts.GetOrCreateActiveByUserID(ctx, 1)
	assert.NoError(t, err)

	assert.NoError(t, items.UpsertByCartAndProduct(ctx, cart.ID, 3, 2, 18000))
	//2回目は数量だけ加算。スナップショット価格は最初のまま。
	assert.NoError(t, items.UpsertByCartAndProduct(ctx, cart.ID, 3, 3, 20000))

	lines, err := items.ListByCartID(ctx, cart.ID)
	assert.NoError(t, err)
	if assert.Len(t, lines, 1) {
		assert.Equal(t, int64(5), lines[0].Quantity)
		assert.Equal(t, int64(18000), lines[0].UnitPriceSnapshot)
	}
}

func TestCartItemGorm_IsOwnedByUser(t *testing.T) {
	db := newTestDB(t, &model.Cart{}, &model.CartItem{})
	carts := infra.NewCartGormRepository(db)
	items := infra.NewCartItemGormRepository(db)
	ctx := context.Background()

	cart, err := carts.GetOrCreateActiveByUserID(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, items.UpsertByCartAndProduct(ctx, cart.ID, 3, 1, 18000))

	lines, err := items.ListByCartID(ctx, cart.ID)
	assert.NoError(t, err)

	owned, err := items.IsOwnedByUser(ctx, lines[0].ID, 1)
	assert.NoError(t, err)
	assert.True(t, owned)

	owned, err = items.IsOwnedByUser(ctx, lines[0].ID, 2)
	assert.NoError(t, err)
	assert.False(t, owned)
}

func TestCartItemGorm_UpdateQuantity_NotFound(t *testing.T) {
	db := newTestDB(t, &model.CartItem{})
	items := infra.NewCartItemGormRepository(db)

	err := items.UpdateQuantity(context.Background(), 404, 2)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCartGorm_GetOrCreateActive_ReusesCart(t *testing.T) {
	db := newTestDB(t, &model.Cart{})
	carts := infra.NewCartGormRepository(db)
	ctx := context.Background()

	first, err := carts.GetOrCreateActiveByUserID(ctx, 1)
	assert.NoError(t, err)
	second, err := carts.GetOrCreateActiveByUserID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	//チェックアウト後は新しいACTIVEカートが作られる
	assert.NoError(t, carts.UpdateStatus(ctx, first.ID, model.CartStatusCheckedOut))
	third, err := carts.GetOrCreateActiveByUserID(ctx, 1)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestCartGorm_Clear_RemovesAllLines(t *testing.T) {
	db := newTestDB(t, &model.Cart{}, &model.CartItem{})
	carts := infra.NewCartGormRepository(db)
	items := infra.NewCartItemGormRepository(db)
	ctx := context.Background()

	cart, err := carts.GetOrCreateActiveByUserID(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, items.UpsertByCartAndProduct(ctx, cart.ID, 3, 2, 18000))
	assert.NoError(t, items.UpsertByCartAndProduct(ctx, cart.ID, 4, 1, 35000))

	assert.NoError(t, carts.Clear(ctx, cart.ID))

	lines, err := items.ListByCartID(ctx, cart.ID)
	assert.NoError(t, err)
	assert.Empty(t, lines)
}
