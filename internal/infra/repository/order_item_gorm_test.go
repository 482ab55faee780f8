package repository_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	infra "app/internal/infra/repository"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
)

func newOrderItem(herderID int64, productType string, status model.ItemStatus) model.OrderItem {
	return model.OrderItem{
		ProductID:   1,
		HerderID:    herderID,
		HerderName:  "Бат",
		HerderEmail: "bat@example.mn",
		ProductType: productType,
		UnitPrice:   18000,
		Quantity:    1,
		Status:      status,
		Tracking:    model.DefaultTracking,
	}
}

func TestOrderItemGorm_Delete_LeavesSiblingsAndOrder(t *testing.T) {
	db := newTestDB(t, &model.Order{}, &model.OrderItem{})
	orders := infra.NewOrderGormRepository(db)
	items := infra.NewOrderItemGormRepository(db)
	ctx := context.Background()

	orderID, err := orders.Create(ctx, model.Order{
		OrderNumber: "ORD-20250102-AAAAAA", UserID: 1, CustomerEmail: "c@example.mn",
		TotalItems: 3, TotalAmount: 54000,
	})
	assert.NoError(t, err)

	err = items.CreateBulk(ctx, orderID, []model.OrderItem{
		newOrderItem(7, "Үхрийн мах", model.ItemStatusPending),
		newOrderItem(7, "Өрөм", model.ItemStatusPending),
		newOrderItem(8, "Ааруул", model.ItemStatusPending),
	})
	assert.NoError(t, err)

	before, err := items.ListByOrderID(ctx, orderID)
	assert.NoError(t, err)
	assert.Len(t, before, 3)

	//1件消しても他の明細と注文本体は残る
	assert.NoError(t, items.Delete(ctx, before[1].ID))

	after, err := items.ListByOrderID(ctx, orderID)
	assert.NoError(t, err)
	assert.Len(t, after, 2)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[2].ID, after[1].ID)

	_, err = orders.FindByID(ctx, orderID)
	assert.NoError(t, err)
}

func TestOrderItemGorm_ListByHerder_SplitsByDeleted(t *testing.T) {
	db := newTestDB(t, &model.OrderItem{})
	items := infra.NewOrderItemGormRepository(db)
	ctx := context.Background()

	err := items.CreateBulk(ctx, 100, []model.OrderItem{
		newOrderItem(7, "Үхрийн мах", model.ItemStatusPending),
		newOrderItem(7, "Өрөм", model.ItemStatusShipped),
		newOrderItem(8, "Ааруул", model.ItemStatusPending),
	})
	assert.NoError(t, err)

	active, err := items.ListByHerder(ctx, 7, false)
	assert.NoError(t, err)
	assert.Len(t, active, 2)

	assert.NoError(t, items.SetHerderDeleted(ctx, active[0].ID, true))

	active, err = items.ListByHerder(ctx, 7, false)
	assert.NoError(t, err)
	assert.Len(t, active, 1)

	trashed, err := items.ListByHerder(ctx, 7, true)
	assert.NoError(t, err)
	assert.Len(t, trashed, 1)
}

func TestOrderItemGorm_CountPendingByHerder(t *testing.T) {
	db := newTestDB(t, &model.OrderItem{})
	items := infra.NewOrderItemGormRepository(db)
	ctx := context.Background()

	err := items.CreateBulk(ctx, 100, []model.OrderItem{
		newOrderItem(7, "Үхрийн мах", model.ItemStatusPending),
		newOrderItem(7, "Өрөм", model.ItemStatusPending),
		newOrderItem(7, "Ааруул", model.ItemStatusShipped),
		newOrderItem(8, "Айраг", model.ItemStatusPending),
	})
	assert.NoError(t, err)

	listed, err := items.ListByHerder(ctx, 7, false)
	assert.NoError(t, err)
	assert.NoError(t, items.SetHerderDeleted(ctx, listed[0].ID, true))

	//ゴミ箱の明細とPending以外は数えない
	count, err := items.CountPendingByHerder(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestOrderItemGorm_UpdateStatus_NotFound(t *testing.T) {
	db := newTestDB(t, &model.OrderItem{})
	items := infra.NewOrderItemGormRepository(db)

	err := items.UpdateStatus(context.Background(), 404, model.ItemStatusShipped, "")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOrderItemGorm_DeleteByOrderID_OnlyThatOrder(t *testing.T) {
	db := newTestDB(t, &model.OrderItem{})
	items := infra.NewOrderItemGormRepository(db)
	ctx := context.Background()

	assert.NoError(t, items.CreateBulk(ctx, 100, []model.OrderItem{
		newOrderItem(7, "Үхрийн мах", model.ItemStatusPending),
	}))
	assert.NoError(t, items.CreateBulk(ctx, 101, []model.OrderItem{
		newOrderItem(7, "Өрөм", model.ItemStatusPending),
	}))

	assert.NoError(t, items.DeleteByOrderID(ctx, 100))

	gone, err := items.ListByOrderID(ctx, 100)
	assert.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := items.ListByOrderID(ctx, 101)
	assert.NoError(t, err)
	assert.Len(t, kept, 1)
}
