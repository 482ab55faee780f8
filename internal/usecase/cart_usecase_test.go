package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUC(c *cartRepoMock, ci *cartItemRepoMock, p *productRepoMock) *usecase.CartUsecase {
	return usecase.NewCartUsecase(c, ci, p)
}

func TestCart_AddItem_SnapshotsCurrentPrice(t *testing.T) {
	cRepo := new(cartRepoMock)
	ciRepo := new(cartItemRepoMock)
	pRepo := new(productRepoMock)
	uc := newCartUC(cRepo, ciRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Product{
		ID: 3, Status: model.ProductStatusApproved, Price: 18000,
	}, nil)
	cRepo.On("GetOrCreateActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 9, UserID: 1}, nil)
	ciRepo.On("UpsertByCartAndProduct", mock.Anything, int64(9), int64(3), int64(2), int64(18000)).Return(nil)

	err := uc.AddItem(context.Background(), 1, 3, 2)
	assert.NoError(t, err)
	ciRepo.AssertExpectations(t)
}

func TestCart_AddItem_PendingProductIsInvisible(t *testing.T) {
	cRepo := new(cartRepoMock)
	ciRepo := new(cartItemRepoMock)
	pRepo := new(productRepoMock)
	uc := newCartUC(cRepo, ciRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Product{
		ID: 3, Status: model.ProductStatusPending, Price: 18000,
	}, nil)

	err := uc.AddItem(context.Background(), 1, 3, 1)
	assertKind(t, err, usecase.KindNotFound)
	ciRepo.AssertNotCalled(t, "UpsertByCartAndProduct")
}

func TestCart_AddItem_InvalidQuantity(t *testing.T) {
	uc := newCartUC(new(cartRepoMock), new(cartItemRepoMock), new(productRepoMock))

	err := uc.AddItem(context.Background(), 1, 3, 0)
	assertKind(t, err, usecase.KindValidation)
}

func TestCart_SetQuantity_ZeroRemovesLine(t *testing.T) {
	cRepo := new(cartRepoMock)
	ciRepo := new(cartItemRepoMock)
	uc := newCartUC(cRepo, ciRepo, new(productRepoMock))

	ciRepo.On("IsOwnedByUser", mock.Anything, int64(5), int64(1)).Return(true, nil)
	ciRepo.On("DeleteByID", mock.Anything, int64(5)).Return(nil)

	err := uc.SetQuantity(context.Background(), 1, 5, 0)
	assert.NoError(t, err)
	ciRepo.AssertCalled(t, "DeleteByID", mock.Anything, int64(5))
	ciRepo.AssertNotCalled(t, "UpdateQuantity")
}

func TestCart_SetQuantity_NotOwner(t *testing.T) {
	ciRepo := new(cartItemRepoMock)
	uc := newCartUC(new(cartRepoMock), ciRepo, new(productRepoMock))

	ciRepo.On("IsOwnedByUser", mock.Anything, int64(5), int64(1)).Return(false, nil)

	err := uc.SetQuantity(context.Background(), 1, 5, 3)
	assertKind(t, err, usecase.KindNotFound)
	ciRepo.AssertNotCalled(t, "UpdateQuantity")
}

func TestCart_GetCart_TotalsAndAvailability(t *testing.T) {
	cRepo := new(cartRepoMock)
	ciRepo := new(cartItemRepoMock)
	pRepo := new(productRepoMock)
	uc := newCartUC(cRepo, ciRepo, pRepo)

	cRepo.On("GetOrCreateActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 9}, nil)
	ciRepo.On("ListByCartID", mock.Anything, int64(9)).Return([]model.CartItem{
		{ID: 1, CartID: 9, ProductID: 3, Quantity: 2, UnitPriceSnapshot: 18000},
		{ID: 2, CartID: 9, ProductID: 4, Quantity: 1, UnitPriceSnapshot: 35000},
	}, nil)
	pRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Product{
		ID: 3, Title: "Үхрийн мах", Status: model.ProductStatusApproved,
	}, nil)
	//4番はその後ゴミ箱に入った
	bin := model.TrashBinHerder
	pRepo.On("FindByID", mock.Anything, int64(4)).Return(model.Product{
		ID: 4, Title: "Өрөм", Status: model.ProductStatusApproved, TrashBin: &bin,
	}, nil)

	out, err := uc.GetCart(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.TotalItems)
	assert.Equal(t, int64(2*18000+35000), out.TotalAmount)
	assert.Len(t, out.Items, 2)
	assert.False(t, out.Items[0].Unavailable)
	assert.True(t, out.Items[1].Unavailable)
}
