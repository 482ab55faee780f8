package usecase_test

import (
	"context"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPublicProducts_List_InvalidInputs(t *testing.T) {
	uc := usecase.NewProductUsecase(new(productRepoMock))

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 20})
	assertKind(t, err, usecase.KindValidation)

	_, err = uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 101})
	assertKind(t, err, usecase.KindValidation)

	_, err = uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 20, Category: "furniture"})
	assertKind(t, err, usecase.KindValidation)
}

func TestPublicProducts_List_CategoryAllMeansNoFilter(t *testing.T) {
	pRepo := new(productRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("ListPublic", mock.Anything, mock.MatchedBy(func(q repo.PublicListQuery) bool {
		return q.Category == nil && q.Page == 1 && q.Limit == 20
	})).Return([]model.Product{{ID: 1}}, int64(1), nil)

	out, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{
		Page: 1, Limit: 20, Category: "all",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	pRepo.AssertExpectations(t)
}

func TestPublicProducts_List_TrimsQuery(t *testing.T) {
	pRepo := new(productRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("ListPublic", mock.Anything, mock.MatchedBy(func(q repo.PublicListQuery) bool {
		return q.Q == "мах"
	})).Return([]model.Product{}, int64(0), nil)

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{
		Page: 1, Limit: 20, Q: "  мах  ",
	})
	assert.NoError(t, err)
	pRepo.AssertExpectations(t)
}

func TestPublicProducts_List_QueryTooLong(t *testing.T) {
	uc := usecase.NewProductUsecase(new(productRepoMock))

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{
		Page: 1, Limit: 20, Q: strings.Repeat("a", 101),
	})
	assertKind(t, err, usecase.KindValidation)
}

func TestPublicProducts_Detail_HidesNonApproved(t *testing.T) {
	pRepo := new(productRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Status: model.ProductStatusPending,
	}, nil)

	_, err := uc.GetProductDetail(context.Background(), 1)
	assertKind(t, err, usecase.KindNotFound)
}

func TestPublicProducts_Detail_HidesTrashed(t *testing.T) {
	pRepo := new(productRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	bin := model.TrashBinAdmin
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, Status: model.ProductStatusApproved, TrashBin: &bin,
	}, nil)

	_, err := uc.GetProductDetail(context.Background(), 1)
	assertKind(t, err, usecase.KindNotFound)
}
