package usecase

import (
	"context"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 公開カタログ（購入者向け）。approvedだけが見える。
type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	Category string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewValidationError("invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewValidationError("invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewValidationError("q too long")
	}

	var category *model.ProductCategory
	switch in.Category {
	case "", "all":
		//絞り込みなし
	case string(model.CategoryMeat), string(model.CategoryDairy),
		string(model.CategoryHides), string(model.CategoryLive),
		string(model.CategoryOther):
		c := model.ProductCategory(in.Category)
		category = &c
	default:
		return ProductListOutput{}, NewValidationError("invalid category")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.PublicListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		Category: category,
	})
	if err != nil {
		return ProductListOutput{}, NewInternalError("db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewValidationError("invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewNotFoundError()
	}
	if err != nil {
		return model.Product{}, NewInternalError("db error")
	}

	//承認前・ゴミ箱内は存在しない扱い
	if p.Status != model.ProductStatusApproved || p.IsTrashed() {
		return model.Product{}, NewNotFoundError()
	}
	return p, nil
}
