package usecase

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// カート操作。ACTIVEなカートは1ユーザー1つだけ。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

// DI
func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type CartLine struct {
	model.CartItem
	Title       string `json:"title"`
	ProductType string `json:"product_type"`
	Animal      string `json:"animal"`
	Image       string `json:"image"`
	HerderName  string `json:"herder_name"`
	//商品が非公開になった等で今は買えない
	Unavailable bool `json:"unavailable"`
}

type CartOutput struct {
	CartID      int64      `json:"cart_id"`
	Items       []CartLine `json:"items"`
	TotalItems  int64      `json:"total_items"`
	TotalAmount int64      `json:"total_amount"`
}

// カートの中身。商品の現況を突き合わせて返す。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartOutput, error) {
	if userID <= 0 {
		return CartOutput{}, NewUnauthorizedError()
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartOutput{}, NewInternalError("db error")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartOutput{}, NewInternalError("db error")
	}

	out := CartOutput{CartID: cart.ID, Items: []CartLine{}}
	for _, it := range items {
		line := CartLine{CartItem: it}

		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		switch {
		case err == repo.ErrNotFound:
			line.Unavailable = true
		case err != nil:
			return CartOutput{}, NewInternalError("db error")
		default:
			line.Title = p.Title
			line.ProductType = p.ProductType
			line.Animal = p.Animal
			line.Image = p.Image
			line.HerderName = p.HerderName
			line.Unavailable = p.Status != model.ProductStatusApproved || p.IsTrashed()
		}

		out.Items = append(out.Items, line)
		out.TotalItems += it.Quantity
		out.TotalAmount += it.Quantity * it.UnitPriceSnapshot
	}
	return out, nil
}

// カートへ追加。同じ商品は数量を加算する。
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, productID int64, qty int64) error {
	if userID <= 0 {
		return NewUnauthorizedError()
	}
	if productID <= 0 {
		return NewValidationError("invalid product id")
	}
	if qty < 1 {
		return NewValidationError("quantity must be at least 1")
	}

	//買えるのはapprovedかつゴミ箱に入っていない商品だけ
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewNotFoundError()
	}
	if err != nil {
		return NewInternalError("db error")
	}
	if p.Status != model.ProductStatusApproved || p.IsTrashed() {
		return NewNotFoundError()
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return NewInternalError("db error")
	}

	//追加時点の価格をスナップショットする
	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, productID, qty, p.Price); err != nil {
		return NewInternalError("db error")
	}
	return nil
}

// 数量変更。0以下なら行ごと削除する。
func (u *CartUsecase) SetQuantity(ctx context.Context, userID int64, cartItemID int64, qty int64) error {
	if userID <= 0 {
		return NewUnauthorizedError()
	}
	if cartItemID <= 0 {
		return NewValidationError("invalid cart item id")
	}

	if err := u.mustOwn(ctx, userID, cartItemID); err != nil {
		return err
	}

	if qty <= 0 {
		if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
			if err == repo.ErrNotFound {
				return NewNotFoundError()
			}
			return NewInternalError("db error")
		}
		return nil
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, qty); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}
	return nil
}

// 行の削除
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) error {
	if userID <= 0 {
		return NewUnauthorizedError()
	}
	if cartItemID <= 0 {
		return NewValidationError("invalid cart item id")
	}

	if err := u.mustOwn(ctx, userID, cartItemID); err != nil {
		return err
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}
	return nil
}

// 他人のカート行は存在しない扱い
func (u *CartUsecase) mustOwn(ctx context.Context, userID int64, cartItemID int64) error {
	ok, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}
	if !ok {
		return NewNotFoundError()
	}
	return nil
}
