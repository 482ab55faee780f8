package usecase

import (
	"context"
	"fmt"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 購入者の注文。確定はトランザクションで一括して行う。
type OrderUsecase struct {
	tx            repo.TransactionManager
	orderRepo     repo.OrderRepository
	orderItemRepo repo.OrderItemRepository
	userRepo      repo.UserRepository
	idGen         IDGenerator
	clock         Clock
	events        EventPublisher
}

// DI
func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	orderItemRepo repo.OrderItemRepository,
	userRepo repo.UserRepository,
	idGen IDGenerator,
	clock Clock,
	events EventPublisher,
) *OrderUsecase {
	return &OrderUsecase{
		tx:            tx,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		userRepo:      userRepo,
		idGen:         idGen,
		clock:         clock,
		events:        events,
	}
}

type CheckoutOutput struct {
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`
	TotalItems  int64  `json:"total_items"`
	TotalAmount int64  `json:"total_amount"`
}

type OrderDetailOutput struct {
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// カートの中身をそのまま注文へ確定する。
// 全部成功するか、何も起きないかのどちらか。
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewUnauthorizedError()
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrUserNotFound {
		return CheckoutOutput{}, NewUnauthorizedError()
	}
	if err != nil {
		return CheckoutOutput{}, NewInternalError("db error")
	}

	var out CheckoutOutput
	herderIDs := map[int64]struct{}{}

	txErr := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewValidationError("cart is empty")
		}
		if err != nil {
			return err
		}

		lines, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return NewValidationError("cart is empty")
		}

		now := u.clock.Now()
		orderNumber := newOrderNumber(u.idGen.NewID(), now.Format("20060102"))

		items := make([]model.OrderItem, 0, len(lines))
		var totalItems, totalAmount int64

		for _, line := range lines {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if err == repo.ErrNotFound {
				return NewConflictError("a product in the cart is no longer available")
			}
			if err != nil {
				return err
			}
			//カートに入れた後に非公開になった商品は確定できない
			if p.Status != model.ProductStatusApproved || p.IsTrashed() {
				return NewConflictError("a product in the cart is no longer available")
			}

			items = append(items, model.OrderItem{
				ProductID:   p.ID,
				HerderID:    p.HerderID,
				HerderName:  p.HerderName,
				HerderEmail: p.HerderEmail,
				ProductType: p.ProductType,
				Animal:      p.Animal,
				Image:       p.Image,
				UnitPrice:   line.UnitPriceSnapshot,
				Quantity:    line.Quantity,
				Status:      model.ItemStatusPending,
				Tracking:    model.DefaultTracking,
			})
			totalItems += line.Quantity
			totalAmount += line.Quantity * line.UnitPriceSnapshot
			herderIDs[p.HerderID] = struct{}{}
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			OrderNumber:   orderNumber,
			UserID:        userID,
			CustomerEmail: user.Email,
			TotalItems:    totalItems,
			TotalAmount:   totalAmount,
		})
		if err != nil {
			return err
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return err
		}

		//カートは使用済みにして空にする
		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusCheckedOut); err != nil {
			return err
		}
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return err
		}

		//牧夫へ「新しい注文」を通知
		for herderID := range herderIDs {
			if err := r.Notifications().Create(ctx, model.Notification{
				ID:      u.idGen.NewID(),
				UserID:  herderID,
				Kind:    model.NotificationOrderItem,
				RefID:   orderNumber,
				Message: fmt.Sprintf("Шинэ захиалга ирлээ: %s", orderNumber),
			}); err != nil {
				return err
			}
		}

		out = CheckoutOutput{
			OrderID:     orderID,
			OrderNumber: orderNumber,
			TotalItems:  totalItems,
			TotalAmount: totalAmount,
		}
		return nil
	})
	if txErr != nil {
		if _, ok := AsError(txErr); ok {
			return CheckoutOutput{}, txErr
		}
		return CheckoutOutput{}, NewInternalError("checkout failed")
	}

	u.events.Publish(ctx, "order_created", "order", out.OrderNumber)
	return out, nil
}

// 自分の注文一覧。view=trashでゴミ箱側。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, view string) ([]model.Order, error) {
	if userID <= 0 {
		return nil, NewUnauthorizedError()
	}

	var wantDeleted bool
	switch view {
	case "", "active":
		wantDeleted = false
	case "trash":
		wantDeleted = true
	default:
		return nil, NewValidationError("invalid view")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("db error")
	}

	out := []model.Order{}
	for _, o := range orders {
		if o.IsDeleted == wantDeleted {
			out = append(out, o)
		}
	}
	return out, nil
}

// 注文番号で詳細を引く。明細は牧夫側の削除フラグに関係なく全部返す。
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID int64, orderNumber string) (OrderDetailOutput, error) {
	if userID <= 0 {
		return OrderDetailOutput{}, NewUnauthorizedError()
	}
	if strings.TrimSpace(orderNumber) == "" {
		return OrderDetailOutput{}, NewValidationError("order number required")
	}

	o, err := u.orderRepo.FindByNumber(ctx, orderNumber)
	if err == repo.ErrNotFound {
		return OrderDetailOutput{}, NewNotFoundError()
	}
	if err != nil {
		return OrderDetailOutput{}, NewInternalError("db error")
	}
	if o.UserID != userID {
		return OrderDetailOutput{}, NewNotFoundError()
	}

	items, err := u.orderItemRepo.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderDetailOutput{}, NewInternalError("db error")
	}

	return OrderDetailOutput{Order: o, Items: items}, nil
}

// 注文をゴミ箱へ。confirmなしでは実行しない。
func (u *OrderUsecase) MoveToTrash(ctx context.Context, userID int64, orderID int64, confirm bool) error {
	if !confirm {
		return NewValidationError("confirmation required")
	}

	o, err := u.findOwned(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if o.IsDeleted {
		return NewNotFoundError()
	}

	if err := u.orderRepo.SetDeleted(ctx, orderID, true); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}
	return nil
}

// ゴミ箱から復元
func (u *OrderUsecase) Restore(ctx context.Context, userID int64, orderID int64) error {
	o, err := u.findOwned(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if !o.IsDeleted {
		return NewNotFoundError()
	}

	if err := u.orderRepo.SetDeleted(ctx, orderID, false); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}
	return nil
}

// 完全削除。明細ごと消す。元に戻せない。
func (u *OrderUsecase) PermanentDelete(ctx context.Context, userID int64, orderID int64, confirm bool) error {
	if !confirm {
		return NewValidationError("confirmation required")
	}

	o, err := u.findOwned(ctx, userID, orderID)
	if err != nil {
		return err
	}
	if !o.IsDeleted {
		return NewValidationError("order must be trashed first")
	}

	txErr := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.OrderItems().DeleteByOrderID(ctx, o.ID); err != nil {
			return err
		}
		return r.Orders().Delete(ctx, o.ID)
	})
	if txErr != nil {
		return NewInternalError("db error")
	}
	return nil
}

func (u *OrderUsecase) findOwned(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewUnauthorizedError()
	}
	if orderID <= 0 {
		return model.Order{}, NewValidationError("invalid order id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewNotFoundError()
	}
	if err != nil {
		return model.Order{}, NewInternalError("db error")
	}
	if o.UserID != userID {
		return model.Order{}, NewNotFoundError()
	}
	return o, nil
}

// ORD-YYYYMMDD-XXXXXX。末尾はUUIDから取る。
func newOrderNumber(id string, datePart string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return fmt.Sprintf("ORD-%s-%s", datePart, suffix)
}
