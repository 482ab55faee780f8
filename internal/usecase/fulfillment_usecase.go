package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 牧夫の受注処理。注文全体ではなく自分の明細だけを扱う。
type FulfillmentUsecase struct {
	orderItemRepo repo.OrderItemRepository
	orderRepo     repo.OrderRepository
	notifRepo     repo.NotificationRepository
	auditRepo     repo.AuditLogRepository
	idGen         IDGenerator
	clock         Clock
	events        EventPublisher
}

// DI
func NewFulfillmentUsecase(
	orderItemRepo repo.OrderItemRepository,
	orderRepo repo.OrderRepository,
	notifRepo repo.NotificationRepository,
	auditRepo repo.AuditLogRepository,
	idGen IDGenerator,
	clock Clock,
	events EventPublisher,
) *FulfillmentUsecase {
	return &FulfillmentUsecase{
		orderItemRepo: orderItemRepo,
		orderRepo:     orderRepo,
		notifRepo:     notifRepo,
		auditRepo:     auditRepo,
		idGen:         idGen,
		clock:         clock,
		events:        events,
	}
}

// 注文単位でまとめた牧夫向けビュー
type FulfillmentGroup struct {
	OrderNumber   string            `json:"order_number"`
	CustomerEmail string            `json:"customer_email"`
	OrderedAt     string            `json:"ordered_at"`
	Items         []model.OrderItem `json:"items"`
}

// 自分宛ての明細一覧。親注文ごとにまとめて返す。
func (u *FulfillmentUsecase) ListItems(ctx context.Context, herderID int64, view string) ([]FulfillmentGroup, error) {
	if herderID <= 0 {
		return nil, NewUnauthorizedError()
	}

	var trashed bool
	switch view {
	case "", "active":
		trashed = false
	case "trash":
		trashed = true
	default:
		return nil, NewValidationError("invalid view")
	}

	items, err := u.orderItemRepo.ListByHerder(ctx, herderID, trashed)
	if err != nil {
		return nil, NewInternalError("db error")
	}
	if len(items) == 0 {
		return []FulfillmentGroup{}, nil
	}

	//親注文をまとめて引く
	seen := map[int64]struct{}{}
	orderIDs := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.OrderID]; !ok {
			seen[it.OrderID] = struct{}{}
			orderIDs = append(orderIDs, it.OrderID)
		}
	}

	orders, err := u.orderRepo.ListByIDs(ctx, orderIDs)
	if err != nil {
		return nil, NewInternalError("db error")
	}
	byID := make(map[int64]model.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	groups := []FulfillmentGroup{}
	index := map[int64]int{}
	for _, it := range items {
		o, ok := byID[it.OrderID]
		if !ok {
			continue
		}
		gi, ok := index[it.OrderID]
		if !ok {
			groups = append(groups, FulfillmentGroup{
				OrderNumber:   o.OrderNumber,
				CustomerEmail: o.CustomerEmail,
				OrderedAt:     o.CreatedAt.Format("2006-01-02 15:04"),
			})
			gi = len(groups) - 1
			index[it.OrderID] = gi
		}
		groups[gi].Items = append(groups[gi].Items, it)
	}
	return groups, nil
}

// 未処理件数（バッジ表示用）
func (u *FulfillmentUsecase) PendingCount(ctx context.Context, herderID int64) (int64, error) {
	if herderID <= 0 {
		return 0, NewUnauthorizedError()
	}

	n, err := u.orderItemRepo.CountPendingByHerder(ctx, herderID)
	if err != nil {
		return 0, NewInternalError("db error")
	}
	return n, nil
}

// 明細の配送状態を進める。購入者に通知が飛ぶ。
func (u *FulfillmentUsecase) UpdateItemStatus(ctx context.Context, herderID int64, itemID int64, status string, tracking string) error {
	switch model.ItemStatus(status) {
	case model.ItemStatusPending, model.ItemStatusShipped, model.ItemStatusDelivered:
	default:
		return NewValidationError("invalid item status")
	}

	it, err := u.findOwned(ctx, herderID, itemID)
	if err != nil {
		return err
	}

	//trackingを省略したら今の値を維持する
	tracking = strings.TrimSpace(tracking)
	if tracking == "" {
		tracking = it.Tracking
	}

	before := it
	if err := u.orderItemRepo.UpdateStatus(ctx, itemID, model.ItemStatus(status), tracking); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}

	after := it
	after.Status = model.ItemStatus(status)
	after.Tracking = tracking

	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(after)
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  herderID,
		Action:       model.AuditActionUpdateItemStatus,
		ResourceType: model.AuditResourceOrderItem,
		ResourceID:   itemID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    u.clock.Now(),
	})

	//購入者へ通知
	o, err := u.orderRepo.FindByID(ctx, it.OrderID)
	if err == nil {
		_ = u.notifRepo.Create(ctx, model.Notification{
			ID:      u.idGen.NewID(),
			UserID:  o.UserID,
			Kind:    model.NotificationItemStatus,
			RefID:   o.OrderNumber,
			Message: fmt.Sprintf("Захиалга %s: «%s» → %s", o.OrderNumber, it.ProductType, status),
		})
	}

	u.events.Publish(ctx, "item_status_updated", "order_item", fmt.Sprint(itemID))
	return nil
}

// 自分のゴミ箱へ。購入者側の表示には影響しない。
func (u *FulfillmentUsecase) MoveToTrash(ctx context.Context, herderID int64, itemID int64, confirm bool) error {
	if !confirm {
		return NewValidationError("confirmation required")
	}

	it, err := u.findOwned(ctx, herderID, itemID)
	if err != nil {
		return err
	}
	if it.HerderDeleted {
		return NewNotFoundError()
	}

	if err := u.orderItemRepo.SetHerderDeleted(ctx, itemID, true); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}
	return nil
}

// ゴミ箱から戻す
func (u *FulfillmentUsecase) Restore(ctx context.Context, herderID int64, itemID int64) error {
	it, err := u.findOwned(ctx, herderID, itemID)
	if err != nil {
		return err
	}
	if !it.HerderDeleted {
		return NewNotFoundError()
	}

	if err := u.orderItemRepo.SetHerderDeleted(ctx, itemID, false); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}
	return nil
}

// 明細の完全削除。兄弟明細と親注文はそのまま残る。
func (u *FulfillmentUsecase) PermanentDelete(ctx context.Context, herderID int64, itemID int64, confirm bool) error {
	if !confirm {
		return NewValidationError("confirmation required")
	}

	it, err := u.findOwned(ctx, herderID, itemID)
	if err != nil {
		return err
	}
	if !it.HerderDeleted {
		return NewValidationError("item must be trashed first")
	}

	if err := u.orderItemRepo.Delete(ctx, itemID); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}

	u.events.Publish(ctx, "order_item_purged", "order_item", fmt.Sprint(itemID))
	return nil
}

// herder_idのFKだけで照合する。違えば存在しない扱い。
func (u *FulfillmentUsecase) findOwned(ctx context.Context, herderID int64, itemID int64) (model.OrderItem, error) {
	if herderID <= 0 {
		return model.OrderItem{}, NewUnauthorizedError()
	}
	if itemID <= 0 {
		return model.OrderItem{}, NewValidationError("invalid item id")
	}

	it, err := u.orderItemRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return model.OrderItem{}, NewNotFoundError()
	}
	if err != nil {
		return model.OrderItem{}, NewInternalError("db error")
	}
	if it.HerderID != herderID {
		return model.OrderItem{}, NewNotFoundError()
	}
	return it, nil
}
