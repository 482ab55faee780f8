package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理者の審査フロー。pending→approved/rejectedの状態機械を握る。
type ModerationUsecase struct {
	productRepo repo.ProductRepository
	notifRepo   repo.NotificationRepository
	auditRepo   repo.AuditLogRepository
	idGen       IDGenerator
	clock       Clock
	events      EventPublisher
}

// DI
func NewModerationUsecase(
	productRepo repo.ProductRepository,
	notifRepo repo.NotificationRepository,
	auditRepo repo.AuditLogRepository,
	idGen IDGenerator,
	clock Clock,
	events EventPublisher,
) *ModerationUsecase {
	return &ModerationUsecase{
		productRepo: productRepo,
		notifRepo:   notifRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		clock:       clock,
		events:      events,
	}
}

// 管理ダッシュボードの掲載側一覧
func (u *ModerationUsecase) ListByStatus(ctx context.Context, status string) ([]model.Product, error) {
	switch model.ProductStatus(status) {
	case model.ProductStatusPending, model.ProductStatusApproved, model.ProductStatusRejected:
	default:
		return nil, NewValidationError("invalid status")
	}

	items, err := u.productRepo.ListByStatus(ctx, model.ProductStatus(status))
	if err != nil {
		return nil, NewInternalError("db error")
	}
	return items, nil
}

// 管理者ゴミ箱の一覧
func (u *ModerationUsecase) ListTrash(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListTrash(ctx, model.TrashBinAdmin, nil)
	if err != nil {
		return nil, NewInternalError("db error")
	}
	return items, nil
}

// 承認。却下理由は履歴として残したままにする。
func (u *ModerationUsecase) Approve(ctx context.Context, adminID int64, productID int64) error {
	p, err := u.findLive(ctx, productID)
	if err != nil {
		return err
	}
	if p.Status == model.ProductStatusApproved {
		return NewValidationError("already approved")
	}

	before := p
	p.Status = model.ProductStatusApproved

	if err := u.productRepo.UpdateVersioned(ctx, p); err != nil {
		return translateUpdateErr(err)
	}

	u.writeAudit(ctx, adminID, model.AuditActionApproveProduct, p.ID, before, p)
	u.notifyHerder(ctx, p.HerderID, model.NotificationProductApproved, p.ID,
		fmt.Sprintf("Таны «%s» бүтээгдэхүүн зөвшөөрөгдлөө", p.Title))
	u.events.Publish(ctx, "product_approved", "product", fmt.Sprint(p.ID))
	return nil
}

// 却下。理由は必須で、空なら何も変更しない。
func (u *ModerationUsecase) Reject(ctx context.Context, adminID int64, productID int64, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return NewValidationError("rejection reason required")
	}

	p, err := u.findLive(ctx, productID)
	if err != nil {
		return err
	}
	if p.Status == model.ProductStatusRejected {
		return NewValidationError("already rejected")
	}

	before := p
	now := u.clock.Now()
	p.Status = model.ProductStatusRejected
	p.RejectionReason = &reason
	p.RejectedAt = &now

	if err := u.productRepo.UpdateVersioned(ctx, p); err != nil {
		return translateUpdateErr(err)
	}

	u.writeAudit(ctx, adminID, model.AuditActionRejectProduct, p.ID, before, p)
	u.notifyHerder(ctx, p.HerderID, model.NotificationProductRejected, p.ID,
		fmt.Sprintf("Таны «%s» бүтээгдэхүүн татгалзлаа: %s", p.Title, reason))
	u.events.Publish(ctx, "product_rejected", "product", fmt.Sprint(p.ID))
	return nil
}

// 審査待ちへ差し戻す。approvedからもrejectedからも戻せる。
// 過去の却下理由は消さない。
func (u *ModerationUsecase) Revert(ctx context.Context, adminID int64, productID int64) error {
	p, err := u.findLive(ctx, productID)
	if err != nil {
		return err
	}
	if p.Status == model.ProductStatusPending {
		return NewValidationError("already pending")
	}

	before := p
	p.Status = model.ProductStatusPending

	if err := u.productRepo.UpdateVersioned(ctx, p); err != nil {
		return translateUpdateErr(err)
	}

	u.writeAudit(ctx, adminID, model.AuditActionRevertProduct, p.ID, before, p)
	u.events.Publish(ctx, "product_reverted", "product", fmt.Sprint(p.ID))
	return nil
}

// 管理者ゴミ箱へ。confirmなしでは実行しない。
func (u *ModerationUsecase) MoveToTrash(ctx context.Context, adminID int64, productID int64, confirm bool) error {
	if !confirm {
		return NewValidationError("confirmation required")
	}

	p, err := u.findLive(ctx, productID)
	if err != nil {
		return err
	}

	if err := u.productRepo.MoveToTrash(ctx, productID, model.TrashBinAdmin, u.clock.Now()); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}

	after := p
	bin := model.TrashBinAdmin
	after.TrashBin = &bin
	u.writeAudit(ctx, adminID, model.AuditActionTrashProduct, p.ID, p, after)
	u.events.Publish(ctx, "product_trashed", "product", fmt.Sprint(p.ID))
	return nil
}

// 管理者ゴミ箱から復元。pendingに戻り、却下理由は消える。
func (u *ModerationUsecase) Restore(ctx context.Context, adminID int64, productID int64) error {
	p, err := u.findInAdminTrash(ctx, productID)
	if err != nil {
		return err
	}

	if err := u.productRepo.Restore(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}

	after := p
	after.TrashBin = nil
	after.TrashedAt = nil
	after.Status = model.ProductStatusPending
	after.RejectionReason = nil
	after.RejectedAt = nil
	u.writeAudit(ctx, adminID, model.AuditActionRestoreProduct, p.ID, p, after)
	u.events.Publish(ctx, "product_restored", "product", fmt.Sprint(p.ID))
	return nil
}

// ゴミ箱からの完全削除。元に戻せない。
func (u *ModerationUsecase) PermanentDelete(ctx context.Context, adminID int64, productID int64, confirm bool) error {
	if !confirm {
		return NewValidationError("confirmation required")
	}

	p, err := u.findInAdminTrash(ctx, productID)
	if err != nil {
		return err
	}

	if err := u.productRepo.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}

	u.writeAudit(ctx, adminID, model.AuditActionPurgeProduct, p.ID, p, model.Product{})
	u.events.Publish(ctx, "product_purged", "product", fmt.Sprint(p.ID))
	return nil
}

// 掲載側にある商品だけ返す
func (u *ModerationUsecase) findLive(ctx context.Context, productID int64) (model.Product, error) {
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
	if p.IsTrashed() {
		return model.Product{}, NewNotFoundError()
	}
	return p, nil
}

func (u *ModerationUsecase) findInAdminTrash(ctx context.Context, productID int64) (model.Product, error) {
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
	if p.TrashBin == nil || *p.TrashBin != model.TrashBinAdmin {
		return model.Product{}, NewNotFoundError()
	}
	return p, nil
}

// 監査ログは本処理を失敗させない
func (u *ModerationUsecase) writeAudit(ctx context.Context, adminID int64, action model.AuditAction, productID int64, before model.Product, after model.Product) {
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   mustJSON(before),
		AfterJSON:    mustJSON(after),
		CreatedAt:    u.clock.Now(),
	})
}

// 通知も本処理を失敗させない
func (u *ModerationUsecase) notifyHerder(ctx context.Context, herderID int64, kind model.NotificationKind, productID int64, message string) {
	_ = u.notifRepo.Create(ctx, model.Notification{
		ID:      u.idGen.NewID(),
		UserID:  herderID,
		Kind:    kind,
		RefID:   fmt.Sprint(productID),
		Message: message,
	})
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
