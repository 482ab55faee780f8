package usecase

import (
	"context"
	"fmt"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 商品画像（data URI）の上限
const maxImageBytes = 2 << 20

// 牧夫の出品管理。
type HerderProductUsecase struct {
	productRepo repo.ProductRepository
	userRepo    repo.UserRepository
	clock       Clock
	events      EventPublisher
}

// DI
func NewHerderProductUsecase(
	productRepo repo.ProductRepository,
	userRepo repo.UserRepository,
	clock Clock,
	events EventPublisher,
) *HerderProductUsecase {
	return &HerderProductUsecase{
		productRepo: productRepo,
		userRepo:    userRepo,
		clock:       clock,
		events:      events,
	}
}

type SubmitProductInput struct {
	ProductType string
	Animal      string
	Price       int64
	Desc        string
	Image       string
}

type EditProductInput struct {
	Price int64
	Desc  string
	Image string
}

// 出品。status=pendingで管理者の審査待ちになる。
func (u *HerderProductUsecase) Submit(ctx context.Context, herderID int64, in SubmitProductInput) (model.Product, error) {
	if herderID <= 0 {
		return model.Product{}, NewUnauthorizedError()
	}
	if strings.TrimSpace(in.ProductType) == "" {
		return model.Product{}, NewValidationError("product_type required")
	}
	if in.Price <= 0 {
		return model.Product{}, NewValidationError("price required")
	}
	if strings.TrimSpace(in.Desc) == "" {
		return model.Product{}, NewValidationError("desc required")
	}
	if in.Image == "" {
		return model.Product{}, NewValidationError("image required")
	}
	if len(in.Image) > maxImageBytes {
		return model.Product{}, NewCapacityError("image too large")
	}

	herder, err := u.userRepo.FindByID(ctx, herderID)
	if err == repo.ErrUserNotFound {
		return model.Product{}, NewUnauthorizedError()
	}
	if err != nil {
		return model.Product{}, NewInternalError("db error")
	}

	name := herder.FullName
	if name == "" {
		name = herder.Email
	}

	productType := strings.TrimSpace(in.ProductType)
	animal := strings.TrimSpace(in.Animal)
	title := productType
	if animal != "" {
		title = fmt.Sprintf("%s - %s", animal, productType)
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		HerderID:    herderID,
		HerderName:  name,
		HerderEmail: herder.Email,
		Title:       title,
		ProductType: productType,
		Animal:      animal,
		Category:    model.DetectCategory(productType, title),
		Price:       in.Price,
		Desc:        strings.TrimSpace(in.Desc),
		Image:       in.Image,
		Status:      model.ProductStatusPending,
	})
	if err != nil {
		return model.Product{}, NewInternalError("db error")
	}

	u.events.Publish(ctx, "product_submitted", "product", fmt.Sprint(p.ID))
	return p, nil
}

// 自分の出品一覧。view=activeで掲載側、trashでゴミ箱側。
func (u *HerderProductUsecase) ListMine(ctx context.Context, herderID int64, view string) ([]model.Product, error) {
	if herderID <= 0 {
		return nil, NewUnauthorizedError()
	}

	switch view {
	case "", "active":
		items, err := u.productRepo.ListByHerder(ctx, herderID)
		if err != nil {
			return nil, NewInternalError("db error")
		}
		return items, nil
	case "trash":
		items, err := u.productRepo.ListTrash(ctx, model.TrashBinHerder, &herderID)
		if err != nil {
			return nil, NewInternalError("db error")
		}
		return items, nil
	default:
		return nil, NewValidationError("invalid view")
	}
}

// 編集して再申請。必ずpendingに戻り、却下理由はクリアされる。
func (u *HerderProductUsecase) EditAndResubmit(ctx context.Context, herderID int64, productID int64, in EditProductInput) error {
	if herderID <= 0 {
		return NewUnauthorizedError()
	}
	if in.Price <= 0 {
		return NewValidationError("price required")
	}
	if strings.TrimSpace(in.Desc) == "" {
		return NewValidationError("desc required")
	}
	if in.Image == "" {
		return NewValidationError("image required")
	}
	if len(in.Image) > maxImageBytes {
		return NewCapacityError("image too large")
	}

	p, err := u.findOwned(ctx, herderID, productID)
	if err != nil {
		return err
	}
	if p.IsTrashed() {
		return NewNotFoundError()
	}

	p.Price = in.Price
	p.Desc = strings.TrimSpace(in.Desc)
	p.Image = in.Image
	p.Status = model.ProductStatusPending
	p.RejectionReason = nil
	p.RejectedAt = nil

	if err := u.productRepo.UpdateVersioned(ctx, p); err != nil {
		return translateUpdateErr(err)
	}

	u.events.Publish(ctx, "product_resubmitted", "product", fmt.Sprint(p.ID))
	return nil
}

// 自分のゴミ箱へ移す。confirmなしでは実行しない。
func (u *HerderProductUsecase) MoveToTrash(ctx context.Context, herderID int64, productID int64, confirm bool) error {
	if herderID <= 0 {
		return NewUnauthorizedError()
	}
	if !confirm {
		return NewValidationError("confirmation required")
	}

	p, err := u.findOwned(ctx, herderID, productID)
	if err != nil {
		return err
	}
	if p.IsTrashed() {
		return NewNotFoundError()
	}

	if err := u.productRepo.MoveToTrash(ctx, productID, model.TrashBinHerder, u.clock.Now()); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}

	u.events.Publish(ctx, "product_trashed", "product", fmt.Sprint(productID))
	return nil
}

// ゴミ箱から復元。pendingに戻り、却下理由は消える。
func (u *HerderProductUsecase) Restore(ctx context.Context, herderID int64, productID int64) error {
	if herderID <= 0 {
		return NewUnauthorizedError()
	}

	p, err := u.findOwned(ctx, herderID, productID)
	if err != nil {
		return err
	}
	if p.TrashBin == nil || *p.TrashBin != model.TrashBinHerder {
		return NewNotFoundError()
	}

	if err := u.productRepo.Restore(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}

	u.events.Publish(ctx, "product_restored", "product", fmt.Sprint(productID))
	return nil
}

// ゴミ箱からの完全削除。元に戻せない。
func (u *HerderProductUsecase) PermanentDelete(ctx context.Context, herderID int64, productID int64, confirm bool) error {
	if herderID <= 0 {
		return NewUnauthorizedError()
	}
	if !confirm {
		return NewValidationError("confirmation required")
	}

	p, err := u.findOwned(ctx, herderID, productID)
	if err != nil {
		return err
	}
	if p.TrashBin == nil || *p.TrashBin != model.TrashBinHerder {
		return NewNotFoundError()
	}

	if err := u.productRepo.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}

	u.events.Publish(ctx, "product_purged", "product", fmt.Sprint(productID))
	return nil
}

// 他人の商品は「存在しない扱い」にする
func (u *HerderProductUsecase) findOwned(ctx context.Context, herderID int64, productID int64) (model.Product, error) {
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
	if p.HerderID != herderID {
		return model.Product{}, NewNotFoundError()
	}
	return p, nil
}

func translateUpdateErr(err error) error {
	switch err {
	case repo.ErrNotFound:
		return NewNotFoundError()
	case repo.ErrConflict:
		return NewConflictError("product was modified concurrently")
	default:
		return NewInternalError("db error")
	}
}
