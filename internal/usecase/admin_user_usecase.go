package usecase

import (
	"context"
	"encoding/json"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理者によるユーザー管理。
type AdminUserUsecase struct {
	userRepo  repo.UserRepository
	auditRepo repo.AuditLogRepository
	clock     Clock
}

// DI
func NewAdminUserUsecase(
	userRepo repo.UserRepository,
	auditRepo repo.AuditLogRepository,
	clock Clock,
) *AdminUserUsecase {
	return &AdminUserUsecase{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		clock:     clock,
	}
}

func (u *AdminUserUsecase) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.List(ctx)
	if err != nil {
		return nil, NewInternalError("db error")
	}
	return users, nil
}

// 停止。token_versionも上げて発行済みトークンを無効にする。
func (u *AdminUserUsecase) DeactivateUser(ctx context.Context, adminID int64, targetUserID int64) error {
	if targetUserID <= 0 {
		return NewValidationError("invalid user id")
	}
	//自分自身は止められない
	if targetUserID == adminID {
		return NewValidationError("cannot deactivate yourself")
	}

	user, err := u.userRepo.FindByID(ctx, targetUserID)
	if err == repo.ErrUserNotFound {
		return NewNotFoundError()
	}
	if err != nil {
		return NewInternalError("db error")
	}
	if !user.IsActive {
		return NewValidationError("already inactive")
	}

	before := *user
	user.IsActive = false
	if err := u.userRepo.Update(ctx, user); err != nil {
		return NewInternalError("db error")
	}
	if err := u.userRepo.IncrementTokenVersion(ctx, targetUserID); err != nil {
		return NewInternalError("db error")
	}

	beforeJSON, _ := json.Marshal(before)
	afterJSON, _ := json.Marshal(user)
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminID,
		Action:       model.AuditActionDeactivateUser,
		ResourceType: model.AuditResourceUser,
		ResourceID:   targetUserID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    u.clock.Now(),
	})
	return nil
}

// 監査ログの閲覧（管理者のみ）
func (u *AdminUserUsecase) ListAuditLogs(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewInternalError("db error")
	}
	return logs, nil
}
