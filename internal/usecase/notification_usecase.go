package usecase

import (
	"context"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type NotificationUsecase struct {
	notifRepo repo.NotificationRepository
	clock     Clock
}

// DI
func NewNotificationUsecase(notifRepo repo.NotificationRepository, clock Clock) *NotificationUsecase {
	return &NotificationUsecase{notifRepo: notifRepo, clock: clock}
}

// 未読の通知。新しい順。
func (u *NotificationUsecase) ListUnseen(ctx context.Context, userID int64) ([]model.Notification, error) {
	if userID <= 0 {
		return nil, NewUnauthorizedError()
	}

	items, err := u.notifRepo.ListUnseenByUser(ctx, userID)
	if err != nil {
		return nil, NewInternalError("db error")
	}
	return items, nil
}

// 既読にする。本人の通知以外は存在しない扱い。
func (u *NotificationUsecase) MarkSeen(ctx context.Context, userID int64, notificationID string) error {
	if userID <= 0 {
		return NewUnauthorizedError()
	}
	if strings.TrimSpace(notificationID) == "" {
		return NewValidationError("notification id required")
	}

	if err := u.notifRepo.MarkSeen(ctx, notificationID, userID, u.clock.Now()); err != nil {
		if err == repo.ErrNotFound {
			return NewNotFoundError()
		}
		return NewInternalError("db error")
	}
	return nil
}
