package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) error
	//未読のみ、新しい順
	ListUnseenByUser(ctx context.Context, userID int64) ([]model.Notification, error)
	//本人の通知だけ既読にできる
	MarkSeen(ctx context.Context, notificationID string, userID int64, at time.Time) error
}
