package usecase

import "context"

// 変更イベントを購読者へ流す約束。
// プロトタイプの「数秒ごとのポーリング」をpub/subに置き換えるためのもの。
type EventPublisher interface {
	Publish(ctx context.Context, event string, resource string, refID string)
}

// 未設定のときに使う。何もしない。
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event string, resource string, refID string) {}
