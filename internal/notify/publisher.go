package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// 変更イベントを流すチャンネル。クライアントはここを購読して
// ポーリングなしで画面を更新する。
const Channel = "market_events"

type event struct {
	Event    string `json:"event"`
	Resource string `json:"resource"`
	RefID    string `json:"ref_id"`
	At       int64  `json:"at"`
}

// RedisPublisherはRedis pub/subへイベントを流す。
// 配信失敗は記録するだけで、本処理は失敗させない。
type RedisPublisher struct {
	client *redis.Client
	log    zerolog.Logger
}

// DI
func NewRedisPublisher(client *redis.Client, log zerolog.Logger) *RedisPublisher {
	return &RedisPublisher{client: client, log: log}
}

func (p *RedisPublisher) Publish(ctx context.Context, eventName string, resource string, refID string) {
	if p == nil || p.client == nil {
		return
	}

	payload, err := json.Marshal(event{
		Event:    eventName,
		Resource: resource,
		RefID:    refID,
		At:       time.Now().Unix(),
	})
	if err != nil {
		return
	}

	if err := p.client.Publish(ctx, Channel, payload).Err(); err != nil {
		p.log.Warn().Err(err).Str("event", eventName).Msg("publish failed")
	}
}
