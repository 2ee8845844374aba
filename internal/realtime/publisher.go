package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const channelPrefix = "events:orders:"

// OrderEvent is what the kitchen/backoffice order board receives when a table
// orders, a line changes status or a payment lands.
type OrderEvent struct {
	Type      string    `json:"type"` // order_created | order_status | order_paid
	TableID   string    `json:"tableId"`
	OrderIDs  []string  `json:"orderIds,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher fans order events out through Redis pub/sub, one channel per
// company, so every API instance can serve websocket subscribers.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func Channel(companyID uuid.UUID) string {
	return channelPrefix + companyID.String()
}

// Publish is best effort: a failed publish is logged, never surfaced to the
// request that triggered it.
func (p *Publisher) Publish(ctx context.Context, companyID uuid.UUID, event OrderEvent) {
	if p == nil || p.rdb == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("realtime: marshal event")
		return
	}
	if err := p.rdb.Publish(ctx, Channel(companyID), data).Err(); err != nil {
		log.Warn().Err(err).Str("company_id", companyID.String()).Msg("realtime: publish failed")
	}
}

// Subscribe opens a Redis subscription for one company's order events.
// The caller owns the returned PubSub and must Close it.
func (p *Publisher) Subscribe(ctx context.Context, companyID uuid.UUID) *redis.PubSub {
	return p.rdb.Subscribe(ctx, Channel(companyID))
}
