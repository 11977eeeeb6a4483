package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelDashboardEvents = "dashboard_events"
)

// 事件类型
const (
	EventComponentView       = "component_view"
	EventSubscriptionCreated = "subscription_created"
	EventSubscriptionExpired = "subscription_expired"
	EventPaymentReceived     = "payment_received"
)

// Event 推送给管理后台的事件
type Event struct {
	Type        string  `json:"type"`
	UserID      int64   `json:"user_id,omitempty"`
	ComponentID int64   `json:"component_id,omitempty"`
	PlanID      int64   `json:"plan_id,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	Timestamp   int64   `json:"timestamp"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish 发布后台事件
func (p *Publisher) Publish(ctx context.Context, event *Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.client.Publish(ctx, ChannelDashboardEvents, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅后台事件
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*Event)) error {
	pubsub := s.client.Subscribe(ctx, ChannelDashboardEvents)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue // 忽略解析错误
			}

			handler(&event)
		}
	}
}
