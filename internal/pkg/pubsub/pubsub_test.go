package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestEvent_JSON(t *testing.T) {
	event := &Event{
		Type:        EventComponentView,
		UserID:      1,
		ComponentID: 42,
		Timestamp:   1717200000,
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, EventComponentView, decoded.Type)
	assert.Equal(t, int64(42), decoded.ComponentID)
	assert.Equal(t, int64(1717200000), decoded.Timestamp)
}

func TestPublishSubscribe(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	publisher := NewPublisher(client)
	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	received := make(chan *Event, 1)
	go func() {
		_ = subscriber.Subscribe(ctx, func(e *Event) {
			received <- e
		})
	}()

	// 等待订阅建立
	time.Sleep(100 * time.Millisecond)

	err := publisher.Publish(ctx, &Event{
		Type:   EventSubscriptionCreated,
		UserID: 5,
		PlanID: 2,
		Amount: 29.99,
	})
	require.NoError(t, err)

	select {
	case event := <-received:
		assert.Equal(t, EventSubscriptionCreated, event.Type)
		assert.Equal(t, int64(5), event.UserID)
		assert.Equal(t, 29.99, event.Amount)
		assert.NotZero(t, event.Timestamp) // Publish 自动填充
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscribe_ContextCancel(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	subscriber := NewSubscriber(client)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- subscriber.Subscribe(ctx, func(*Event) {})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop after context cancel")
	}
}
