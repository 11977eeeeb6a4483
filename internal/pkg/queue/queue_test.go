package queue

import (
	"context"
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

func TestNewQueue(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	q := NewQueue(client, "test_queue")

	assert.NotNil(t, q)
	assert.Equal(t, "test_queue", q.queueName)
	assert.Equal(t, client, q.client)
}

func TestQueue_PushPop(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	q := NewQueue(client, "test_queue")
	ctx := context.Background()

	t.Run("push and pop single message", func(t *testing.T) {
		msg := &EmailMessage{
			Type:          EmailReceipt,
			To:            "user@example.com",
			Name:          "张三",
			PlanName:      "Pro",
			Amount:        29.99,
			TransactionID: "tx_123",
		}

		require.NoError(t, q.Push(ctx, msg))

		popped, err := q.Pop(ctx, time.Second)
		require.NoError(t, err)
		require.NotNil(t, popped)
		assert.Equal(t, EmailReceipt, popped.Type)
		assert.Equal(t, "user@example.com", popped.To)
		assert.Equal(t, "Pro", popped.PlanName)
		assert.Equal(t, 29.99, popped.Amount)
	})

	t.Run("fifo order", func(t *testing.T) {
		require.NoError(t, q.Push(ctx, &EmailMessage{Type: EmailWelcome, To: "a@example.com"}))
		require.NoError(t, q.Push(ctx, &EmailMessage{Type: EmailWelcome, To: "b@example.com"}))

		first, err := q.Pop(ctx, time.Second)
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, "a@example.com", first.To)

		second, err := q.Pop(ctx, time.Second)
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.Equal(t, "b@example.com", second.To)
	})
}

func TestQueue_Length(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	q := NewQueue(client, "test_queue")
	ctx := context.Background()

	length, err := q.Length(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), length)

	require.NoError(t, q.Push(ctx, &EmailMessage{Type: EmailWelcome, To: "a@example.com"}))
	require.NoError(t, q.Push(ctx, &EmailMessage{Type: EmailWelcome, To: "b@example.com"}))

	length, err = q.Length(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), length)
}
