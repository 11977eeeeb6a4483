package counter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	viewsKeyPrefix     = "stats:views:"           // stats:views:<day> -> 当日总浏览量
	componentKeyPrefix = "stats:component_views:" // stats:component_views:<day> -> 组件浏览 zset
	keyTTL             = 48 * time.Hour           // 快照落库后计数即无用，保留两天
)

// Counter 基于 Redis 的按天浏览计数器
type Counter struct {
	client *redis.Client
}

// ComponentScore 组件及其当日浏览次数
type ComponentScore struct {
	ComponentID int64 `json:"component_id"`
	Views       int64 `json:"views"`
}

func NewCounter(client *redis.Client) *Counter {
	return &Counter{client: client}
}

// IncrView 记录一次组件浏览
func (c *Counter) IncrView(ctx context.Context, componentID int64, day string) error {
	viewsKey := viewsKeyPrefix + day
	componentKey := componentKeyPrefix + day

	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, viewsKey)
	pipe.Expire(ctx, viewsKey, keyTTL)
	pipe.ZIncrBy(ctx, componentKey, 1, strconv.FormatInt(componentID, 10))
	pipe.Expire(ctx, componentKey, keyTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// Views 获取某天的总浏览量
func (c *Counter) Views(ctx context.Context, day string) (int64, error) {
	val, err := c.client.Get(ctx, viewsKeyPrefix+day).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get views: %w", err)
	}
	return strconv.ParseInt(val, 10, 64)
}

// TopComponents 获取某天浏览量最高的 n 个组件
func (c *Counter) TopComponents(ctx context.Context, day string, n int64) ([]ComponentScore, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, componentKeyPrefix+day, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get top components: %w", err)
	}

	scores := make([]ComponentScore, 0, len(results))
	for _, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		scores = append(scores, ComponentScore{
			ComponentID: id,
			Views:       int64(z.Score),
		})
	}
	return scores, nil
}
