// Package redis keeps the lifecycle's shared counters and event fan-out in
// Redis: order numbers come from an INCR counter and applied transitions are
// published on a pub/sub channel.
package redis

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/salesorder"

	goredis "github.com/redis/go-redis/v9"
)

const DefaultNumberKey = "marketplace:sales_order:number"

// Numberer allocates sales order numbers from an INCR counter. The counter
// survives restarts as long as Redis persists it; a conversion that rolls
// back after allocating leaves a gap.
type Numberer struct {
	rdb *goredis.Client
	key string
}

func NewNumberer(rdb *goredis.Client, key string) *Numberer {
	if key == "" {
		key = DefaultNumberKey
	}
	return &Numberer{rdb: rdb, key: key}
}

func (n *Numberer) Next(ctx context.Context) (string, error) {
	next, err := n.rdb.Incr(ctx, n.key).Result()
	if err != nil {
		return "", fmt.Errorf("allocate order number: %w", err)
	}
	return salesorder.FormatNumber(next), nil
}

// SeedAtLeast raises the counter to floor when it is below it, so switching
// from database numbering never reissues a number.
func (n *Numberer) SeedAtLeast(ctx context.Context, floor int64) error {
	current, err := n.rdb.Get(ctx, n.key).Int64()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return err
	}
	if current >= floor {
		return nil
	}
	return n.rdb.IncrBy(ctx, n.key, floor-current).Err()
}
