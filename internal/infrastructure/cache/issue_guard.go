package cache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// KeyIssueLock guards invoice issuance: lock:invoice:issue:{work_order_id}
const KeyIssueLock = "lock:invoice:issue:%s"

// releaseScript deletes the lock only while it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type lockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewRedisClient creates a client with a short dial timeout. Ping before use.
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
	})
}

// ConnectRedis creates the client and pings it, so a bad address fails at startup.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := NewRedisClient(addr)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// RedisIssueGuard is a per-work-order lock shared by every API replica.
// The TTL bounds how long a crashed holder can block issuance.
// Each acquire stores a fresh token as the lock value, so a release after the TTL ran out
// cannot drop a lock another replica has taken since.
type RedisIssueGuard struct {
	rdb lockClient
	ttl time.Duration

	mu     sync.Mutex
	tokens map[string]string
}

var _ interfaces.IIssueGuard = (*RedisIssueGuard)(nil)

func NewRedisIssueGuard(rdb lockClient, ttl time.Duration) *RedisIssueGuard {
	return &RedisIssueGuard{rdb: rdb, ttl: ttl, tokens: make(map[string]string)}
}

func (g *RedisIssueGuard) Acquire(ctx context.Context, workOrderID string) (bool, error) {
	token := uuid.NewString()
	ok, err := g.rdb.SetNX(ctx, fmt.Sprintf(KeyIssueLock, workOrderID), token, g.ttl).Result()
	if err != nil {
		log.Printf("[invoice][guard] acquire failed work_order_id=%s err=%v", workOrderID, err)
		return false, err
	}
	if ok {
		g.mu.Lock()
		g.tokens[workOrderID] = token
		g.mu.Unlock()
	}
	return ok, nil
}

func (g *RedisIssueGuard) Release(ctx context.Context, workOrderID string) error {
	g.mu.Lock()
	token, held := g.tokens[workOrderID]
	delete(g.tokens, workOrderID)
	g.mu.Unlock()
	if !held {
		return nil
	}

	deleted, err := g.rdb.Eval(ctx, releaseScript, []string{fmt.Sprintf(KeyIssueLock, workOrderID)}, token).Int64()
	if err != nil {
		log.Printf("[invoice][guard] release failed work_order_id=%s err=%v", workOrderID, err)
		return err
	}
	if deleted == 0 {
		log.Printf("[invoice][guard] lock expired before release work_order_id=%s", workOrderID)
	}
	return nil
}

// LocalIssueGuard serves single-replica deployments without Redis.
type LocalIssueGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

var _ interfaces.IIssueGuard = (*LocalIssueGuard)(nil)

func NewLocalIssueGuard() *LocalIssueGuard {
	return &LocalIssueGuard{held: make(map[string]struct{})}
}

func (g *LocalIssueGuard) Acquire(_ context.Context, workOrderID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[workOrderID]; busy {
		return false, nil
	}
	g.held[workOrderID] = struct{}{}
	return true, nil
}

func (g *LocalIssueGuard) Release(_ context.Context, workOrderID string) error {
	g.mu.Lock()
	delete(g.held, workOrderID)
	g.mu.Unlock()
	return nil
}
