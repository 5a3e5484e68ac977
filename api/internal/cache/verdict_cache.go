package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"truthguard-bot/api/internal/truthguard"
)

const verdictPrefix = "truthguard:verdict:"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// VerdictCache is a short-lived cache of validated verdicts keyed by content
// hash. Misses are silent; a cache problem must never fail an analysis.
type VerdictCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *VerdictCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &VerdictCache{rdb: rdb, ttl: ttl}
}

func (c *VerdictCache) Get(ctx context.Context, contentHash string) (*truthguard.VerdictResponse, bool) {
	raw, err := c.rdb.Get(ctx, verdictPrefix+contentHash).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %s: %v", contentHash, err)
		}
		return nil, false
	}
	var vr truthguard.VerdictResponse
	if err := json.Unmarshal(raw, &vr); err != nil {
		return nil, false
	}
	return &vr, true
}

func (c *VerdictCache) Put(ctx context.Context, contentHash string, vr *truthguard.VerdictResponse) {
	raw, _ := json.Marshal(vr)
	if err := c.rdb.Set(ctx, verdictPrefix+contentHash, raw, c.ttl).Err(); err != nil {
		log.Printf("cache: put %s: %v", contentHash, err)
	}
}
