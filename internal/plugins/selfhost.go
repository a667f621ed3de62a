package plugins

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/ripplelabs/ripple-api/internal/core"
	"github.com/ripplelabs/ripple-api/pkg/utils"
)

var _ core.Plugins = (*SelfHostPlugin)(nil)

func newSelfHostMode() *SelfHostPlugin {
	return &SelfHostPlugin{
		Appid: "ripple-selfhost",
	}
}

type SelfHostPlugin struct {
	core  *core.Core
	Appid string
	cache core.Cache
}

func (s *SelfHostPlugin) Name() string {
	return "selfhost"
}

func (s *SelfHostPlugin) DefaultAppid() string {
	return s.Appid
}

func (s *SelfHostPlugin) Install(c *core.Core) error {
	s.core = c
	fmt.Println("Start initialize.")
	utils.SetupIDWorker(1)

	if addr := c.Cfg().Redis.Addr; addr != "" {
		s.cache = &redisCache{
			client: redis.NewClient(&redis.Options{
				Addr:     addr,
				Password: c.Cfg().Redis.Password,
				DB:       c.Cfg().Redis.DB,
			}),
		}
	} else {
		s.cache = newMemoryCache()
	}

	return nil
}

func (s *SelfHostPlugin) Cache() core.Cache {
	return s.cache
}

func (s *SelfHostPlugin) RegisterHTTPEngine(e *gin.Engine) {
}

type redisCache struct {
	client *redis.Client
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	res, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return res, err
}

func (c *redisCache) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.SetEx(ctx, key, value, ttl).Err()
}

type memoryCacheItem struct {
	value    string
	expireAt time.Time
}

// memoryCache keeps the selfhost mode runnable without a redis instance.
type memoryCache struct {
	mu    sync.Mutex
	items map[string]memoryCacheItem
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		items: make(map[string]memoryCacheItem),
	}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	if !ok || time.Now().After(item.expireAt) {
		delete(c.items, key)
		return "", nil
	}
	return item.value, nil
}

func (c *memoryCache) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = memoryCacheItem{
		value:    value,
		expireAt: time.Now().Add(ttl),
	}
	return nil
}

var (
	limiterMu sync.Mutex
	limiter   = make(map[string]*rate.Limiter)
)

// ratelimit 代表每分钟允许的数量
func (s *SelfHostPlugin) UseLimiter(key string, method string, defaultRatelimit int) core.Limiter {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	l, exist := limiter[key]
	if !exist {
		limit := rate.Every(time.Minute / time.Duration(defaultRatelimit))
		limiter[key] = rate.NewLimiter(limit, defaultRatelimit*2)
		l = limiter[key]
	}

	return l
}
