package core

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

type Plugins interface {
	Install(*Core) error
	Name() string
	DefaultAppid() string
	Cache() Cache
	UseLimiter(key string, method string, defaultRatelimit int) Limiter
	RegisterHTTPEngine(*gin.Engine)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
}

type Limiter interface {
	Allow() bool
}

type SetupFunc func() Plugins

func (c *Core) InstallPlugins(p Plugins) {
	if err := p.Install(c); err != nil {
		panic(err)
	}
	c.Plugins = p
}
