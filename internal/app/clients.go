package app

import (
	"fmt"

	"github.com/yungbote/strokesheet/internal/clients/redis"
	"github.com/yungbote/strokesheet/internal/platform/gcp"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

// Clients are the optional external services. Unconfigured ones stay nil.
type Clients struct {
	SheetCache redis.SheetCache
	Bucket     gcp.BucketService
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	if cfg.RedisAddr != "" {
		c, err := redis.NewSheetCache(log, cfg.RedisAddr, cfg.SheetCacheTTL)
		if err != nil {
			return Clients{}, fmt.Errorf("init sheet cache: %w", err)
		}
		out.SheetCache = c
	}

	if cfg.Bucket.Name != "" {
		b, err := gcp.NewBucketService(log, cfg.Bucket)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init bucket client: %w", err)
		}
		out.Bucket = b
	}

	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SheetCache != nil {
		_ = c.SheetCache.Close()
	}
	if c.Bucket != nil {
		_ = c.Bucket.Close()
	}
}
