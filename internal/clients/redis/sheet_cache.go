package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/strokesheet/internal/platform/logger"
)

const sheetKeyPrefix = "strokesheet:pdf:"

// SheetCache stores finished PDFs of seeded runs. A seeded run is a pure
// function of (characters, cell size, seed, policy), so its output can be
// served again without rendering.
type SheetCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, pdf []byte) error
	Close() error
}

type sheetCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSheetCache(log *logger.Logger, addr string, ttl time.Duration) (SheetCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &sheetCache{
		log: log.With("service", "RedisSheetCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

// SheetKey derives the cache key of a seeded run.
func SheetKey(chars string, cellSize int, seed int64, policy string) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d\x00%d\x00%s", chars, cellSize, seed, policy)))
	return sheetKeyPrefix + hex.EncodeToString(h[:])
}

func (c *sheetCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, fmt.Errorf("redis sheet cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c *sheetCache) Set(ctx context.Context, key string, pdf []byte) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis sheet cache not initialized")
	}
	if err := c.rdb.Set(ctx, key, pdf, c.ttl).Err(); err != nil {
		return err
	}
	c.log.Debug("cached sheet", "key", key, "bytes", len(pdf))
	return nil
}

func (c *sheetCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
