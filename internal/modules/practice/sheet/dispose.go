package sheet

import (
	"context"
	"errors"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/strokesheet/internal/platform/logger"
)

const disposeConcurrency = 8

// dispose removes paths best-effort and reports how many were removed.
// Files that are already gone count as removed.
func dispose(ctx context.Context, log *logger.Logger, paths []string) int {
	var removed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(disposeConcurrency)
	for _, p := range paths {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Warn("failed to remove artifact (ignored)", "path", p, "error", err)
				return nil
			}
			removed.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return int(removed.Load())
}
