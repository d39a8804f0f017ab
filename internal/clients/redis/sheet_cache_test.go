package redis

import (
	"context"
	"strings"
	"testing"

	"github.com/yungbote/strokesheet/internal/platform/logger"
)

func TestSheetKey(t *testing.T) {
	a := SheetKey("你好", 10, 42, "3/10")
	if !strings.HasPrefix(a, sheetKeyPrefix) {
		t.Fatalf("missing prefix: %s", a)
	}
	if a != SheetKey("你好", 10, 42, "3/10") {
		t.Fatalf("key not deterministic")
	}
	for _, b := range []string{
		SheetKey("你好", 11, 42, "3/10"),
		SheetKey("你好", 10, 43, "3/10"),
		SheetKey("好你", 10, 42, "3/10"),
		SheetKey("你好", 10, 42, "2/10"),
	} {
		if a == b {
			t.Fatalf("distinct inputs share key %s", a)
		}
	}
}

func TestNewSheetCacheRequiresAddr(t *testing.T) {
	if _, err := NewSheetCache(logger.NewNop(), " ", 0); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestUninitializedCache(t *testing.T) {
	var c *sheetCache
	if _, _, err := c.Get(context.Background(), "k"); err == nil {
		t.Fatalf("expected error")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
