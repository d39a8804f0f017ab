package logger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeKVs(t *testing.T) {
	in := []interface{}{"db_dsn", "postgres://u:p@h/db", "cell_size", 10, "run_id", "abc", "dangling"}
	want := []interface{}{"db_dsn", "[REDACTED]", "cell_size", 10, "run_id", "abc", "dangling"}
	if diff := cmp.Diff(want, sanitizeKVs(in)); diff != "" {
		t.Fatalf("sanitizeKVs mismatch (-want +got):\n%s", diff)
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	if got := levelFromEnv().String(); got != "warn" {
		t.Fatalf("level: got=%q want=%q", got, "warn")
	}
	t.Setenv("LOG_LEVEL", "nonsense")
	if got := levelFromEnv().String(); got != "debug" {
		t.Fatalf("fallback level: got=%q want=%q", got, "debug")
	}
}

func TestNopLoggerWith(t *testing.T) {
	l := NewNop().With("service", "Test")
	l.Info("hello", "k", "v")
	l.Sync()
}
