package envutil

import (
	"testing"
	"time"
)

func TestEnvParsing(t *testing.T) {
	t.Setenv("SS_TEST_INT", "42")
	t.Setenv("SS_TEST_BAD_INT", "forty")
	t.Setenv("SS_TEST_BOOL", "yes")
	t.Setenv("SS_TEST_STR", "  graphics.txt ")
	t.Setenv("SS_TEST_SECS", "90")

	if got := Int("SS_TEST_INT", 1, nil); got != 42 {
		t.Fatalf("Int: got=%d want=42", got)
	}
	if got := Int("SS_TEST_BAD_INT", 7, nil); got != 7 {
		t.Fatalf("Int fallback: got=%d want=7", got)
	}
	if got := Int("SS_TEST_MISSING", 3, nil); got != 3 {
		t.Fatalf("Int missing: got=%d want=3", got)
	}
	if !Bool("SS_TEST_BOOL", false, nil) {
		t.Fatalf("Bool: want true")
	}
	if got := String("SS_TEST_STR", "x", nil); got != "graphics.txt" {
		t.Fatalf("String: got=%q", got)
	}
	if got := String("SS_TEST_MISSING", "x", nil); got != "x" {
		t.Fatalf("String default: got=%q", got)
	}
	if got := Seconds("SS_TEST_SECS", time.Minute, nil); got != 90*time.Second {
		t.Fatalf("Seconds: got=%s", got)
	}
}
