package curriculum

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yungbote/strokesheet/internal/domain/practice"
)

func TestEmbeddedPolicyMatchesDefaults(t *testing.T) {
	t.Setenv(policyEnv, "")
	p, err := LoadPolicy()
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if p != DefaultPolicy() {
		t.Fatalf("embedded policy %+v differs from defaults %+v", p, DefaultPolicy())
	}
}

func TestPolicyOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("repetitions: 2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(policyEnv, path)
	p, err := LoadPolicy()
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if p.Repetitions != 2 || p.ReviewCount != DefaultReviewCount {
		t.Fatalf("unexpected policy %+v", p)
	}
}

func TestParsePolicyRejects(t *testing.T) {
	for _, in := range []string{"review_count: 0\n", "repetitions: -1\n", "repetitions: [\n"} {
		if _, err := ParsePolicy([]byte(in)); !errors.Is(err, practice.ErrInvalidPolicy) {
			t.Fatalf("%q: got err=%v", in, err)
		}
	}
}
