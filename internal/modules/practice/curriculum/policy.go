package curriculum

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/strokesheet/internal/domain/practice"
)

const policyEnv = "CURRICULUM_POLICY_YAML"

const (
	DefaultRepetitions = 3
	DefaultReviewCount = 10
)

//go:embed policy.yaml
var embeddedPolicy []byte

// Policy holds the tuning knobs of the practice curriculum.
type Policy struct {
	// Repetitions is how many identical cells each drill step emits.
	Repetitions int `yaml:"repetitions"`
	// ReviewCount is how many random blank prompts close every pass.
	ReviewCount int `yaml:"review_count"`
}

func DefaultPolicy() Policy {
	return Policy{Repetitions: DefaultRepetitions, ReviewCount: DefaultReviewCount}
}

// Validate rejects policies under which Next could spin without emitting.
func (p Policy) Validate() error {
	if p.Repetitions < 1 {
		return fmt.Errorf("%w: repetitions=%d", practice.ErrInvalidPolicy, p.Repetitions)
	}
	if p.ReviewCount < 1 {
		return fmt.Errorf("%w: review_count=%d", practice.ErrInvalidPolicy, p.ReviewCount)
	}
	return nil
}

// ParsePolicy overlays the YAML document in data on the defaults.
func ParsePolicy(data []byte) (Policy, error) {
	p := DefaultPolicy()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("%w: %v", practice.ErrInvalidPolicy, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// LoadPolicy reads the file named by CURRICULUM_POLICY_YAML, falling back to
// the embedded defaults.
func LoadPolicy() (Policy, error) {
	data := embeddedPolicy
	if path := strings.TrimSpace(os.Getenv(policyEnv)); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Policy{}, fmt.Errorf("read %s: %w", policyEnv, err)
		}
		data = raw
	}
	return ParsePolicy(data)
}
