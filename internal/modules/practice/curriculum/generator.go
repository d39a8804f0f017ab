// Package curriculum decides which partial character a practice sheet shows
// next.
//
// For every target character, stroke by stroke, the learner first traces
// strokes 0..i with stroke i emphasized, then sees only the strokes after i.
// Each of those steps is repeated Policy.Repetitions times. A pass over all
// characters ends with Policy.ReviewCount blank prompts for characters
// picked at random, after which the pass starts again. The sequence never
// ends; consumers stop pulling when they have enough.
package curriculum

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/yungbote/strokesheet/internal/domain/practice"
)

type StrokeSource interface {
	Strokes(c practice.Character) ([]practice.Stroke, bool)
}

type LabelSource interface {
	Label(c practice.Character) string
}

type phase int

const (
	phaseTrace phase = iota
	phaseRecall
	phaseReview
)

func (p phase) String() string {
	switch p {
	case phaseTrace:
		return "trace"
	case phaseRecall:
		return "recall"
	case phaseReview:
		return "review"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type Generator struct {
	chars   []practice.Character
	counts  []int
	strokes map[practice.Character][]practice.Stroke
	labels  map[practice.Character]string
	policy  Policy
	rng     *rand.Rand

	charIdx   int
	strokeIdx int
	rep       int
	phase     phase
	pass      int
}

type Option func(*Generator)

func WithPolicy(p Policy) Option {
	return func(g *Generator) { g.policy = p }
}

// WithSeed makes the random review prompts reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewSource(seed)) }
}

func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// New resolves every target character up front so that a missing one fails
// before any cell is produced. A character missing from labels gets an
// empty label.
func New(chars []practice.Character, strokes StrokeSource, labels LabelSource, opts ...Option) (*Generator, error) {
	if len(chars) == 0 {
		return nil, practice.ErrEmptySyllabus
	}
	g := &Generator{
		chars:   append([]practice.Character(nil), chars...),
		counts:  make([]int, len(chars)),
		strokes: make(map[practice.Character][]practice.Stroke, len(chars)),
		labels:  make(map[practice.Character]string, len(chars)),
		policy:  DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.policy.Validate(); err != nil {
		return nil, err
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	for i, c := range g.chars {
		s, ok := strokes.Strokes(c)
		if !ok {
			return nil, fmt.Errorf("%w: %q", practice.ErrUnknownCharacter, string(c))
		}
		g.strokes[c] = s
		g.counts[i] = len(s)
		if labels != nil {
			g.labels[c] = labels.Label(c)
		}
	}
	return g, nil
}

// Next returns the next cell request. It always returns.
func (g *Generator) Next() practice.CellRequest {
	for {
		switch g.phase {
		case phaseTrace:
			if g.charIdx >= len(g.chars) {
				g.phase, g.rep = phaseReview, 0
				continue
			}
			if g.strokeIdx >= g.counts[g.charIdx] {
				g.charIdx++
				g.strokeIdx, g.rep = 0, 0
				continue
			}
			if g.rep < g.policy.Repetitions {
				g.rep++
				return g.request(g.chars[g.charIdx], g.strokeIdx, 0, g.strokeIdx+1)
			}
			g.phase, g.rep = phaseRecall, 0
		case phaseRecall:
			if g.rep < g.policy.Repetitions {
				g.rep++
				return g.request(g.chars[g.charIdx], 0, g.strokeIdx+1, practice.NoUpperBound)
			}
			g.phase, g.rep = phaseTrace, 0
			g.strokeIdx++
		case phaseReview:
			if g.rep < g.policy.ReviewCount {
				g.rep++
				c := g.chars[g.rng.Intn(len(g.chars))]
				return g.request(c, 0, practice.NoUpperBound, practice.NoUpperBound)
			}
			g.phase, g.rep = phaseTrace, 0
			g.charIdx, g.strokeIdx = 0, 0
			g.pass++
		}
	}
}

func (g *Generator) request(c practice.Character, emphasis, skip, stop int) practice.CellRequest {
	return practice.CellRequest{
		Character:     c,
		EmphasisIndex: emphasis,
		SkipCount:     skip,
		StopIndex:     stop,
		Label:         g.labels[c],
	}
}

// Pass is the number of completed passes, review included.
func (g *Generator) Pass() int { return g.pass }

// CycleLength is the number of requests in one full pass.
func (g *Generator) CycleLength() int {
	n := 0
	for _, c := range g.counts {
		n += c
	}
	return 2*g.policy.Repetitions*n + g.policy.ReviewCount
}

func (g *Generator) Characters() []practice.Character {
	return append([]practice.Character(nil), g.chars...)
}

// Strokes returns the strokes of a target character.
func (g *Generator) Strokes(c practice.Character) []practice.Stroke {
	return g.strokes[c]
}

// Label returns the label of a target character.
func (g *Generator) Label(c practice.Character) string {
	return g.labels[c]
}

func (g *Generator) Policy() Policy { return g.policy }
