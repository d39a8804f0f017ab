// Package practice holds the data model shared by the practice-sheet
// pipeline: characters and their strokes, the cell requests emitted by the
// curriculum, the cache keys that identify rendered cells, and the page a run
// finally produces.
package practice

import (
	"fmt"
	"strings"
)

// Character is a single glyph. It keys both the stroke and pronunciation stores.
type Character string

// Stroke is one SVG path description. Strokes of a character are drawn in
// slice order.
type Stroke string

const (
	// PlaceholderCharacter has no strokes and an empty label. Every store
	// carries it, so a sheet for "X" renders blank prompts only.
	PlaceholderCharacter Character = "X"

	// NoUpperBound as a StopIndex shows every stroke from SkipCount on. Used
	// as both SkipCount and StopIndex it hides every stroke.
	NoUpperBound = 99
)

// CellRequest describes one cell of a practice sheet.
type CellRequest struct {
	Character Character
	// EmphasisIndex is the stroke currently being learned.
	EmphasisIndex int
	// Strokes with index < SkipCount are omitted.
	SkipCount int
	// Strokes with index >= StopIndex are omitted.
	StopIndex int
	Label     string
}

// Key returns the cache key identifying the rendered form of r. The label is
// not part of the key: it is a function of the character.
func (r CellRequest) Key() CacheKey {
	return CacheKey{
		Character:     r.Character,
		EmphasisIndex: r.EmphasisIndex,
		SkipCount:     r.SkipCount,
		StopIndex:     r.StopIndex,
	}
}

// Shows reports whether the stroke at index n is drawn in this cell.
func (r CellRequest) Shows(n int) bool {
	return n >= r.SkipCount && n < r.StopIndex
}

// CacheKey identifies a rendered cell. Rendering is a pure function of the key.
type CacheKey struct {
	Character     Character
	EmphasisIndex int
	SkipCount     int
	StopIndex     int
}

// FileName is the artifact file name for k. The glyph is spelled as code
// points so names stay ASCII on every filesystem.
func (k CacheKey) FileName() string {
	var b strings.Builder
	for i, r := range string(k.Character) {
		if i > 0 {
			b.WriteByte('_')
		}
		fmt.Fprintf(&b, "u%04x", r)
	}
	fmt.Fprintf(&b, "-%d-%d-%d.svg", k.EmphasisIndex, k.SkipCount, k.StopIndex)
	return b.String()
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s[%d:%d:%d]", k.Character, k.EmphasisIndex, k.SkipCount, k.StopIndex)
}

// CellArtifact is the realized output for a CacheKey. Ref is whatever the
// renderer hands back: a path on disk for file renderers, an opaque handle
// otherwise.
type CellArtifact struct {
	Key CacheKey
	Ref string
}

// Placement puts an artifact into a slot on the page.
type Placement struct {
	Artifact CellArtifact
	X        int
	Y        int
	Width    int
	Height   int
}

// Page is the composite layout of one practice sheet.
type Page struct {
	Width      int
	Height     int
	CellSize   int
	Columns    int
	Rows       int
	Header     string
	Placements []Placement
}
