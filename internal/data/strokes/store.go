// Package strokes loads per-character stroke outlines.
package strokes

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/yungbote/strokesheet/internal/data/jsonl"
	"github.com/yungbote/strokesheet/internal/domain/practice"
	"github.com/yungbote/strokesheet/internal/domain/records"
)

// Store maps characters to their ordered strokes. It is read-only once built.
type Store struct {
	byChar map[practice.Character][]practice.Stroke
}

// Entry is one parsed graphics.txt record.
type Entry struct {
	Character practice.Character
	Strokes   []practice.Stroke
}

type graphicsLine struct {
	Character string    `json:"character"`
	Strokes   *[]string `json:"strokes"`
}

// New builds a store from m. The placeholder character is always present
// with zero strokes, overriding any entry m has for it.
func New(m map[practice.Character][]practice.Stroke) *Store {
	byChar := make(map[practice.Character][]practice.Stroke, len(m)+1)
	for c, s := range m {
		cp := make([]practice.Stroke, len(s))
		copy(cp, s)
		byChar[c] = cp
	}
	byChar[practice.PlaceholderCharacter] = []practice.Stroke{}
	return &Store{byChar: byChar}
}

// Scan parses graphics.txt-style JSON lines and calls fn per record.
func Scan(r io.Reader, fn func(Entry) error) error {
	return jsonl.Scan(r, func(lineNo int, line []byte) error {
		e, err := ParseLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		return fn(e)
	})
}

// ParseLine parses one graphics.txt record.
func ParseLine(line []byte) (Entry, error) {
	var gl graphicsLine
	if err := json.Unmarshal(line, &gl); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", practice.ErrMalformedRecord, err)
	}
	if gl.Character == "" {
		return Entry{}, fmt.Errorf("%w: missing character", practice.ErrMalformedRecord)
	}
	if gl.Strokes == nil {
		return Entry{}, fmt.Errorf("%w: %q has no strokes field", practice.ErrMalformedRecord, gl.Character)
	}
	return Entry{Character: practice.Character(gl.Character), Strokes: toStrokes(*gl.Strokes)}, nil
}

func Load(r io.Reader) (*Store, error) {
	m := map[practice.Character][]practice.Stroke{}
	err := Scan(r, func(e Entry) error {
		m[e.Character] = e.Strokes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New(m), nil
}

func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stroke data: %w", err)
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// FromRecords builds a store from persisted character records. Records
// without stroke data are skipped.
func FromRecords(recs []*records.CharacterRecord) (*Store, error) {
	m := make(map[practice.Character][]practice.Stroke, len(recs))
	for _, rec := range recs {
		if !rec.HasStrokes() {
			continue
		}
		var raw []string
		if err := json.Unmarshal(rec.Strokes, &raw); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", practice.ErrMalformedRecord, rec.Character, err)
		}
		m[practice.Character(rec.Character)] = toStrokes(raw)
	}
	return New(m), nil
}

// Strokes returns the strokes of c. The returned slice must not be modified.
func (s *Store) Strokes(c practice.Character) ([]practice.Stroke, bool) {
	st, ok := s.byChar[c]
	return st, ok
}

func (s *Store) Has(c practice.Character) bool {
	_, ok := s.byChar[c]
	return ok
}

func (s *Store) Len() int { return len(s.byChar) }

func toStrokes(raw []string) []practice.Stroke {
	out := make([]practice.Stroke, len(raw))
	for i, p := range raw {
		out[i] = practice.Stroke(p)
	}
	return out
}
