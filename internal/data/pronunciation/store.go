// Package pronunciation loads the display label shown on every cell of a
// character.
package pronunciation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/yungbote/strokesheet/internal/data/jsonl"
	"github.com/yungbote/strokesheet/internal/domain/practice"
	"github.com/yungbote/strokesheet/internal/domain/records"
)

type Store struct {
	labels map[practice.Character]string
}

// Entry is one parsed dictionary.txt record. Label is the first pinyin
// reading, or empty when the record lists none.
type Entry struct {
	Character practice.Character
	Label     string
}

type dictionaryLine struct {
	Character string   `json:"character"`
	Pinyin    []string `json:"pinyin"`
}

func New(m map[practice.Character]string) *Store {
	labels := make(map[practice.Character]string, len(m)+1)
	for c, l := range m {
		labels[c] = l
	}
	labels[practice.PlaceholderCharacter] = ""
	return &Store{labels: labels}
}

func Scan(r io.Reader, fn func(Entry) error) error {
	return jsonl.Scan(r, func(lineNo int, line []byte) error {
		e, err := ParseLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		return fn(e)
	})
}

func ParseLine(line []byte) (Entry, error) {
	var dl dictionaryLine
	if err := json.Unmarshal(line, &dl); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", practice.ErrMalformedRecord, err)
	}
	if dl.Character == "" {
		return Entry{}, fmt.Errorf("%w: missing character", practice.ErrMalformedRecord)
	}
	e := Entry{Character: practice.Character(dl.Character)}
	if len(dl.Pinyin) > 0 {
		e.Label = dl.Pinyin[0]
	}
	return e, nil
}

func Load(r io.Reader) (*Store, error) {
	m := map[practice.Character]string{}
	err := Scan(r, func(e Entry) error {
		if e.Label != "" {
			m[e.Character] = e.Label
		}
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
		return nil, fmt.Errorf("open pronunciation data: %w", err)
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

func FromRecords(recs []*records.CharacterRecord) *Store {
	m := make(map[practice.Character]string, len(recs))
	for _, rec := range recs {
		if rec == nil || rec.Pinyin == "" {
			continue
		}
		m[practice.Character(rec.Character)] = rec.Pinyin
	}
	return New(m)
}

// Label returns the pronunciation of c, or "" when none is recorded.
func (s *Store) Label(c practice.Character) string {
	if s == nil {
		return ""
	}
	return s.labels[c]
}

func (s *Store) Lookup(c practice.Character) (string, bool) {
	if s == nil {
		return "", false
	}
	l, ok := s.labels[c]
	return l, ok
}
