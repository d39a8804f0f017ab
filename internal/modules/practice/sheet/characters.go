package sheet

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/yungbote/strokesheet/internal/domain/practice"
)

// ParseCharacters splits user input into target characters. Input is NFC
// normalized so decomposed forms match the stroke data; whitespace is
// dropped; order and duplicates are kept.
func ParseCharacters(s string) []practice.Character {
	s = norm.NFC.String(s)
	out := make([]practice.Character, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		out = append(out, practice.Character(string(r)))
	}
	return out
}

// Canonical returns the normalized form of s that ParseCharacters reads,
// with whitespace removed.
func Canonical(s string) string {
	return joinCharacters(ParseCharacters(s))
}

func joinCharacters(chars []practice.Character) string {
	n := 0
	for _, c := range chars {
		n += len(c)
	}
	b := make([]byte, 0, n)
	for _, c := range chars {
		b = append(b, c...)
	}
	return string(b)
}
