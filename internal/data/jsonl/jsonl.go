// Package jsonl scans newline-delimited JSON files such as makemeahanzi's
// graphics.txt and dictionary.txt.
package jsonl

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// maxLineBytes bounds a single record. graphics.txt lines carry full stroke
// outlines plus medians and run to tens of kilobytes.
const maxLineBytes = 4 << 20

// Scan calls fn with every non-blank line of r and its 1-based line number.
// The slice passed to fn is only valid for the duration of the call.
func Scan(r io.Reader, fn func(lineNo int, line []byte) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan line %d: %w", lineNo+1, err)
	}
	return nil
}
