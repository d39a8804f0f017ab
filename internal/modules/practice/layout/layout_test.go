package layout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/yungbote/strokesheet/internal/data/pronunciation"
	"github.com/yungbote/strokesheet/internal/domain/practice"
	"github.com/yungbote/strokesheet/internal/modules/practice/curriculum"
)

type fakeSource struct {
	pulled int
	failAt int
}

func (s *fakeSource) Next() (curriculum.Cell, error) {
	if s.failAt > 0 && s.pulled == s.failAt {
		return curriculum.Cell{}, errors.New("render failed")
	}
	s.pulled++
	return curriculum.Cell{Artifact: practice.CellArtifact{Ref: fmt.Sprintf("cell-%d", s.pulled)}}, nil
}

func TestRenderPageExactSlots(t *testing.T) {
	src := &fakeSource{}
	page, err := RenderPage(src, 10, []practice.Character{"你"}, nil)
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if page.Columns != 20 || page.Rows != 29 {
		t.Fatalf("grid: got %dx%d want 20x29", page.Columns, page.Rows)
	}
	if src.pulled != 580 || len(page.Placements) != 580 {
		t.Fatalf("pulled=%d placements=%d want 580", src.pulled, len(page.Placements))
	}

	seen := map[[2]int]bool{}
	for k, p := range page.Placements {
		wantX, wantY := (k%20)*10, (k/20+1)*10
		if p.X != wantX || p.Y != wantY || p.Width != 10 || p.Height != 10 {
			t.Fatalf("placement %d: got (%d,%d,%d,%d) want (%d,%d,10,10)", k, p.X, p.Y, p.Width, p.Height, wantX, wantY)
		}
		if p.Artifact.Ref != fmt.Sprintf("cell-%d", k+1) {
			t.Fatalf("placement %d references %q", k, p.Artifact.Ref)
		}
		pos := [2]int{p.X, p.Y}
		if seen[pos] {
			t.Fatalf("overlap at %v", pos)
		}
		seen[pos] = true
		if p.Y < 10 || p.X+p.Width > PageWidth || p.Y+p.Height > PageHeight {
			t.Fatalf("placement %d outside content area: %+v", k, p)
		}
	}
}

func TestNewGridInvalidSizes(t *testing.T) {
	for _, size := range []int{0, -3, 151, 200, 201} {
		if _, err := NewGrid(size); !errors.Is(err, practice.ErrInvalidSize) {
			t.Fatalf("size %d: got err=%v want ErrInvalidSize", size, err)
		}
	}
	for size, want := range map[int]Grid{
		13:  {CellSize: 13, Columns: 15, Rows: 22},
		150: {CellSize: 150, Columns: 1, Rows: 1},
		1:   {CellSize: 1, Columns: 200, Rows: 299},
	} {
		got, err := NewGrid(size)
		if err != nil || got != want {
			t.Fatalf("size %d: got %+v err=%v want %+v", size, got, err, want)
		}
	}
}

func TestRenderPageRejectsBeforePulling(t *testing.T) {
	for _, size := range []int{0, 201} {
		src := &fakeSource{}
		if _, err := RenderPage(src, size, nil, nil); !errors.Is(err, practice.ErrInvalidSize) {
			t.Fatalf("size %d: got err=%v", size, err)
		}
		if src.pulled != 0 {
			t.Fatalf("size %d: pulled %d cells before failing", size, src.pulled)
		}
	}
}

func TestRenderPageStopsOnSourceError(t *testing.T) {
	src := &fakeSource{failAt: 5}
	if _, err := RenderPage(src, 10, nil, nil); err == nil {
		t.Fatalf("expected error")
	}
	if src.pulled != 5 {
		t.Fatalf("pulled=%d want 5", src.pulled)
	}
}

func TestHeader(t *testing.T) {
	labels := pronunciation.New(map[practice.Character]string{"你": "nǐ", "好": "hǎo"})
	if got, want := Header([]practice.Character{"你", "好"}, labels), "你 (nǐ), 好 (hǎo)"; got != want {
		t.Fatalf("Header: got=%q want=%q", got, want)
	}
	if got, want := Header([]practice.Character{"们", practice.PlaceholderCharacter}, labels), "们 (), X ()"; got != want {
		t.Fatalf("Header with missing labels: got=%q want=%q", got, want)
	}
}
