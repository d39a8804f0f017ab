package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/strokesheet/internal/domain/practice"
)

var sample = []practice.Stroke{"M 0 0 L 1 1", "M 2 2 L 3 3", "M 4 4 L 5 5"}

func TestWriteCellFiltersStrokes(t *testing.T) {
	cases := []struct {
		name string
		req  practice.CellRequest
		want []string
		skip []string
	}{
		{
			name: "trace",
			req:  practice.CellRequest{EmphasisIndex: 1, SkipCount: 0, StopIndex: 2},
			want: []string{`d="M 0 0 L 1 1" stroke="black" stroke-width="20"`, `d="M 2 2 L 3 3" stroke="black" stroke-width="20"`},
			skip: []string{"M 4 4"},
		},
		{
			name: "recall",
			req:  practice.CellRequest{EmphasisIndex: 0, SkipCount: 1, StopIndex: practice.NoUpperBound},
			want: []string{`d="M 2 2 L 3 3" stroke="black" stroke-width="10"`, `d="M 4 4 L 5 5" stroke="black" stroke-width="10"`},
			skip: []string{"M 0 0"},
		},
		{
			name: "blank",
			req:  practice.CellRequest{SkipCount: practice.NoUpperBound, StopIndex: practice.NoUpperBound, Label: "nǐ"},
			want: []string{`font-size="150px">nǐ</text>`},
			skip: []string{"<path"},
		},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := WriteCell(&buf, tc.req, sample, nil); err != nil {
			t.Fatalf("%s: WriteCell: %v", tc.name, err)
		}
		out := buf.String()
		for _, w := range tc.want {
			if !strings.Contains(out, w) {
				t.Fatalf("%s: output lacks %q:\n%s", tc.name, w, out)
			}
		}
		for _, s := range tc.skip {
			if strings.Contains(out, s) {
				t.Fatalf("%s: output unexpectedly contains %q", tc.name, s)
			}
		}
		if !strings.HasSuffix(out, "</svg>\n") {
			t.Fatalf("%s: unterminated svg", tc.name)
		}
	}
}

func TestWeights(t *testing.T) {
	if RevealWeight(0, 2) != HeavyWeight || RevealWeight(2, 2) != HeavyWeight || RevealWeight(3, 2) != LightWeight {
		t.Fatalf("RevealWeight mismatch")
	}
	if EmphasisWeight(1, 2) != LightWeight || EmphasisWeight(2, 2) != HeavyWeight {
		t.Fatalf("EmphasisWeight mismatch")
	}
}

func TestWriteCellEscapesLabel(t *testing.T) {
	var buf bytes.Buffer
	req := practice.CellRequest{SkipCount: practice.NoUpperBound, StopIndex: practice.NoUpperBound, Label: "<b>&"}
	if err := WriteCell(&buf, req, nil, nil); err != nil {
		t.Fatalf("WriteCell: %v", err)
	}
	if !strings.Contains(buf.String(), "&lt;b&gt;&amp;") {
		t.Fatalf("label not escaped:\n%s", buf.String())
	}
}

func TestWritePage(t *testing.T) {
	page := &practice.Page{
		Width: 200, Height: 300, CellSize: 10,
		Header: "你 (nǐ), 好 (hǎo)",
		Placements: []practice.Placement{
			{Artifact: practice.CellArtifact{Ref: "/tmp/run/u4f60-0-0-1.svg"}, X: 0, Y: 10, Width: 10, Height: 10},
			{Artifact: practice.CellArtifact{Ref: "/tmp/run/u4f60-0-1-99.svg"}, X: 10, Y: 10, Width: 10, Height: 10},
		},
	}
	var buf bytes.Buffer
	if err := WritePage(&buf, page, RelativeHref); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	out := buf.String()
	for _, w := range []string{
		`viewBox="0 0 200 300"`,
		`<text x="0" y="7" font-size="5px">你 (nǐ), 好 (hǎo)</text>`,
		`<image x="0" y="10" width="10" height="10" xlink:href="u4f60-0-0-1.svg" />`,
		`<image x="10" y="10" width="10" height="10" xlink:href="u4f60-0-1-99.svg" />`,
	} {
		if !strings.Contains(out, w) {
			t.Fatalf("page lacks %q:\n%s", w, out)
		}
	}
	if err := WritePage(&buf, nil, nil); err == nil {
		t.Fatalf("nil page should fail")
	}
}

func TestFileRenderer(t *testing.T) {
	dir := t.TempDir()
	r := NewFileRenderer(dir, EmphasisWeight)
	req := practice.CellRequest{Character: "你", EmphasisIndex: 1, SkipCount: 0, StopIndex: 2, Label: "nǐ"}
	a, err := r.RenderCell(req, sample)
	if err != nil {
		t.Fatalf("RenderCell: %v", err)
	}
	if a.Ref != filepath.Join(dir, "u4f60-1-0-2.svg") || a.Key != req.Key() {
		t.Fatalf("unexpected artifact %+v", a)
	}
	raw, err := os.ReadFile(a.Ref)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), `d="M 2 2 L 3 3" stroke="black" stroke-width="20"`) ||
		!strings.Contains(string(raw), `d="M 0 0 L 1 1" stroke="black" stroke-width="10"`) {
		t.Fatalf("weights not applied:\n%s", raw)
	}

	bad := NewFileRenderer(filepath.Join(dir, "missing"), nil)
	if _, err := bad.RenderCell(req, sample); err == nil {
		t.Fatalf("expected write error for missing dir")
	}
}

func TestWeightByName(t *testing.T) {
	// Stroke 0 of a cell emphasizing stroke 2.
	for _, tc := range []struct {
		name string
		want int
	}{
		{"", HeavyWeight},
		{"reveal", HeavyWeight},
		{" Emphasis ", LightWeight},
	} {
		w, err := WeightByName(tc.name)
		if err != nil {
			t.Fatalf("WeightByName(%q): %v", tc.name, err)
		}
		if got := w(0, 2); got != tc.want {
			t.Fatalf("WeightByName(%q)(0, 2): got=%d want=%d", tc.name, got, tc.want)
		}
	}
	if _, err := WeightByName("bold"); err == nil {
		t.Fatalf("expected error for unknown weight")
	}
}
