package sheet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/strokesheet/internal/data/pronunciation"
	"github.com/yungbote/strokesheet/internal/data/strokes"
	"github.com/yungbote/strokesheet/internal/domain/practice"
)

type fakeConverter struct {
	notReady error
	fail     error
	calls    int
}

func (f *fakeConverter) AssertReady(ctx context.Context) error { return f.notReady }

func (f *fakeConverter) ConvertSVGToPDF(ctx context.Context, svgPath, pdfPath string) error {
	f.calls++
	if f.fail != nil {
		return f.fail
	}
	if _, err := os.Stat(svgPath); err != nil {
		return err
	}
	return os.WriteFile(pdfPath, []byte("%PDF-1.4\n"), 0o644)
}

func newTestService(t *testing.T, conv *fakeConverter) (Service, string) {
	t.Helper()
	root := t.TempDir()
	s := strokes.New(map[practice.Character][]practice.Stroke{
		"你": {"M 1 1", "M 2 2", "M 3 3"},
		"好": {"M 4 4", "M 5 5"},
	})
	p := pronunciation.New(map[practice.Character]string{"你": "nǐ", "好": "hǎo"})
	deps := Deps{Strokes: s, Labels: p, WorkRoot: root}
	if conv != nil {
		deps.Converter = conv
	}
	svc, err := NewService(deps)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, root
}

func seed(v int64) *int64 { return &v }

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		out = append(out, e.Name())
	}
	return out
}

func TestParseCharacters(t *testing.T) {
	got := ParseCharacters(" 你\t好\n你 ")
	want := []practice.Character{"你", "好", "你"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ParseCharacters (-want +got):\n%s", diff)
	}
	// e + combining acute composes to a single character.
	if got := ParseCharacters("e\u0301"); len(got) != 1 || got[0] != "\u00e9" {
		t.Fatalf("NFC: got=%q", got)
	}
	if got := ParseCharacters("  "); len(got) != 0 {
		t.Fatalf("whitespace only: got=%q", got)
	}
}

func TestGenerateDisposesArtifacts(t *testing.T) {
	conv := &fakeConverter{}
	svc, root := newTestService(t, conv)

	res, err := svc.Generate(context.Background(), Request{Characters: "好", CellSize: 10, Seed: seed(1)})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if conv.calls != 1 {
		t.Fatalf("converter calls: got=%d want=1", conv.calls)
	}
	if filepath.Dir(res.Dir) != root {
		t.Fatalf("run dir %q not under %q", res.Dir, root)
	}
	if len(res.Page.Placements) != 580 {
		t.Fatalf("placements: got=%d want=580", len(res.Page.Placements))
	}
	// 2 trace + 2 recall + 1 review key.
	if len(res.Manifest) != 5 {
		t.Fatalf("manifest: got=%d want=5", len(res.Manifest))
	}
	if res.Disposed != len(res.Manifest)+1 {
		t.Fatalf("disposed: got=%d want=%d", res.Disposed, len(res.Manifest)+1)
	}
	if diff := cmp.Diff([]string{pdfFileName}, listDir(t, res.Dir)); diff != "" {
		t.Fatalf("run dir contents (-want +got):\n%s", diff)
	}
	if err := res.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(res.Dir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("run dir still present: %v", err)
	}
}

func TestGenerateKeepArtifacts(t *testing.T) {
	svc, _ := newTestService(t, &fakeConverter{})

	res, err := svc.Generate(context.Background(), Request{Characters: "你好", CellSize: 20, Seed: seed(3), KeepArtifacts: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Page.Header != "你 (nǐ), 好 (hǎo)" {
		t.Fatalf("header: got=%q", res.Page.Header)
	}
	// manifest + page + pdf
	if n := len(listDir(t, res.Dir)); n != len(res.Manifest)+2 {
		t.Fatalf("files kept: got=%d want=%d", n, len(res.Manifest)+2)
	}
	page, err := os.ReadFile(res.SVGPath)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	if len(page) == 0 {
		t.Fatalf("empty page svg")
	}
}

func TestGenerateSkipPDF(t *testing.T) {
	conv := &fakeConverter{}
	svc, _ := newTestService(t, conv)

	res, err := svc.Generate(context.Background(), Request{Characters: "好", CellSize: 50, SkipPDF: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if conv.calls != 0 {
		t.Fatalf("converter called with SkipPDF")
	}
	if res.PDFPath != "" {
		t.Fatalf("PDFPath set: %q", res.PDFPath)
	}
	if _, err := os.Stat(res.SVGPath); err != nil {
		t.Fatalf("page svg missing: %v", err)
	}
}

func TestGenerateSkipPDFWithoutConverter(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if _, err := svc.Generate(context.Background(), Request{Characters: "好", CellSize: 10, SkipPDF: true}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := svc.Generate(context.Background(), Request{Characters: "好", CellSize: 10}); err == nil {
		t.Fatalf("expected error without converter")
	}
}

func TestGenerateSeedIsDeterministic(t *testing.T) {
	svc, _ := newTestService(t, &fakeConverter{})
	refs := func() []string {
		res, err := svc.Generate(context.Background(), Request{Characters: "你好", CellSize: 10, Seed: seed(42), SkipPDF: true})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		out := make([]string, len(res.Page.Placements))
		for i, p := range res.Page.Placements {
			out[i] = filepath.Base(p.Artifact.Ref)
		}
		return out
	}
	if diff := cmp.Diff(refs(), refs()); diff != "" {
		t.Fatalf("seeded runs differ (-first +second):\n%s", diff)
	}
}

func TestGenerateRejectsBeforeRunDir(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		conv *fakeConverter
		want error
	}{
		{"unknown", Request{Characters: "好猫", CellSize: 10}, &fakeConverter{}, practice.ErrUnknownCharacter},
		{"empty", Request{Characters: " ", CellSize: 10}, &fakeConverter{}, practice.ErrEmptySyllabus},
		{"zero size", Request{Characters: "好", CellSize: 0}, &fakeConverter{}, practice.ErrInvalidSize},
		{"too wide", Request{Characters: "好", CellSize: 201}, &fakeConverter{}, practice.ErrInvalidSize},
		{"no content row", Request{Characters: "好", CellSize: 151}, &fakeConverter{}, practice.ErrInvalidSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, root := newTestService(t, tc.conv)
			_, err := svc.Generate(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err: got=%v want=%v", err, tc.want)
			}
			if n := len(listDir(t, root)); n != 0 {
				t.Fatalf("work root has %d entries", n)
			}
			if tc.conv.calls != 0 {
				t.Fatalf("converter called")
			}
		})
	}
}

func TestGenerateConversionFailureRemovesRunDir(t *testing.T) {
	conv := &fakeConverter{fail: errors.New("converter exploded")}
	svc, root := newTestService(t, conv)
	if _, err := svc.Generate(context.Background(), Request{Characters: "好", CellSize: 10}); err == nil {
		t.Fatalf("expected error")
	}
	if n := len(listDir(t, root)); n != 0 {
		t.Fatalf("work root has %d entries", n)
	}
}

func TestCacheTag(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if got := svc.CacheTag(); got != "3/10/reveal" {
		t.Fatalf("CacheTag: got=%q", got)
	}

	s := strokes.New(map[practice.Character][]practice.Stroke{"好": {"M 4 4"}})
	emph, err := NewService(Deps{Strokes: s, WorkRoot: t.TempDir(), StrokeWeight: "emphasis"})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if got := emph.CacheTag(); got != "3/10/emphasis" {
		t.Fatalf("CacheTag: got=%q", got)
	}

	if _, err := NewService(Deps{Strokes: s, StrokeWeight: "bold"}); err == nil {
		t.Fatalf("expected error for unknown stroke weight")
	}
}

func TestCanonical(t *testing.T) {
	if got := Canonical(" 你 好\n"); got != "你好" {
		t.Fatalf("Canonical: got=%q", got)
	}
}
