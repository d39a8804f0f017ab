package localmedia

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/strokesheet/internal/platform/logger"
)

func TestConverterArgs(t *testing.T) {
	got := converterArgs(ConverterRSVG, "/w/page.svg", "/w/page.pdf")
	if diff := cmp.Diff([]string{"-f", "pdf", "-o", "/w/page.pdf", "/w/page.svg"}, got); diff != "" {
		t.Fatalf("rsvg args (-want +got):\n%s", diff)
	}
	got = converterArgs(ConverterChromium, "/w/page.svg", "/w/page.pdf")
	if got[len(got)-1] != "file:///w/page.svg" || got[len(got)-2] != "--print-to-pdf=/w/page.pdf" {
		t.Fatalf("chromium args: %v", got)
	}
}

func TestNewRejectsUnknownConverter(t *testing.T) {
	if _, err := New(logger.NewNop(), Options{Converter: "inkscape"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAssertReadyMissingBinary(t *testing.T) {
	tl, err := New(logger.NewNop(), Options{Binary: "definitely-not-a-real-binary-xyz"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tl.AssertReady(context.Background()); err == nil {
		t.Fatalf("expected missing binary error")
	}
}

func TestConvertWithFakeBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script converter")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-rsvg")
	body := "#!/bin/sh\nwhile [ $# -gt 0 ]; do if [ \"$1\" = \"-o\" ]; then shift; out=\"$1\"; fi; shift; done\necho '%PDF-1.4 fake' > \"$out\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	svg := filepath.Join(dir, "page.svg")
	if err := os.WriteFile(svg, []byte("<svg/>"), 0o644); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	tl, err := New(logger.NewNop(), Options{Binary: script})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pdf := filepath.Join(dir, "page.pdf")
	if err := tl.ConvertSVGToPDF(context.Background(), svg, pdf); err != nil {
		t.Fatalf("ConvertSVGToPDF: %v", err)
	}
	if st, err := os.Stat(pdf); err != nil || st.Size() == 0 {
		t.Fatalf("pdf not written: %v", err)
	}
}
