// Command strokesheet writes a stroke practice sheet for the given
// characters.
//
//	strokesheet [flags] 你好
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yungbote/strokesheet/internal/app"
	"github.com/yungbote/strokesheet/internal/modules/practice/sheet"
)

type options struct {
	chars          string
	size           int
	graphicsPath   string
	dictionaryPath string
	noDelete       bool
	noPDF          bool
	seed           *int64
	outDir         string
}

func parseOptions(args []string, output io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("strokesheet", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&o.size, "size", 13, "cell size in page units (page is 200x300)")
	fs.StringVar(&o.graphicsPath, "graphics-txt-path", "graphics.txt", "path to makemeahanzi graphics.txt")
	fs.StringVar(&o.dictionaryPath, "dictionary-txt-path", "dictionary.txt", "path to makemeahanzi dictionary.txt")
	fs.BoolVar(&o.noDelete, "no-delete", false, "keep the run directory with cell and page SVG files")
	fs.BoolVar(&o.noPDF, "no-pdf", false, "stop after the page SVG and write it with its cells to -out-dir")
	fs.Func("seed", "seed for review prompts (random when unset)", func(v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		o.seed = &n
		return nil
	})
	fs.StringVar(&o.outDir, "out-dir", ".", "directory the sheet is written to")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] CHARACTERS\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.chars = strings.Join(fs.Args(), "")
	if strings.TrimSpace(o.chars) == "" {
		fs.Usage()
		return o, errors.New("no characters given")
	}
	return o, nil
}

func main() {
	o, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	log, err := app.NewLogger()
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := app.LoadConfig(log)
	ctx := context.Background()
	stores, err := app.LoadStoresFromFiles(ctx, log, o.graphicsPath, o.dictionaryPath)
	if err != nil {
		log.Fatal("Loading stores failed", "error", err)
	}
	svc, err := app.NewSheetService(log, cfg, stores)
	if err != nil {
		log.Fatal("Sheet service init failed", "error", err)
	}

	res, err := svc.Generate(ctx, sheet.Request{
		Characters:    o.chars,
		CellSize:      o.size,
		Seed:          o.seed,
		KeepArtifacts: o.noDelete,
		SkipPDF:       o.noPDF,
	})
	if err != nil {
		log.Fatal("Sheet generation failed", "error", err)
	}

	base := filepath.Join(o.outDir, sheet.Canonical(o.chars))
	var out string
	if o.noPDF {
		out = base + ".svg"
		err = exportSVG(res, out)
	} else {
		out = base + ".pdf"
		err = copyFile(res.PDFPath, out)
	}
	if err != nil {
		log.Fatal("Writing sheet failed", "error", err)
	}
	if o.noDelete {
		log.Info("Kept artifacts", "dir", res.Dir)
	} else if err := res.Cleanup(); err != nil {
		log.Warn("Failed to remove run dir (ignored)", "dir", res.Dir, "error", err)
	}
	fmt.Println(out)
}

// exportSVG writes the page to pagePath and its cells beside it. The page
// references cells by base name, so they must share a directory.
func exportSVG(res *sheet.Result, pagePath string) error {
	dir := filepath.Dir(pagePath)
	for _, a := range res.Manifest {
		if err := copyFile(a.Ref, filepath.Join(dir, filepath.Base(a.Ref))); err != nil {
			return err
		}
	}
	return copyFile(res.SVGPath, pagePath)
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(out, in)
	return err
}
