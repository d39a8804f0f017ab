// Command strokeimport loads makemeahanzi graphics.txt and dictionary.txt
// into the character table read when STROKE_SOURCE=db.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/strokesheet/internal/app"
	"github.com/yungbote/strokesheet/internal/data/db"
	"github.com/yungbote/strokesheet/internal/data/importer"
	"github.com/yungbote/strokesheet/internal/data/repos/glyphs"
)

func main() {
	var graphicsPath, dictionaryPath string
	var dryRun bool
	flag.StringVar(&graphicsPath, "graphics-txt-path", "graphics.txt", "path to makemeahanzi graphics.txt (empty skips)")
	flag.StringVar(&dictionaryPath, "dictionary-txt-path", "dictionary.txt", "path to makemeahanzi dictionary.txt (empty skips)")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and count records without writing")
	flag.Parse()

	log, err := app.NewLogger()
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if dryRun {
		recs, err := importer.BuildFiles(graphicsPath, dictionaryPath)
		if err != nil {
			log.Fatal("parse failed", "error", err)
		}
		fmt.Printf("[dry-run] %d records\n", len(recs))
		return
	}

	svc, err := db.NewService(log, db.ConfigFromEnv(log))
	if err != nil {
		log.Fatal("db init failed", "error", err)
	}
	defer svc.Close()
	if err := svc.AutoMigrateAll(); err != nil {
		log.Fatal("automigrate failed", "error", err)
	}

	repo := glyphs.NewCharacterRepo(svc.DB(), log)
	st, err := importer.ImportFiles(context.Background(), log, repo, graphicsPath, dictionaryPath)
	if err != nil {
		log.Fatal("import failed", "error", err)
	}
	fmt.Printf("done; records=%d with_strokes=%d with_pinyin=%d\n", st.Records, st.WithStrokes, st.WithPinyin)
}
