// Package importer merges makemeahanzi graphics.txt and dictionary.txt into
// character records and stores them.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gorm.io/datatypes"

	"github.com/yungbote/strokesheet/internal/data/pronunciation"
	"github.com/yungbote/strokesheet/internal/data/repos/glyphs"
	"github.com/yungbote/strokesheet/internal/data/strokes"
	"github.com/yungbote/strokesheet/internal/domain/records"
	"github.com/yungbote/strokesheet/internal/platform/dbctx"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

// Build returns one record per character seen in either input, graphics
// order first. A character only in the dictionary has no stroke data.
func Build(graphics, dictionary io.Reader) ([]*records.CharacterRecord, error) {
	var out []*records.CharacterRecord
	byChar := map[string]*records.CharacterRecord{}

	if graphics != nil {
		err := strokes.Scan(graphics, func(e strokes.Entry) error {
			raw, err := json.Marshal(e.Strokes)
			if err != nil {
				return err
			}
			rec, ok := byChar[string(e.Character)]
			if !ok {
				rec = &records.CharacterRecord{Character: string(e.Character)}
				byChar[rec.Character] = rec
				out = append(out, rec)
			}
			rec.Strokes = datatypes.JSON(raw)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("graphics: %w", err)
		}
	}

	if dictionary != nil {
		err := pronunciation.Scan(dictionary, func(e pronunciation.Entry) error {
			rec, ok := byChar[string(e.Character)]
			if !ok {
				rec = &records.CharacterRecord{Character: string(e.Character)}
				byChar[rec.Character] = rec
				out = append(out, rec)
			}
			rec.Pinyin = e.Label
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("dictionary: %w", err)
		}
	}
	return out, nil
}

type Stats struct {
	Records     int
	WithStrokes int
	WithPinyin  int
}

// BuildFiles is Build over files on disk. An empty path skips that file.
func BuildFiles(graphicsPath, dictionaryPath string) ([]*records.CharacterRecord, error) {
	var graphics, dictionary io.Reader
	if graphicsPath != "" {
		f, err := os.Open(graphicsPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		graphics = f
	}
	if dictionaryPath != "" {
		f, err := os.Open(dictionaryPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		dictionary = f
	}
	return Build(graphics, dictionary)
}

// ImportFiles reads both files and upserts the merged records. An empty
// path skips that file and leaves the matching column of stored characters
// untouched.
func ImportFiles(ctx context.Context, log *logger.Logger, repo glyphs.CharacterRepo, graphicsPath, dictionaryPath string) (Stats, error) {
	var columns []string
	if graphicsPath != "" {
		columns = append(columns, glyphs.ColumnStrokes)
	}
	if dictionaryPath != "" {
		columns = append(columns, glyphs.ColumnPinyin)
	}
	if len(columns) == 0 {
		return Stats{}, nil
	}

	recs, err := BuildFiles(graphicsPath, dictionaryPath)
	if err != nil {
		return Stats{}, err
	}
	if err := repo.Upsert(dbctx.Context{Ctx: ctx}, recs, columns...); err != nil {
		return Stats{}, fmt.Errorf("upsert: %w", err)
	}

	st := Stats{Records: len(recs)}
	for _, r := range recs {
		if r.HasStrokes() {
			st.WithStrokes++
		}
		if r.Pinyin != "" {
			st.WithPinyin++
		}
	}
	log.Info("Imported characters", "records", st.Records, "with_strokes", st.WithStrokes, "with_pinyin", st.WithPinyin)
	return st, nil
}
