package glyphs

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/strokesheet/internal/domain/records"
	"github.com/yungbote/strokesheet/internal/platform/dbctx"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

const upsertBatchSize = 500

// Data columns Upsert can overwrite on an existing character.
const (
	ColumnStrokes = "strokes"
	ColumnPinyin  = "pinyin"
)

type CharacterRepo interface {
	Upsert(dbc dbctx.Context, rows []*records.CharacterRecord, columns ...string) error
	ListAll(dbc dbctx.Context) ([]*records.CharacterRecord, error)
	Count(dbc dbctx.Context) (int64, error)
}

type characterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCharacterRepo(db *gorm.DB, baseLog *logger.Logger) CharacterRepo {
	return &characterRepo{db: db, log: baseLog.With("repo", "CharacterRepo")}
}

// Upsert inserts rows. For characters already stored only the given data
// columns are replaced; with none given both strokes and pinyin are.
func (r *characterRepo) Upsert(dbc dbctx.Context, rows []*records.CharacterRecord, columns ...string) error {
	if len(rows) == 0 {
		return nil
	}
	if len(columns) == 0 {
		columns = []string{ColumnStrokes, ColumnPinyin}
	}
	update := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		switch c {
		case ColumnStrokes, ColumnPinyin:
			update = append(update, c)
		default:
			return fmt.Errorf("upsert: unknown column %q", c)
		}
	}
	update = append(update, "updated_at")
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "glyph"}},
			DoUpdates: clause.AssignmentColumns(update),
		}).
		CreateInBatches(rows, upsertBatchSize).Error
}

func (r *characterRepo) ListAll(dbc dbctx.Context) ([]*records.CharacterRecord, error) {
	var out []*records.CharacterRecord
	if err := dbc.DB(r.db).Order("glyph ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *characterRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	err := dbc.DB(r.db).Model(&records.CharacterRecord{}).Count(&n).Error
	return n, err
}
