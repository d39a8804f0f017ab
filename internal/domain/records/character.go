package records

import (
	"time"

	"gorm.io/datatypes"
)

// CharacterRecord is the persisted form of one makemeahanzi entry: the
// stroke outlines from graphics.txt and the first pinyin reading from
// dictionary.txt. Either half may be missing.
type CharacterRecord struct {
	Character string         `gorm:"column:glyph;primaryKey" json:"character"`
	Strokes   datatypes.JSON `gorm:"column:strokes" json:"strokes"`
	Pinyin    string         `gorm:"column:pinyin;not null;default:''" json:"pinyin"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (CharacterRecord) TableName() string { return "character_record" }

// HasStrokes reports whether the record carries stroke data. An empty JSON
// array counts: it is a character with zero strokes.
func (r *CharacterRecord) HasStrokes() bool {
	return r != nil && len(r.Strokes) > 0 && string(r.Strokes) != "null"
}
