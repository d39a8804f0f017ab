package glyphs

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/strokesheet/internal/data/repos/testutil"
	"github.com/yungbote/strokesheet/internal/domain/records"
	"github.com/yungbote/strokesheet/internal/platform/dbctx"
)

func TestCharacterRepoUpsertAndList(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewCharacterRepo(gdb, testutil.Logger(t))

	first := []*records.CharacterRecord{
		{Character: "你", Strokes: datatypes.JSON(`["M 1 1"]`), Pinyin: "nǐ"},
		{Character: "好", Strokes: datatypes.JSON(`["M 2 2","M 3 3"]`)},
	}
	if err := repo.Upsert(dbc, first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.Upsert(dbc, []*records.CharacterRecord{
		{Character: "好", Strokes: datatypes.JSON(`["M 2 2","M 3 3"]`), Pinyin: "hǎo"},
	}); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	n, err := repo.Count(dbc)
	if err != nil || n != 2 {
		t.Fatalf("Count: n=%d err=%v", n, err)
	}

	all, err := repo.ListAll(dbc)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 || !all[0].HasStrokes() {
		t.Fatalf("unexpected ListAll: %+v", all)
	}
	byChar := map[string]*records.CharacterRecord{}
	for _, r := range all {
		byChar[r.Character] = r
	}
	if byChar["好"].Pinyin != "hǎo" {
		t.Fatalf("pinyin not updated: %+v", byChar["好"])
	}
}

func TestCharacterRepoUpsertColumns(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewCharacterRepo(gdb, testutil.Logger(t))

	if err := repo.Upsert(dbc, []*records.CharacterRecord{
		{Character: "好", Strokes: datatypes.JSON(`["M 2 2","M 3 3"]`), Pinyin: "hǎo"},
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	// Pinyin only: stored strokes stay.
	if err := repo.Upsert(dbc, []*records.CharacterRecord{
		{Character: "好", Pinyin: "hào"},
	}, ColumnPinyin); err != nil {
		t.Fatalf("Upsert pinyin: %v", err)
	}
	// Strokes only: stored pinyin stays.
	if err := repo.Upsert(dbc, []*records.CharacterRecord{
		{Character: "好", Strokes: datatypes.JSON(`["M 4 4"]`)},
	}, ColumnStrokes); err != nil {
		t.Fatalf("Upsert strokes: %v", err)
	}

	all, err := repo.ListAll(dbc)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("rows: %+v", all)
	}
	if got := string(all[0].Strokes); got != `["M 4 4"]` {
		t.Fatalf("strokes: got=%s", got)
	}
	if all[0].Pinyin != "hào" {
		t.Fatalf("pinyin: got=%q", all[0].Pinyin)
	}

	if err := repo.Upsert(dbc, all, "glyph"); err == nil {
		t.Fatalf("expected error for unknown column")
	}
}
