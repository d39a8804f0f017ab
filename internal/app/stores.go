package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/strokesheet/internal/data/db"
	"github.com/yungbote/strokesheet/internal/data/pronunciation"
	"github.com/yungbote/strokesheet/internal/data/repos/glyphs"
	"github.com/yungbote/strokesheet/internal/data/strokes"
	"github.com/yungbote/strokesheet/internal/platform/dbctx"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

// Stores are the read-only lookups every run shares.
type Stores struct {
	Strokes       *strokes.Store
	Pronunciation *pronunciation.Store
}

// LoadStoresFromFiles reads graphics.txt and dictionary.txt concurrently.
func LoadStoresFromFiles(ctx context.Context, log *logger.Logger, graphicsPath, dictionaryPath string) (Stores, error) {
	var out Stores
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := strokes.LoadFile(graphicsPath)
		if err != nil {
			return fmt.Errorf("stroke store: %w", err)
		}
		out.Strokes = s
		return nil
	})
	g.Go(func() error {
		p, err := pronunciation.LoadFile(dictionaryPath)
		if err != nil {
			return fmt.Errorf("pronunciation store: %w", err)
		}
		out.Pronunciation = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return Stores{}, err
	}
	log.Info("Loaded stores from files", "characters", out.Strokes.Len(), "graphics", graphicsPath, "dictionary", dictionaryPath)
	return out, nil
}

// LoadStoresFromDB builds both stores from the character table.
func LoadStoresFromDB(ctx context.Context, log *logger.Logger, repo glyphs.CharacterRepo) (Stores, error) {
	recs, err := repo.ListAll(dbctx.Context{Ctx: ctx})
	if err != nil {
		return Stores{}, fmt.Errorf("list characters: %w", err)
	}
	s, err := strokes.FromRecords(recs)
	if err != nil {
		return Stores{}, fmt.Errorf("stroke store: %w", err)
	}
	out := Stores{Strokes: s, Pronunciation: pronunciation.FromRecords(recs)}
	log.Info("Loaded stores from database", "records", len(recs))
	return out, nil
}

// LoadStores picks the source named by cfg.StrokeSource. The returned
// db.Service is nil for file sources and must be closed by the caller
// otherwise.
func LoadStores(ctx context.Context, log *logger.Logger, cfg Config) (Stores, *db.Service, error) {
	switch cfg.StrokeSource {
	case StrokeSourceFile, "":
		s, err := LoadStoresFromFiles(ctx, log, cfg.GraphicsPath, cfg.DictionaryPath)
		return s, nil, err
	case StrokeSourceDB:
		svc, err := db.NewService(log, cfg.DB)
		if err != nil {
			return Stores{}, nil, err
		}
		if err := svc.AutoMigrateAll(); err != nil {
			_ = svc.Close()
			return Stores{}, nil, fmt.Errorf("automigrate: %w", err)
		}
		s, err := LoadStoresFromDB(ctx, log, glyphs.NewCharacterRepo(svc.DB(), log))
		if err != nil {
			_ = svc.Close()
			return Stores{}, nil, err
		}
		return s, svc, nil
	default:
		return Stores{}, nil, fmt.Errorf("unsupported STROKE_SOURCE %q", cfg.StrokeSource)
	}
}
