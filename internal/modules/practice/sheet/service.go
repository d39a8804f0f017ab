// Package sheet runs one practice-sheet generation end to end: it resolves
// the target characters, lays out a page of curriculum cells rendered into a
// fresh run directory, writes the composite SVG, converts it to PDF and
// disposes of the intermediate files.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/strokesheet/internal/domain/practice"
	"github.com/yungbote/strokesheet/internal/modules/practice/cellcache"
	"github.com/yungbote/strokesheet/internal/modules/practice/curriculum"
	"github.com/yungbote/strokesheet/internal/modules/practice/layout"
	"github.com/yungbote/strokesheet/internal/modules/practice/render"
	"github.com/yungbote/strokesheet/internal/platform/ctxutil"
	"github.com/yungbote/strokesheet/internal/platform/localmedia"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

const (
	pageFileName = "sheet.svg"
	pdfFileName  = "sheet.pdf"
)

var tracer = otel.Tracer("github.com/yungbote/strokesheet/internal/modules/practice/sheet")

type Request struct {
	Characters string
	CellSize   int
	// Seed fixes the random review prompts. Nil draws a fresh seed.
	Seed *int64
	// KeepArtifacts leaves cell files and the page SVG next to the PDF.
	KeepArtifacts bool
	// SkipPDF stops after the page SVG. Artifacts are kept.
	SkipPDF bool
}

type Result struct {
	RunID    uuid.UUID
	Dir      string
	Targets  []practice.Character
	Page     *practice.Page
	SVGPath  string
	PDFPath  string
	Manifest []practice.CellArtifact
	Stats    cellcache.Stats
	Disposed int
}

// Cleanup removes the run directory with everything left in it.
func (r *Result) Cleanup() error {
	if r == nil || r.Dir == "" {
		return nil
	}
	return os.RemoveAll(r.Dir)
}

type Service interface {
	Generate(ctx context.Context, req Request) (*Result, error)
	// CacheTag names everything besides the request that shapes the
	// rendered sheet.
	CacheTag() string
}

type Deps struct {
	Log       *logger.Logger
	Strokes   curriculum.StrokeSource
	Labels    curriculum.LabelSource
	Converter localmedia.Tools
	Policy    curriculum.Policy
	WorkRoot  string
	// StrokeWeight is a render weight name; empty means reveal.
	StrokeWeight string
}

type service struct {
	log       *logger.Logger
	strokes   curriculum.StrokeSource
	labels    curriculum.LabelSource
	converter localmedia.Tools
	policy    curriculum.Policy
	workRoot  string
	weight    render.WeightFunc
	tag       string
}

func NewService(deps Deps) (Service, error) {
	if deps.Strokes == nil {
		return nil, fmt.Errorf("stroke store required")
	}
	log := deps.Log
	if log == nil {
		log = logger.NewNop()
	}
	policy := deps.Policy
	if policy == (curriculum.Policy{}) {
		policy = curriculum.DefaultPolicy()
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	weight, err := render.WeightByName(deps.StrokeWeight)
	if err != nil {
		return nil, err
	}
	weightName := strings.ToLower(strings.TrimSpace(deps.StrokeWeight))
	if weightName == "" {
		weightName = render.WeightReveal
	}
	workRoot := deps.WorkRoot
	if workRoot == "" {
		workRoot = filepath.Join(os.TempDir(), "strokesheet")
	}
	return &service{
		log:       log.With("service", "SheetService"),
		strokes:   deps.Strokes,
		labels:    deps.Labels,
		converter: deps.Converter,
		policy:    policy,
		workRoot:  workRoot,
		weight:    weight,
		tag:       cacheTag(policy, weightName),
	}, nil
}

func (s *service) CacheTag() string { return s.tag }

func (s *service) Generate(ctx context.Context, req Request) (res *Result, err error) {
	ctx = ctxutil.Default(ctx)
	ctx, span := tracer.Start(ctx, "sheet.generate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	targets := ParseCharacters(req.Characters)
	span.SetAttributes(
		attribute.Int("sheet.characters", len(targets)),
		attribute.Int("sheet.cell_size", req.CellSize),
	)

	// Everything that can be rejected is rejected before the run directory
	// exists.
	opts := []curriculum.Option{curriculum.WithPolicy(s.policy)}
	if req.Seed != nil {
		opts = append(opts, curriculum.WithSeed(*req.Seed))
	}
	gen, err := curriculum.New(targets, s.strokes, s.labels, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := layout.NewGrid(req.CellSize); err != nil {
		return nil, err
	}
	if !req.SkipPDF {
		if s.converter == nil {
			return nil, fmt.Errorf("pdf converter not configured")
		}
		if err := s.converter.AssertReady(ctx); err != nil {
			return nil, err
		}
	}

	runID := uuid.New()
	dir := filepath.Join(s.workRoot, runID.String())
	log := s.log.With("run_id", runID.String())
	span.SetAttributes(attribute.String("sheet.run_id", runID.String()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}
	defer func() {
		if err != nil && !req.KeepArtifacts {
			if rmErr := os.RemoveAll(dir); rmErr != nil {
				log.Warn("failed to remove run dir after error (ignored)", "dir", dir, "error", rmErr)
			}
		}
	}()

	log.Info("Generating sheet", "characters", joinCharacters(targets), "cell_size", req.CellSize)

	cache := cellcache.New()
	cells := curriculum.NewCells(gen, cache, render.NewFileRenderer(dir, s.weight))
	_, layoutSpan := tracer.Start(ctx, "layout.render_page")
	page, err := layout.RenderPage(cells, req.CellSize, targets, gen)
	layoutSpan.SetAttributes(attribute.Int("layout.cells_pulled", cells.Pulled()))
	layoutSpan.End()
	if err != nil {
		return nil, err
	}

	res = &Result{
		RunID:    runID,
		Dir:      dir,
		Targets:  targets,
		Page:     page,
		SVGPath:  filepath.Join(dir, pageFileName),
		Manifest: cache.Manifest(),
		Stats:    cache.Stats(),
	}
	if err := writePage(res.SVGPath, page); err != nil {
		return nil, err
	}
	log.Info("Page laid out", "placements", len(page.Placements), "artifacts", res.Stats.Artifacts, "cache_hits", res.Stats.Hits)

	if req.SkipPDF {
		return res, nil
	}

	pdfPath := filepath.Join(dir, pdfFileName)
	if err := s.converter.ConvertSVGToPDF(ctx, res.SVGPath, pdfPath); err != nil {
		return nil, err
	}
	res.PDFPath = pdfPath

	if !req.KeepArtifacts {
		paths := make([]string, 0, len(res.Manifest)+1)
		for _, a := range res.Manifest {
			paths = append(paths, a.Ref)
		}
		paths = append(paths, res.SVGPath)
		res.Disposed = dispose(ctx, log, paths)
		res.SVGPath = ""
		log.Debug("Disposed artifacts", "count", res.Disposed)
	}
	return res, nil
}

func writePage(path string, page *practice.Page) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := render.WritePage(f, page, render.RelativeHref); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

func cacheTag(p curriculum.Policy, weight string) string {
	return fmt.Sprintf("%d/%d/%s", p.Repetitions, p.ReviewCount, weight)
}
