package curriculum

import (
	"fmt"

	"github.com/yungbote/strokesheet/internal/domain/practice"
	"github.com/yungbote/strokesheet/internal/modules/practice/cellcache"
)

// Renderer turns a request into an artifact. strokes is the full stroke list
// of the request's character; the renderer applies SkipCount and StopIndex.
type Renderer interface {
	RenderCell(req practice.CellRequest, strokes []practice.Stroke) (practice.CellArtifact, error)
}

// Cell is a request together with the artifact realizing it.
type Cell struct {
	Request  practice.CellRequest
	Artifact practice.CellArtifact
}

// Cells realizes the generator's requests through a run's cell cache.
type Cells struct {
	gen      *Generator
	cache    *cellcache.Cache
	renderer Renderer
	pulled   int
}

func NewCells(gen *Generator, cache *cellcache.Cache, renderer Renderer) *Cells {
	return &Cells{gen: gen, cache: cache, renderer: renderer}
}

func (c *Cells) Next() (Cell, error) {
	req := c.gen.Next()
	c.pulled++
	art, err := c.cache.Get(req.Key(), func() (practice.CellArtifact, error) {
		return c.renderer.RenderCell(req, c.gen.Strokes(req.Character))
	})
	if err != nil {
		return Cell{}, fmt.Errorf("render cell %s: %w", req.Key(), err)
	}
	return Cell{Request: req, Artifact: art}, nil
}

// Label returns the label of a target character.
func (c *Cells) Label(ch practice.Character) string { return c.gen.Label(ch) }

// Pulled is how many cells have been taken so far.
func (c *Cells) Pulled() int { return c.pulled }
