// Package layout tiles curriculum cells onto a fixed-size page.
package layout

import (
	"fmt"
	"strings"

	"github.com/yungbote/strokesheet/internal/domain/practice"
	"github.com/yungbote/strokesheet/internal/modules/practice/curriculum"
)

const (
	PageWidth  = 200
	PageHeight = 300
)

// Grid is the arrangement of content slots below the header row.
type Grid struct {
	CellSize int
	Columns  int
	// Rows counts content rows only; row 0 of the page holds the header.
	Rows int
}

// NewGrid fails with ErrInvalidSize unless at least one content cell fits.
func NewGrid(cellSize int) (Grid, error) {
	if cellSize <= 0 {
		return Grid{}, fmt.Errorf("%w: cell size %d must be positive", practice.ErrInvalidSize, cellSize)
	}
	cols := PageWidth / cellSize
	rows := PageHeight/cellSize - 1
	if cols < 1 || rows < 1 {
		return Grid{}, fmt.Errorf("%w: cell size %d leaves a %dx%d grid on a %dx%d page", practice.ErrInvalidSize, cellSize, cols, rows, PageWidth, PageHeight)
	}
	return Grid{CellSize: cellSize, Columns: cols, Rows: rows}, nil
}

func (g Grid) Slots() int { return g.Columns * g.Rows }

// Slot returns the top-left corner of slot k in row-major order.
func (g Grid) Slot(k int) (x, y int) {
	x = (k % g.Columns) * g.CellSize
	y = (k/g.Columns + 1) * g.CellSize
	return x, y
}

// CellSource yields realized cells in curriculum order.
type CellSource interface {
	Next() (curriculum.Cell, error)
}

type LabelSource interface {
	Label(c practice.Character) string
}

// Header joins "C (label)" for every target, in input order.
func Header(targets []practice.Character, labels LabelSource) string {
	parts := make([]string, 0, len(targets))
	for _, c := range targets {
		label := ""
		if labels != nil {
			label = labels.Label(c)
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", c, label))
	}
	return strings.Join(parts, ", ")
}

// RenderPage pulls exactly as many cells from src as the grid holds. The
// size is validated before the first pull.
func RenderPage(src CellSource, cellSize int, targets []practice.Character, labels LabelSource) (*practice.Page, error) {
	grid, err := NewGrid(cellSize)
	if err != nil {
		return nil, err
	}
	page := &practice.Page{
		Width:      PageWidth,
		Height:     PageHeight,
		CellSize:   cellSize,
		Columns:    grid.Columns,
		Rows:       grid.Rows,
		Header:     Header(targets, labels),
		Placements: make([]practice.Placement, 0, grid.Slots()),
	}
	for k := 0; k < grid.Slots(); k++ {
		cell, err := src.Next()
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", k, err)
		}
		x, y := grid.Slot(k)
		page.Placements = append(page.Placements, practice.Placement{
			Artifact: cell.Artifact,
			X:        x,
			Y:        y,
			Width:    cellSize,
			Height:   cellSize,
		})
	}
	return page, nil
}
