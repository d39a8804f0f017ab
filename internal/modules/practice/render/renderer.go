package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yungbote/strokesheet/internal/domain/practice"
)

// FileRenderer writes each cell to Dir under its cache key's file name.
type FileRenderer struct {
	Dir    string
	Weight WeightFunc
}

func NewFileRenderer(dir string, weight WeightFunc) *FileRenderer {
	return &FileRenderer{Dir: dir, Weight: weight}
}

func (r *FileRenderer) RenderCell(req practice.CellRequest, strokes []practice.Stroke) (practice.CellArtifact, error) {
	path := filepath.Join(r.Dir, req.Key().FileName())
	var buf bytes.Buffer
	if err := WriteCell(&buf, req, strokes, r.Weight); err != nil {
		return practice.CellArtifact{}, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return practice.CellArtifact{}, fmt.Errorf("write cell: %w", err)
	}
	return practice.CellArtifact{Key: req.Key(), Ref: path}, nil
}

// RelativeHref references artifacts by base name, for pages written into
// the same directory as their cells.
func RelativeHref(a practice.CellArtifact) string {
	return filepath.Base(a.Ref)
}
