// Package cellcache memoizes rendered cells for the duration of one run.
//
// A Cache is owned by exactly one run and is not safe for concurrent use.
// Runs that share a process each construct their own Cache.
package cellcache

import "github.com/yungbote/strokesheet/internal/domain/practice"

// RenderFunc produces the artifact for a key. It must be deterministic.
type RenderFunc func() (practice.CellArtifact, error)

type Cache struct {
	entries  map[practice.CacheKey]practice.CellArtifact
	manifest []practice.CellArtifact
	renders  int
	hits     int
}

func New() *Cache {
	return &Cache{entries: map[practice.CacheKey]practice.CellArtifact{}}
}

// Get returns the artifact for key, calling render only the first time key
// is seen. A failed render is not memoized.
func (c *Cache) Get(key practice.CacheKey, render RenderFunc) (practice.CellArtifact, error) {
	if a, ok := c.entries[key]; ok {
		c.hits++
		return a, nil
	}
	c.renders++
	a, err := render()
	if err != nil {
		return practice.CellArtifact{}, err
	}
	a.Key = key
	c.entries[key] = a
	c.manifest = append(c.manifest, a)
	return a, nil
}

// Manifest lists every artifact produced so far, in first-request order.
// The returned slice is a copy.
func (c *Cache) Manifest() []practice.CellArtifact {
	out := make([]practice.CellArtifact, len(c.manifest))
	copy(out, c.manifest)
	return out
}

func (c *Cache) Len() int { return len(c.manifest) }

type Stats struct {
	Artifacts int
	Renders   int
	Hits      int
}

func (c *Cache) Stats() Stats {
	return Stats{Artifacts: len(c.manifest), Renders: c.renders, Hits: c.hits}
}
