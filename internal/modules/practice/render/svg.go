// Package render serializes cells and pages to SVG.
//
// A cell is a 1024x1024 practice square with a tian zi ge guide grid, the
// label in the top-left corner and the strokes the request shows. A page
// references its cells as external images so each distinct cell is written
// once per run.
package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/yungbote/strokesheet/internal/domain/practice"
)

const cellHeader = `<svg version="1.1" viewBox="0 0 1024 1024" xmlns="http://www.w3.org/2000/svg">
`

const cellGrid = `    <g stroke="black" stroke-width="2" transform="scale(4, 4)">
        <line x1="0" y1="0" x2="0" y2="256" stroke-width="10"></line>
        <line x1="0" y1="0" x2="256" y2="256"></line>
        <line x1="256" y1="0" x2="0" y2="256"></line>
        <line x1="256" y1="0" x2="0" y2="0" stroke-width="10"></line>
        <line x1="256" y1="0" x2="256" y2="256"></line>
        <line x1="128" y1="0" x2="128" y2="256"></line>
        <line x1="0" y1="128" x2="256" y2="128"></line>
        <line x1="0" y1="256" x2="256" y2="256"></line>
    </g>
    <g transform="scale(1, -1) translate(0, -900)">
`

const cellFooter = `    </g>
</svg>
`

const pageFooter = "</svg>\n"

// WeightFunc picks the line width of stroke n in a cell whose emphasized
// stroke is emphasis.
type WeightFunc func(n, emphasis int) int

const (
	HeavyWeight = 20
	LightWeight = 10
)

// RevealWeight draws every stroke up to and including the emphasized one
// heavy. Trace cells come out bold, recall cells light.
func RevealWeight(n, emphasis int) int {
	if n <= emphasis {
		return HeavyWeight
	}
	return LightWeight
}

// EmphasisWeight draws only the emphasized stroke heavy.
func EmphasisWeight(n, emphasis int) int {
	if n == emphasis {
		return HeavyWeight
	}
	return LightWeight
}

// Stroke weight names accepted by WeightByName.
const (
	WeightReveal   = "reveal"
	WeightEmphasis = "emphasis"
)

// WeightByName resolves a configured stroke weight. Empty means reveal.
func WeightByName(name string) (WeightFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", WeightReveal:
		return RevealWeight, nil
	case WeightEmphasis:
		return EmphasisWeight, nil
	default:
		return nil, fmt.Errorf("unknown stroke weight %q", name)
	}
}

// WriteCell writes the SVG for req. strokes is the character's full list.
func WriteCell(w io.Writer, req practice.CellRequest, strokes []practice.Stroke, weight WeightFunc) error {
	if weight == nil {
		weight = RevealWeight
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(cellHeader)
	fmt.Fprintf(bw, `<text x="50" y="200" font-size="150px">%s</text>`+"\n", escape(req.Label))
	bw.WriteString(cellGrid)
	for n, s := range strokes {
		if !req.Shows(n) {
			continue
		}
		fmt.Fprintf(bw, `        <path d="%s" stroke="black" stroke-width="%d" fill="white"></path>`+"\n", escape(string(s)), weight(n, req.EmphasisIndex))
	}
	bw.WriteString(cellFooter)
	return bw.Flush()
}

// HrefFunc maps an artifact to the reference written into the page.
type HrefFunc func(practice.CellArtifact) string

// WritePage writes the composite page SVG.
func WritePage(w io.Writer, page *practice.Page, href HrefFunc) error {
	if page == nil {
		return fmt.Errorf("page required")
	}
	if href == nil {
		href = func(a practice.CellArtifact) string { return a.Ref }
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg width="100%%" height="100%%" viewBox="0 0 %d %d" version="1.1"
xmlns="http://www.w3.org/2000/svg"
xmlns:xlink="http://www.w3.org/1999/xlink">`+"\n", page.Width, page.Height)
	fmt.Fprintf(bw, `<text x="0" y="7" font-size="5px">%s</text>`+"\n", escape(page.Header))
	for _, p := range page.Placements {
		fmt.Fprintf(bw, `<image x="%d" y="%d" width="%d" height="%d" xlink:href="%s" />`+"\n",
			p.X, p.Y, p.Width, p.Height, escape(href(p.Artifact)))
	}
	bw.WriteString(pageFooter)
	return bw.Flush()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
