package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/hailstone/internal/render"
	"github.com/san-kum/hailstone/internal/turtle"
)

// Padding is the margin added around the drawing, as a fraction of its extent.
const Padding = 0.05

// PathsToSVG writes one polyline per path, projected with params. The
// viewBox is fitted to the projected points, so the origin only shifts the
// document coordinates.
func PathsToSVG(w io.Writer, paths render.PathSource, params turtle.Params, strokeWidth float64, bg colorful.Color) error {
	if err := params.Validate(); err != nil {
		return err
	}

	projected := make([][]gg.Point, paths.Count())
	var lo, hi gg.Point
	found := false
	for i := range projected {
		pts, err := turtle.Project(paths.SequenceAt(i), params)
		if err != nil {
			return err
		}
		projected[i] = pts
		pmin, pmax, ok := turtle.Bounds(pts)
		if !ok {
			continue
		}
		if !found {
			lo, hi, found = pmin, pmax, true
			continue
		}
		lo = gg.Pt(min(lo.X, pmin.X), min(lo.Y, pmin.Y))
		hi = gg.Pt(max(hi.X, pmax.X), max(hi.Y, pmax.Y))
	}
	if !found {
		lo, hi = params.Origin, params.Origin
	}

	rangeX := hi.X - lo.X
	rangeY := hi.Y - lo.Y
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	pad := max(rangeX, rangeY)*Padding + strokeWidth
	lo = lo.Sub(gg.Pt(pad, pad))
	rangeX += 2 * pad
	rangeY += 2 * pad

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="%.2f %.2f %.2f %.2f">
<rect x="%.2f" y="%.2f" width="100%%" height="100%%" fill="%s"/>
<g fill="none" stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round">
`, rangeX, rangeY, lo.X, lo.Y, rangeX, rangeY, lo.X, lo.Y, bg.Hex(), strokeWidth))

	for i, pts := range projected {
		if len(pts) < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<polyline stroke="%s" points="`, paths.ColorAt(i).Clamped().Hex()))
		for j, p := range pts {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.2f,%.2f", p.X, p.Y))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</g>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
