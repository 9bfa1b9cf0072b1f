package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/numlab/internal/numeric"
)

// Curve is one series to draw. Markers draws a dot per point instead of a path.
type Curve struct {
	Name    string
	Points  []numeric.Point
	Color   string
	Markers bool
}

// Palette cycles through these when a Curve has no color.
var Palette = []string{"#00ff88", "#00ccff", "#ff00ff", "#ffaa00", "#ff4444", "#ffffff"}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func findBounds(curves []Curve) (bounds, bool) {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	found := false
	for _, c := range curves {
		for _, p := range c.Points {
			if !numeric.IsFinite(p.X) || !numeric.IsFinite(p.Y) {
				continue
			}
			found = true
			b.minX = math.Min(b.minX, p.X)
			b.maxX = math.Max(b.maxX, p.X)
			b.minY = math.Min(b.minY, p.Y)
			b.maxY = math.Max(b.maxY, p.Y)
		}
	}
	return b, found
}

// CurvesToSVG draws every curve in one shared frame with a legend. Non-finite
// points break the path. It returns "" when nothing is drawable.
func CurvesToSVG(curves []Curve, width, height int) string {
	b, ok := findBounds(curves)
	if !ok {
		return ""
	}

	// Add padding
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	rangeX = b.maxX - b.minX
	rangeY = b.maxY - b.minY

	project := func(p numeric.Point) (float64, float64) {
		x := (p.X - b.minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-b.minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// x axis when y = 0 is in view
	if b.minY < 0 && b.maxY > 0 {
		_, y0 := project(numeric.Point{})
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-width="1"/>
`, y0, width, y0))
	}

	for i, c := range curves {
		color := c.Color
		if color == "" {
			color = Palette[i%len(Palette)]
		}

		if c.Markers {
			sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, color))
			for _, p := range c.Points {
				if !numeric.IsFinite(p.X) || !numeric.IsFinite(p.Y) {
					continue
				}
				x, y := project(p)
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3"/>
`, x, y))
			}
			sb.WriteString("</g>\n")
		} else {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, color))
			pen := false
			for _, p := range c.Points {
				if !numeric.IsFinite(p.X) || !numeric.IsFinite(p.Y) {
					pen = false
					continue
				}
				x, y := project(p)
				if pen {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" M%.1f,%.1f", x, y))
					pen = true
				}
			}
			sb.WriteString(`"/>
`)
		}

		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16+14*i, color, escape(c.Name)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoryToSVG draws a single curve.
func TrajectoryToSVG(points []numeric.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}
	return CurvesToSVG([]Curve{{Points: points, Color: strokeColor}}, width, height)
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
