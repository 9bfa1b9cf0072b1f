package main

import (
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/storage"
)

const (
	plotWidth  = 80
	plotHeight = 15
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Green,
	asciigraph.Blue,
	asciigraph.Magenta,
	asciigraph.Yellow,
	asciigraph.Red,
	asciigraph.Cyan,
}

// plotSeries draws every curve-like series on one shared x grid. Scattered
// series such as Monte Carlo samples are skipped. It returns "" when nothing
// is plottable.
func plotSeries(series []storage.Series, caption string) string {
	var curves []storage.Series
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		if len(s.Points) < 2 || !monotonic(s.Points) {
			continue
		}
		curves = append(curves, s)
		for _, p := range s.Points {
			lo = math.Min(lo, p.X)
			hi = math.Max(hi, p.X)
		}
	}
	if len(curves) == 0 || !(lo < hi) {
		return ""
	}

	data := make([][]float64, 0, len(curves))
	colors := make([]asciigraph.AnsiColor, 0, len(curves))
	names := make([]string, 0, len(curves))
	for i, s := range curves {
		ys := resample(s.Points, lo, hi, plotWidth)
		if !hasFinite(ys) {
			continue
		}
		data = append(data, ys)
		colors = append(colors, seriesColors[i%len(seriesColors)])
		names = append(names, s.Name)
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(caption+" ["+strings.Join(names, ", ")+"]"),
	)
}

// monotonic reports whether the x values never change direction.
func monotonic(pts []numeric.Point) bool {
	up, down := false, false
	for i := 1; i < len(pts); i++ {
		switch {
		case pts[i].X > pts[i-1].X:
			up = true
		case pts[i].X < pts[i-1].X:
			down = true
		}
	}
	return !(up && down)
}

// resample evaluates the piecewise linear curve through pts at n equally
// spaced x in [lo, hi]. Outside the curve's own range and at non-finite
// points the value is NaN, which the plot leaves blank.
func resample(pts []numeric.Point, lo, hi float64, n int) []float64 {
	sorted := pts
	if len(pts) > 1 && pts[0].X > pts[len(pts)-1].X {
		sorted = make([]numeric.Point, len(pts))
		for i, p := range pts {
			sorted[len(pts)-1-i] = p
		}
	}

	out := make([]float64, n)
	j := 0
	for i, x := range numeric.Linspace(lo, hi, n) {
		out[i] = math.NaN()
		for j+1 < len(sorted) && sorted[j+1].X < x {
			j++
		}
		if j+1 >= len(sorted) {
			if x == sorted[j].X {
				out[i] = finiteOrNaN(sorted[j].Y)
			}
			continue
		}
		p, q := sorted[j], sorted[j+1]
		if x < p.X || x > q.X {
			continue
		}
		if q.X == p.X {
			out[i] = finiteOrNaN(p.Y)
			continue
		}
		t := (x - p.X) / (q.X - p.X)
		out[i] = finiteOrNaN(p.Y + t*(q.Y-p.Y))
	}
	return out
}

func finiteOrNaN(v float64) float64 {
	if numeric.IsFinite(v) {
		return v
	}
	return math.NaN()
}

func hasFinite(vs []float64) bool {
	for _, v := range vs {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}
