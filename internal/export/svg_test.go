package export

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/numlab/internal/numeric"
)

func TestTrajectoryToSVG(t *testing.T) {
	pts := []numeric.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}

	svg := TrajectoryToSVG(pts, 200, 100, "#00ff00")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document: %q", svg)
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("stroke color missing")
	}
	if strings.Count(svg, " M") != 1 || strings.Count(svg, " L") != 2 {
		t.Errorf("expected one subpath with two segments:\n%s", svg)
	}
}

func TestTrajectoryTooShort(t *testing.T) {
	if svg := TrajectoryToSVG([]numeric.Point{{X: 1, Y: 1}}, 100, 100, "#fff"); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}

func TestCurvesBreakOnNonFinite(t *testing.T) {
	pts := []numeric.Point{{X: 0, Y: 1}, {X: 1, Y: math.Inf(1)}, {X: 2, Y: 1}, {X: 3, Y: 2}}

	svg := CurvesToSVG([]Curve{{Name: "blow-up", Points: pts}}, 100, 100)
	if strings.Count(svg, " M") != 2 {
		t.Errorf("expected the path to restart after Inf:\n%s", svg)
	}
	if strings.Contains(svg, "Inf") || strings.Contains(svg, "NaN") {
		t.Error("non-finite coordinates leaked into the svg")
	}
}

func TestCurvesMarkersAndLegend(t *testing.T) {
	curves := []Curve{
		{Name: "f", Points: numeric.Sample(math.Sin, -3, 3, 50)},
		{Name: "nodes <10>", Points: []numeric.Point{{X: -3, Y: math.Sin(-3)}, {X: 3, Y: math.Sin(3)}}, Markers: true},
	}

	svg := CurvesToSVG(curves, 300, 200)
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 markers")
	}
	if !strings.Contains(svg, "nodes &lt;10&gt;") {
		t.Error("legend not escaped")
	}
	if !strings.Contains(svg, "<line") {
		t.Error("expected an x axis for a sign-changing curve")
	}
	if !strings.Contains(svg, Palette[0]) || !strings.Contains(svg, Palette[1]) {
		t.Error("palette colors not applied")
	}
}

func TestCurvesNothingDrawable(t *testing.T) {
	if svg := CurvesToSVG([]Curve{{Points: []numeric.Point{{X: math.NaN(), Y: 1}}}}, 10, 10); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
}
