package numeric

import (
	"errors"
	"math"
	"testing"
)

func TestInterval(t *testing.T) {
	iv := Interval{Low: 1.2345, High: 1.3456}
	if iv.Degenerate() {
		t.Error("expected non-degenerate interval")
	}
	if math.Abs(iv.Width()-0.1111) > 1e-12 {
		t.Errorf("Width() = %v", iv.Width())
	}
	r := iv.Round(2)
	if r.Low != 1.23 || r.High != 1.35 {
		t.Errorf("Round(2) = %+v", r)
	}
	if !(Interval{Low: 2, High: 2}).Degenerate() {
		t.Error("expected degenerate interval")
	}
}

func TestLinspace(t *testing.T) {
	tests := []struct {
		a, b float64
		n    int
		want []float64
	}{
		{0, 1, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
		{2, 3, 1, []float64{2}},
		{0, 1, 0, nil},
	}

	for _, tt := range tests {
		got := Linspace(tt.a, tt.b, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("Linspace(%v, %v, %d) len = %d, want %d", tt.a, tt.b, tt.n, len(got), len(tt.want))
		}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-12 {
				t.Errorf("Linspace(%v, %v, %d)[%d] = %v, want %v", tt.a, tt.b, tt.n, i, got[i], tt.want[i])
			}
		}
	}
}

func TestMenus(t *testing.T) {
	for _, eps := range []float64{1e-4, 1e-6, 1e-8} {
		if !IsTolerance(eps) {
			t.Errorf("IsTolerance(%v) = false", eps)
		}
	}
	if IsTolerance(1e-3) {
		t.Error("1e-3 is not a menu tolerance")
	}
	if !IsDivision(1000) || IsDivision(7) {
		t.Error("IsDivision mismatch")
	}
}

func TestParseFloats(t *testing.T) {
	vals, err := ParseFloats("x", "1 2,3\t4.5")
	if err != nil {
		t.Fatalf("ParseFloats failed: %v", err)
	}
	if len(vals) != 4 || vals[3] != 4.5 {
		t.Errorf("ParseFloats = %v", vals)
	}

	if _, err := ParseFloats("x", "1 two 3"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseRange(t *testing.T) {
	a, b, err := ParseRange("-2", " 2 ")
	if err != nil || a != -2 || b != 2 {
		t.Fatalf("ParseRange = %v, %v, %v", a, b, err)
	}
	if _, _, err := ParseRange("2", "2"); !errors.Is(err, ErrDegenerateRange) {
		t.Errorf("expected ErrDegenerateRange, got %v", err)
	}
	if _, _, err := ParseRange("abc", "2"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestError(t *testing.T) {
	err := &Error{Op: "newton", X: 0.5, Iteration: 3, Wrapped: ErrDegenerateDenominator}
	if !errors.Is(err, ErrDegenerateDenominator) {
		t.Error("Error does not unwrap to its sentinel")
	}
	expected := "newton: x=0.5 iteration 3: numeric: zero denominator"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCheckRange(t *testing.T) {
	if err := CheckRange("op", 0, 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckRange("op", 1, 0); !errors.Is(err, ErrDegenerateRange) {
		t.Errorf("expected ErrDegenerateRange, got %v", err)
	}
	if err := CheckRange("op", math.NaN(), 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
