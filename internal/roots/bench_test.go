package roots

import (
	"testing"

	"github.com/san-kum/numlab/internal/numeric"
)

func BenchmarkBracket(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Bracket(tanhEquation, -2, 2)
	}
}

func BenchmarkIterate(b *testing.B) {
	intervals, _ := Bracket(tanhEquation, -2, 2)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Iterate(tanhEquation, intervals, 1e-8)
	}
}

func BenchmarkBisect(b *testing.B) {
	iv := numeric.Interval{Low: 1.1, High: 1.2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Bisect(tanhEquation, iv, 1e-8)
	}
}

func BenchmarkNewton(b *testing.B) {
	iv := numeric.Interval{Low: 1.1, High: 1.2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Newton(tanhEquation, iv, 1e-8)
	}
}
