package labs_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/labs"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/quadrature"
	"github.com/san-kum/numlab/internal/storage"
)

const tanhRoot = 1.1996786402577337

func tanhEquation(x float64) float64 { return x*math.Tanh(x) - 1 }

func riccati(x, y float64) float64 { return (y*y - y) / x }

var _ = Describe("Lab", func() {
	var (
		lab    *labs.Lab
		logBuf *bytes.Buffer
	)

	BeforeEach(func() {
		logBuf = &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		lab = labs.New(logger, experiment.NewRegistry())
	})

	Describe("Roots", func() {
		It("brackets and refines x*tanh(x) = 1 with every method", func() {
			res, err := lab.Roots(tanhEquation, -2, 2, 1e-6, "")
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Display).To(Equal([]numeric.Interval{{Low: -1.2, High: -1.1}, {Low: 1.1, High: 1.2}}))
			Expect(res.Curve).To(HaveLen(labs.CurvePoints))

			for _, roots := range [][]float64{res.Iteration, res.Bisection, res.NewtonRoots()} {
				Expect(roots).To(HaveLen(2))
				Expect(roots[0]).To(BeNumerically("~", -tanhRoot, 1e-6))
				Expect(roots[1]).To(BeNumerically("~", tanhRoot, 1e-6))
			}
			for _, n := range res.Newton {
				Expect(n.Converged).To(BeTrue())
			}
			Expect(logBuf.String()).To(ContainSubstring("msg=bracketed"))
		})

		It("runs only the requested method", func() {
			res, err := lab.Roots(tanhEquation, -2, 2, 1e-4, "newton")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Iteration).To(BeNil())
			Expect(res.Bisection).To(BeNil())
			Expect(res.Newton).To(HaveLen(2))
		})

		It("returns empty results when nothing changes sign", func() {
			res, err := lab.Roots(func(x float64) float64 { return x*x + 1 }, -2, 2, 1e-6, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Intervals).To(BeEmpty())
			Expect(res.Iteration).To(BeEmpty())
			Expect(res.Bisection).To(BeEmpty())
			Expect(res.Newton).To(BeEmpty())
		})

		It("keeps the other methods when newton meets a flat derivative", func() {
			step := func(x float64) float64 {
				if x < 0.05 {
					return -1
				}
				return 1
			}
			res, err := lab.Roots(step, -1, 1, 1e-6, "")
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Errors).To(HaveKey("newton"))
			Expect(res.Errors["newton"]).To(MatchError(numeric.ErrDegenerateDenominator))
			Expect(res.Newton).To(BeNil())
			Expect(res.Bisection).To(HaveLen(1))
			Expect(res.Bisection[0]).To(BeNumerically("~", 0.05, 1e-6))
			Expect(res.Iteration).To(HaveLen(1))
			Expect(logBuf.String()).To(ContainSubstring("root method failed"))
		})

		It("fails when the only requested method fails", func() {
			step := func(x float64) float64 {
				if x < 0.05 {
					return -1
				}
				return 1
			}
			_, err := lab.Roots(step, -1, 1, 1e-6, "newton")
			Expect(err).To(MatchError(numeric.ErrDegenerateDenominator))
		})

		It("rejects an unknown method and a degenerate range", func() {
			_, err := lab.Roots(tanhEquation, -2, 2, 1e-6, "secant")
			Expect(err).To(MatchError("unknown root method: secant"))

			_, err = lab.Roots(tanhEquation, 2, 2, 1e-6, "")
			Expect(err).To(MatchError(numeric.ErrDegenerateRange))
		})
	})

	Describe("Integrals", func() {
		f := func(x float64) float64 { return 1 / math.Sqrt(x*x+1) }
		exact := math.Asinh(1.2) - math.Asinh(0.2)

		It("validates the range before evaluating f", func() {
			calls := 0
			counted := func(x float64) float64 {
				calls++
				return x
			}
			_, err := lab.Integrals(counted, 1, 1, 100, "", 1)
			Expect(err).To(MatchError(numeric.ErrDegenerateRange))
			_, err = lab.Integrals(counted, 0, 1, 0, "trapezoid", 1)
			Expect(err).To(MatchError(numeric.ErrInvalidInput))
			Expect(calls).To(BeZero())
		})

		It("estimates with all three rules", func() {
			res, err := lab.Integrals(f, 0.2, 1.2, 1000, "", 7)
			Expect(err).NotTo(HaveOccurred())

			est := res.Estimates()
			Expect(est).To(HaveLen(3))
			Expect(est["rectangle"]).To(BeNumerically("~", exact, 1e-6))
			Expect(est["trapezoid"]).To(BeNumerically("~", exact, 1e-6))
			Expect(est["monte-carlo"]).To(BeNumerically("~", exact, 0.1))
			Expect(res.MonteCarlo.Samples).To(HaveLen(1000))
		})

		It("is reproducible for a fixed seed", func() {
			a, err := lab.Integrals(f, 0.2, 1.2, 100, "monte-carlo", 11)
			Expect(err).NotTo(HaveOccurred())
			b, err := lab.Integrals(f, 0.2, 1.2, 100, "monte-carlo", 11)
			Expect(err).NotTo(HaveOccurred())

			Expect(a.MonteCarlo.Value).To(Equal(b.MonteCarlo.Value))
			Expect(a.Rectangle).To(BeNil())
			Expect(a.Trapezoid).To(BeNil())
		})

		It("validates its inputs", func() {
			_, err := lab.Integrals(f, 0.2, 1.2, 10, "simpson", 1)
			Expect(err).To(MatchError("unknown quadrature rule: simpson"))

			_, err = lab.Integrals(f, 0.2, 1.2, 0, "", 1)
			Expect(err).To(MatchError(numeric.ErrInvalidInput))
		})

		It("keeps the geometry of each rule", func() {
			res, err := lab.Integrals(f, 0.2, 1.2, 10, "", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Rectangle.Midpoints).To(HaveLen(10))
			Expect(res.Trapezoid.Nodes).To(HaveLen(11))
			Expect(res.MonteCarlo.YMax).To(BeNumerically("~", f(0.2), 1e-9))
			Expect(res.MonteCarlo).To(BeAssignableToTypeOf(&quadrature.MonteCarloResult{}))
		})
	})

	Describe("Interpolate", func() {
		It("reproduces sin inside the node range", func() {
			res, err := lab.Interpolate(math.Sin, -3, 3, 10, -3, 3)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Nodes).To(HaveLen(11))
			Expect(res.Curve).To(HaveLen(labs.DetailPoints))
			Expect(res.MaxError).To(BeNumerically("<", 1e-4))
			for _, n := range res.Nodes {
				Expect(res.Poly.Eval(n.X)).To(BeNumerically("~", n.Y, 1e-12))
			}
		})

		It("extrapolates worse outside it", func() {
			res, err := lab.Interpolate(math.Sin, -3, 3, 10, -4, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.MaxError).To(BeNumerically(">", 1e-3))
		})

		It("rejects an empty display range", func() {
			_, err := lab.Interpolate(math.Sin, -3, 3, 10, 1, 1)
			Expect(err).To(MatchError(numeric.ErrDegenerateRange))
		})
	})

	Describe("Regress", func() {
		It("fits the decay samples with a negative slope", func() {
			res, err := lab.Regress(
				[]float64{1, 2, 3, 4, 5, 6, 7, 8},
				[]float64{521, 308, 240, 204, 183, 175, 159, 152},
			)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Line.K).To(BeNumerically("<", 0))
			Expect(res.Line.K).To(BeNumerically("~", -42.19047619047619, 1e-9))
			Expect(res.Samples).To(HaveLen(8))
			Expect(res.Fitted[0].X).To(Equal(1.0))
			Expect(res.Fitted[len(res.Fitted)-1].X).To(Equal(8.0))
		})

		It("rejects identical x values", func() {
			_, err := lab.Regress([]float64{2, 2, 2}, []float64{1, 2, 3})
			Expect(err).To(MatchError(numeric.ErrDegenerateDenominator))
		})
	})

	Describe("ODE", func() {
		It("integrates the Riccati problem with both steppers", func() {
			exact, err := experiment.RiccatiExact(1, 0.5)
			Expect(err).NotTo(HaveOccurred())

			res, err := lab.ODE(context.Background(), labs.ODEProblem{
				F: riccati, X0: 1, Y0: 0.5, End: 4, Step: 0.1, Exact: exact,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Steppers).To(Equal([]string{"euler", "rk4"}))
			for _, name := range res.Steppers {
				Expect(res.Runs[name].Trajectory.Last().X).To(BeNumerically(">=", 4))
			}
			Expect(res.Runs["rk4"].Metrics["max_abs_error"]).To(
				BeNumerically("<", res.Runs["euler"].Metrics["max_abs_error"]))
			Expect(res.Exact).To(HaveLen(labs.DetailPoints))
		})

		It("skips error metrics without an exact solution", func() {
			res, err := lab.ODE(context.Background(), labs.ODEProblem{
				F: riccati, X0: 1, Y0: 0.5, End: 2, Step: 0.25,
			}, "euler")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Runs).To(HaveLen(1))
			Expect(res.Runs["euler"].Metrics).NotTo(HaveKey("max_abs_error"))
			Expect(res.Exact).To(BeNil())
		})

		It("fails on a step pointing away from the end", func() {
			_, err := lab.ODE(context.Background(), labs.ODEProblem{
				F: riccati, X0: 1, Y0: 0.5, End: 4, Step: -0.1,
			})
			Expect(err).To(MatchError(numeric.ErrInvalidStep))
		})

		It("fails on an unknown stepper", func() {
			_, err := lab.ODE(context.Background(), labs.ODEProblem{
				F: riccati, X0: 1, Y0: 0.5, End: 4, Step: 0.1,
			}, "leapfrog")
			Expect(err).To(MatchError("unknown stepper: leapfrog"))
		})
	})

	Describe("Run", func() {
		It("runs every preset", func() {
			for _, name := range config.Labs {
				for _, preset := range config.ListPresets(name) {
					out, err := lab.Run(context.Background(), config.GetPreset(name, preset))
					Expect(err).NotTo(HaveOccurred(), "%s/%s", name, preset)
					Expect(out.Lab).To(Equal(name))
					Expect(out.Run.Series).NotTo(BeEmpty(), "%s/%s", name, preset)
				}
			}
		})

		It("adds the exact integral for catalog formulas", func() {
			out, err := lab.Run(context.Background(), config.GetPreset("integrate", "inv-sqrt"))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Run.Metrics["exact"]).To(BeNumerically("~", math.Asinh(1.2)-math.Asinh(0.2), 1e-15))
			Expect(out.Result.(*labs.IntegralsResult).Exact).NotTo(BeNil())
		})

		It("stores ODE runs per stepper with the exact curve", func() {
			out, err := lab.Run(context.Background(), config.GetPreset("ode", "riccati"))
			Expect(err).NotTo(HaveOccurred())

			_, ok := storage.Find(out.Run.Series, "exact")
			Expect(ok).To(BeTrue())
			Expect(out.Run.Metrics).To(HaveKey("rk4.max_abs_error"))
			Expect(out.Run.Metrics).To(HaveKey("euler.final_y"))
		})

		It("refuses an exact solution for an unknown equation", func() {
			cfg := config.GetPreset("ode", "riccati")
			cfg.Expr = "x + y"
			_, err := lab.Run(context.Background(), cfg)
			Expect(err).To(MatchError(numeric.ErrInvalidInput))
		})

		It("validates the config first", func() {
			cfg := config.DefaultConfig()
			cfg.Tolerance = 0.5
			_, err := lab.Run(context.Background(), cfg)
			Expect(err).To(MatchError(numeric.ErrInvalidInput))
		})

		It("reports bad expressions", func() {
			cfg := config.DefaultConfig()
			cfg.Expr = "x *"
			_, err := lab.Run(context.Background(), cfg)
			Expect(err).To(MatchError(numeric.ErrInvalidInput))
		})
	})
})
