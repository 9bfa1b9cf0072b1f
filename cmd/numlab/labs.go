package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/labs"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/report"
	"github.com/san-kum/numlab/internal/storage"
)

// defaultPresets is the base config of a lab command run without --config or --preset.
var defaultPresets = map[string]string{
	"roots":       "tanh",
	"integrate":   "inv-sqrt",
	"regress":     "decay",
	"interpolate": "sin",
	"ode":         "riccati",
}

func labCmd(lab, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   lab,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := baseConfig(lab)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}
			return execute(cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", fmt.Sprintf("preset name (available: %v)", config.ListPresets(lab)))
	cmd.Flags().BoolVar(&save, "save", false, "store the run under --data")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plot")
	return cmd
}

func rootsCmd() *cobra.Command {
	cmd := labCmd("roots", "bracket the roots of f on [a, b] and refine them")
	cmd.Flags().StringVar(&expr, "expr", "", "function of x")
	cmd.Flags().StringVar(&aText, "a", "", "left border")
	cmd.Flags().StringVar(&bText, "b", "", "right border")
	cmd.Flags().Float64Var(&tol, "tol", 0, fmt.Sprintf("tolerance %v", numeric.Tolerances))
	cmd.Flags().StringVar(&method, "method", "", "iteration, bisection or newton (default all)")
	return cmd
}

func integrateCmd() *cobra.Command {
	cmd := labCmd("integrate", "integrate f over [a, b]")
	cmd.Flags().StringVar(&expr, "expr", "", "function of x")
	cmd.Flags().StringVar(&aText, "a", "", "lower bound")
	cmd.Flags().StringVar(&bText, "b", "", "upper bound")
	cmd.Flags().IntVar(&divisions, "divisions", 0, fmt.Sprintf("division count %v", numeric.Divisions))
	cmd.Flags().StringVar(&method, "method", "", "rectangle, trapezoid or monte-carlo (default all)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "monte carlo seed")
	return cmd
}

func regressCmd() *cobra.Command {
	cmd := labCmd("regress", "fit y = kx + b by least squares")
	cmd.Flags().StringVar(&xText, "x", "", `x samples, e.g. "1 2 3"`)
	cmd.Flags().StringVar(&yText, "y", "", "y samples")
	return cmd
}

func interpolateCmd() *cobra.Command {
	cmd := labCmd("interpolate", "interpolate f through equally spaced nodes")
	cmd.Flags().StringVar(&expr, "expr", "", "function of x")
	cmd.Flags().StringVar(&aText, "a", "", "first node")
	cmd.Flags().StringVar(&bText, "b", "", "last node")
	cmd.Flags().Float64Var(&xmin, "xmin", 0, "display range start")
	cmd.Flags().Float64Var(&xmax, "xmax", 0, "display range end")
	cmd.Flags().IntVar(&nodes, "nodes", 0, "node intervals (n+1 nodes)")
	return cmd
}

func odeCmd() *cobra.Command {
	cmd := labCmd("ode", "integrate y' = f(x, y) from x0 to b")
	cmd.Flags().StringVar(&expr, "expr", "", "right-hand side in x and y")
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial x")
	cmd.Flags().Float64Var(&y0, "y0", 0, "initial y")
	cmd.Flags().StringVar(&bText, "b", "", "end of integration")
	cmd.Flags().Float64Var(&step, "h", 0, "step size")
	cmd.Flags().StringVar(&method, "method", "", "euler or rk4 (default both)")
	cmd.Flags().BoolVar(&exact, "exact", false, "compare against the known exact solution")
	return cmd
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a lab from a config file or a lab/name preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.Config
			switch {
			case configFile != "":
				c, err := config.Load(configFile)
				if err != nil {
					return err
				}
				cfg = c
			case preset != "":
				lab, name, ok := strings.Cut(preset, "/")
				if !ok {
					return fmt.Errorf("preset must be lab/name, got %q", preset)
				}
				cfg = config.GetPreset(lab, name)
				if cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(lab))
				}
			default:
				return fmt.Errorf("run needs --config or --preset")
			}
			return execute(cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "preset as lab/name, e.g. ode/riccati")
	cmd.Flags().BoolVar(&save, "save", false, "store the run under --data")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plot")
	return cmd
}

// baseConfig loads --config, then --preset, then the lab's default preset.
func baseConfig(lab string) (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		if cfg.Lab != lab {
			return nil, fmt.Errorf("config %s is for lab %s, not %s", configFile, cfg.Lab, lab)
		}
		return cfg, nil
	}

	name := preset
	if name == "" {
		name = defaultPresets[lab]
	}
	cfg := config.GetPreset(lab, name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(lab))
	}
	return cfg, nil
}

// applyFlags copies every flag the user set onto cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	set := cmd.Flags().Changed
	var err error

	if set("expr") {
		cfg.Expr = expr
		// the preset's exact solution belongs to the preset's expression
		if !set("exact") {
			cfg.Exact = false
		}
	}
	switch {
	case set("a") && set("b"):
		if cfg.A, cfg.B, err = numeric.ParseRange(aText, bText); err != nil {
			return err
		}
	case set("a"):
		if cfg.A, err = numeric.ParseFloat("a", aText); err != nil {
			return err
		}
	case set("b"):
		if cfg.B, err = numeric.ParseFloat("b", bText); err != nil {
			return err
		}
	}
	if set("tol") {
		cfg.Tolerance = tol
	}
	if set("divisions") {
		cfg.Divisions = divisions
	}
	if set("method") {
		cfg.Method = method
	}
	if set("seed") {
		cfg.Seed = seed
	}
	if set("x") {
		if cfg.X, err = numeric.ParseFloats("x", xText); err != nil {
			return err
		}
	}
	if set("y") {
		if cfg.Y, err = numeric.ParseFloats("y", yText); err != nil {
			return err
		}
	}
	if set("xmin") {
		cfg.XMin = xmin
	}
	if set("xmax") {
		cfg.XMax = xmax
	}
	if set("nodes") {
		cfg.Nodes = nodes
	}
	if set("x0") {
		cfg.X0 = x0
	}
	if set("y0") {
		cfg.Y0 = y0
	}
	if set("h") {
		cfg.Step = step
	}
	if set("exact") {
		cfg.Exact = exact
	}
	return nil
}

func execute(cmd *cobra.Command, cfg *config.Config) error {
	start := time.Now()
	out, err := labs.New(logger, nil).Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	logger.Debug("lab finished", "lab", cfg.Lab, "elapsed", time.Since(start))

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, render(out, cfg))

	if !noPlot {
		if graph := plotSeries(out.Run.Series, fmt.Sprintf("%s: %s", cfg.Lab, cfg.Expr)); graph != "" {
			fmt.Fprintln(w, graph)
		}
	}

	if save {
		return saveRun(w, out.Run)
	}
	return nil
}

func render(out *labs.Outcome, cfg *config.Config) string {
	switch res := out.Result.(type) {
	case *labs.RootsResult:
		return report.Roots(res, cfg.Tolerance)
	case *labs.IntegralsResult:
		return report.Integrals(res)
	case *labs.RegressionResult:
		return report.Regression(res)
	case *labs.InterpolationResult:
		return report.Interpolation(res)
	case *labs.ODEResult:
		return report.ODE(res)
	default:
		return fmt.Sprintf("%v", res)
	}
}

func saveRun(w io.Writer, run storage.Run) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(run)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", id, "dir", dataDir)
	fmt.Fprintf(w, "saved run: %s\n", id)
	return nil
}
