package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/numlab/internal/logging"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	logger    = logging.Discard()

	// Lab flags. A flag only overrides the base config when it was set, so the
	// zero defaults below never reach a lab.
	configFile string
	preset     string
	save       bool
	noPlot     bool
	expr       string
	aText      string
	bText      string
	tol        float64
	divisions  int
	method     string
	seed       int64
	xText      string
	yText      string
	xmin       float64
	xmax       float64
	nodes      int
	x0         float64
	y0         float64
	step       float64
	exact      bool
)

// main registers the command tree and executes it; it exits with status 1
// when a command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "numlab",
		Short:        "numerical methods laboratory",
		Long:         "root finding, quadrature, regression, interpolation and ODE steppers with plots and stored runs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logging.Config{Level: logLevel, Format: logFormat})
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./data", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(
		rootsCmd(),
		integrateCmd(),
		regressCmd(),
		interpolateCmd(),
		odeCmd(),
		sweepCmd(),
		runCmd(),
		presetsCmd(),
		listCmd(),
		plotCmd(),
		exportCSVCmd(),
		exportJSONCmd(),
		exportSVGCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
