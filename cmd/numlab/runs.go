package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/export"
	"github.com/san-kum/numlab/internal/storage"
)

var (
	outFile   string
	svgWidth  int
	svgHeight int
	svgSeries string
)

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [lab]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			labNames := config.Labs
			if len(args) > 0 {
				if config.ListPresets(args[0]) == nil {
					return fmt.Errorf("unknown lab: %s (available: %v)", args[0], config.Labs)
				}
				labNames = args[:1]
			}
			for _, lab := range labNames {
				fmt.Fprintf(w, "%s:\n", lab)
				for _, name := range config.ListPresets(lab) {
					p := config.GetPreset(lab, name)
					desc := p.Expr
					if desc == "" {
						desc = fmt.Sprintf("%d samples", len(p.X))
					}
					fmt.Fprintf(w, "  %-16s %s\n", name, desc)
				}
			}
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
}

func plotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the curves of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
}

func exportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run curves to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
}

func exportJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	return cmd
}

func exportSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run curves to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	cmd.Flags().IntVar(&svgHeight, "height", 500, "image height")
	cmd.Flags().StringVar(&svgSeries, "series", "", "draw only this series")
	return cmd
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLAB\tTIME\tEXPR\tMETHOD\tSERIES")

	for _, run := range runs {
		expr, method := "", "all"
		if run.Config != nil {
			expr = run.Config.Expr
			if run.Config.Method != "" {
				method = run.Config.Method
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Lab,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			expr,
			method,
			strings.Join(run.Series, ","),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "run: %s\n", meta.ID)
	fmt.Fprintf(w, "lab: %s\n", meta.Lab)

	keys := make([]string, 0, len(meta.Metrics))
	for k := range meta.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %.10g\n", k, meta.Metrics[k])
	}
	fmt.Fprintln(w)

	caption := meta.Lab
	if meta.Config != nil && meta.Config.Expr != "" {
		caption += ": " + meta.Config.Expr
	}
	graph := plotSeries(series, caption)
	if graph == "" {
		return fmt.Errorf("no data to plot")
	}
	fmt.Fprintln(w, graph)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(cmd.OutOrStdout(), series)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		if err := storage.ExportJSON(outFile, data); err != nil {
			return err
		}
		logger.Info("exported", "run", data.ID, "file", outFile)
		return nil
	}
	return storage.WriteJSON(cmd.OutOrStdout(), data)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	var svg string
	if svgSeries != "" {
		s, ok := storage.Find(series, svgSeries)
		if !ok {
			return fmt.Errorf("run %s has no series %q", args[0], svgSeries)
		}
		svg = export.TrajectoryToSVG(s.Points, svgWidth, svgHeight, export.Palette[0])
	} else {
		curves := make([]export.Curve, len(series))
		for i, s := range series {
			curves[i] = export.Curve{
				Name:    s.Name,
				Points:  s.Points,
				Markers: !monotonic(s.Points) || s.Name == "nodes" || s.Name == "samples",
			}
		}
		svg = export.CurvesToSVG(curves, svgWidth, svgHeight)
	}
	if svg == "" {
		return fmt.Errorf("no data to export")
	}
	if outFile == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), svg)
		return err
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("exported", "run", args[0], "file", outFile)
	return nil
}
