package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/metasystem/steering/pkg/cyber"
	apperrors "github.com/metasystem/steering/pkg/errors"
	"github.com/metasystem/steering/pkg/influence"
	stio "github.com/metasystem/steering/pkg/io"
	"github.com/metasystem/steering/pkg/render"
	"github.com/metasystem/steering/pkg/steering"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatDOT   = "dot"
	formatSVG   = "svg"
	formatPNG   = "png"
)

var validFormats = map[string]bool{
	formatTable: true, formatJSON: true, formatDOT: true, formatSVG: true, formatPNG: true,
}

// influenceOpts holds the command-line flags for the influence command.
type influenceOpts struct {
	targets      []string
	goal         string
	top          int
	maxDepth     int
	maxPaths     int
	minInfluence float64
	format       string
	output       string
	detailed     bool
	noCache      bool
	refresh      bool
	objects      string
	correlations string
}

// influenceCommand creates the influence command.
func (c *CLI) influenceCommand() *cobra.Command {
	opts := influenceOpts{goal: string(cyber.Strengthen), format: formatTable}

	cmd := &cobra.Command{
		Use:   "influence [dataset]",
		Short: "Rank the objects that can steer a target",
		Long: `Search backwards from the target for chains of influence, score every
influencer by control leverage and recommend where to act.

The dataset is a JSON, YAML or TOML file with "objects" and "correlations".
Use --objects and --correlations to pass the two lists as separate JSON files.
Without --target in an interactive terminal, a picker lists the objects.`,
		Example: `  steering influence graph.yaml --target law --goal weaken
  steering influence graph.json --target law --format svg -o law.svg
  steering influence --objects objs.json --correlations rels.json --target law`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validFormats[opts.format] {
				return apperrors.New(apperrors.ErrCodeInvalidInput,
					"invalid format %q (must be table, json, dot, svg or png)", opts.format)
			}
			c.applySearchFlags(cmd, &opts)
			dataset := ""
			if len(args) == 1 {
				dataset = args[0]
			}
			return c.runInfluence(cmd.Context(), dataset, &opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.targets, "target", "t", nil, "target object id (repeat or comma-separate for several)")
	cmd.Flags().StringVarP(&opts.goal, "goal", "g", opts.goal, "steering goal: strengthen or weaken")
	cmd.Flags().IntVar(&opts.top, "top", 0, "number of recommendations (default from config)")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum path length in edges (default from config)")
	cmd.Flags().IntVar(&opts.maxPaths, "max-paths", 0, "maximum number of paths recorded (default from config)")
	cmd.Flags().Float64Var(&opts.minInfluence, "min-influence", 0, "prune paths weaker than this (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table, json, dot, svg, png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result to a file")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show leverage details in diagrams")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().StringVar(&opts.objects, "objects", "", "JSON file with the object list")
	cmd.Flags().StringVar(&opts.correlations, "correlations", "", "JSON file with the correlation list")

	return cmd
}

// applySearchFlags fills unset search flags from the loaded configuration.
func (c *CLI) applySearchFlags(cmd *cobra.Command, opts *influenceOpts) {
	s := c.Config.Search
	if !cmd.Flags().Changed("top") {
		opts.top = s.Top
	}
	if !cmd.Flags().Changed("max-depth") {
		opts.maxDepth = s.MaxDepth
	}
	if !cmd.Flags().Changed("max-paths") {
		opts.maxPaths = s.MaxPaths
	}
	if !cmd.Flags().Changed("min-influence") {
		opts.minInfluence = s.MinInfluence
	}
}

func (c *CLI) runInfluence(ctx context.Context, dataset string, opts *influenceOpts) error {
	prog := newProgress(c.Logger)
	ds, err := loadDataset(dataset, opts.objects, opts.correlations)
	if err != nil {
		return err
	}
	prog.done("loaded dataset", "objects", len(ds.Objects), "correlations", len(ds.Correlations))

	targets := opts.targets
	if len(targets) == 0 {
		if !interactive() {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "--target is required when not running in a terminal")
		}
		id, err := pickTarget(ds.Objects)
		if err != nil {
			return err
		}
		if id == "" {
			printInfo("No target selected")
			return nil
		}
		targets = []string{id}
	}
	if len(targets) > 1 && opts.format != formatTable && opts.format != formatJSON {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "format %q supports a single target", opts.format)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	req := steering.Request{
		Objects:      ds.Objects,
		Correlations: ds.Correlations,
		TargetID:     targets[0],
		Goal:         opts.goal,
		Top:          opts.top,
		Limits: &influence.Limits{
			MaxDepth:     opts.maxDepth,
			MaxPaths:     opts.maxPaths,
			MinInfluence: opts.minInfluence,
		},
		Refresh: opts.refresh,
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Searching influence on %s...", strings.Join(targets, ", ")))
	spinner.Start()

	var (
		sims   []*steering.Simulation
		cached bool
	)
	if len(targets) == 1 {
		var sim *steering.Simulation
		sim, cached, err = runner.Simulate(ctx, req)
		if sim != nil {
			sims = []*steering.Simulation{sim}
		}
	} else {
		sims, err = runner.SimulateMany(ctx, req, targets)
	}
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Search failed")
		return err
	}
	spinner.Stop()

	return c.writeSimulations(sims, cached, opts)
}

// loadDataset reads either one dataset file or the objects/correlations pair.
func loadDataset(path, objectsPath, correlationsPath string) (*stio.Dataset, error) {
	if objectsPath == "" && correlationsPath == "" {
		if path == "" {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "a dataset file or --objects is required")
		}
		return stio.ImportDataset(path)
	}
	if path != "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "pass either a dataset file or --objects/--correlations, not both")
	}
	if objectsPath == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "--correlations requires --objects")
	}

	objects, err := stio.ImportObjects(objectsPath)
	if err != nil {
		return nil, err
	}
	ds := &stio.Dataset{Objects: objects, Correlations: []cyber.Correlation{}}
	if correlationsPath != "" {
		if ds.Correlations, err = stio.ImportCorrelations(correlationsPath); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// interactive reports whether stdin is a terminal.
func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// =============================================================================
// Output
// =============================================================================

func (c *CLI) writeSimulations(sims []*steering.Simulation, cached bool, opts *influenceOpts) error {
	var (
		data []byte
		err  error
	)
	switch opts.format {
	case formatTable:
		if opts.output == "" {
			for i, sim := range sims {
				if i > 0 {
					fmt.Fprintln(c.out)
				}
				c.printSimulation(c.out, sim, cached)
			}
			return nil
		}
		var b strings.Builder
		for _, sim := range sims {
			writeSimulationTable(&b, sim)
		}
		data = []byte(b.String())
	case formatJSON:
		var v any = sims
		if len(sims) == 1 {
			v = sims[0]
		}
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case formatDOT:
		data = []byte(diagram(sims[0], opts.detailed))
	case formatSVG:
		data, err = render.RenderSVG(diagram(sims[0], opts.detailed))
	case formatPNG:
		if opts.output == "" {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "png output requires -o")
		}
		data, err = render.RenderPNG(diagram(sims[0], opts.detailed))
	}
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = c.out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "write %s", opts.output)
	}
	printSuccess("Wrote %s", opts.format)
	printFile(opts.output)
	return nil
}

func diagram(sim *steering.Simulation, detailed bool) string {
	return render.ToDOT(sim.TargetObjectID, sim.TargetObjectName, sim.InfluentialNodes, render.Options{Detailed: detailed})
}

// printSimulation writes the styled ranking and recommendations to w and the
// summary line to the status stream.
func (c *CLI) printSimulation(w io.Writer, sim *steering.Simulation, cached bool) {
	writeSimulationTable(w, sim)
	printStats(sim.Metadata.TotalPathsAnalyzed, len(sim.InfluentialNodes), cached)
	for _, warning := range sim.Warnings {
		printWarning("%s", warning)
	}
}

func writeSimulationTable(w io.Writer, sim *steering.Simulation) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Influence on %s (%s)", sim.TargetObjectName, sim.TargetObjectID)))
	printKeyValue(w, "Goal", string(sim.Goal))
	fmt.Fprintln(w)

	if len(sim.InfluentialNodes) > 0 {
		fmt.Fprintln(w, rankingTable(sim.InfluentialNodes))
		fmt.Fprintln(w)
	}

	primary := sim.PrimaryRecommendation
	if primary.ObjectID == "" {
		printKeyValue(w, "Primary", StyleDim.Render("none"))
		return
	}
	printKeyValue(w, "Primary", primary.Action)
	printKeyValue(w, "", StyleDim.Render(primary.Rationale))
	printKeyValue(w, "Confidence", fmt.Sprintf("%.2f", primary.Confidence))
	for i, alt := range sim.AlternativeRecommendations {
		key := ""
		if i == 0 {
			key = "Alternatives"
		}
		printKeyValue(w, key, fmt.Sprintf("%s  %s", alt.Action, StyleDim.Render(fmt.Sprintf("impact %.2f", alt.ExpectedImpact))))
	}
}

// rankingTable renders influencers ordered by control leverage.
func rankingTable(nodes []influence.Node) string {
	rows := make([][]string, 0, len(nodes))
	for i, n := range nodes {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			n.ObjectName,
			fmt.Sprintf("%.3f", n.ControlLeverage),
			fmt.Sprintf("%.3f", n.InfluenceStrength),
			fmt.Sprintf("%d", n.PathCount),
			fmt.Sprintf("×%.2f", n.FeedbackMultiplier),
			fmt.Sprintf("%.2f", n.CertaintyScore),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Object", "Leverage", "Strength", "Paths", "Feedback", "Certainty").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 2:
				return StyleNumber
			case col == 0 || col >= 4:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
