package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lytics/graphlayout"
	"github.com/lytics/graphlayout/internal/graphio"
)

// layoutOptions are the layout command flags.
type layoutOptions struct {
	output       string
	outputFormat string
	inputFormat  string
	configPath   string

	iterations    int
	linLog        bool
	kGravity      float64
	strongGravity bool
	kRepulsive    float64
	exponent      float64
	noHubs        bool
	tolerance     float64
	kSpeed        float64
	seed          int64
	workers       int
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOptions
	defaults := graphlayout.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "layout [graph]",
		Short: "Compute a ForceAtlas2 layout for a graph",
		Long: `Compute a ForceAtlas2 layout for a graph.

The input is an edge list ("u v [weight]" per line), a graph6 string (.g6) or a
JSON adjacency matrix (.json). Directed input is treated as undirected. The
output has one row per node with its x and y coordinates.

Parameters are read from --config (TOML, [layout] table) and overridden by
flags given on the command line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, conf, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", string(graphio.OutputCSV), "output format: csv, json")
	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input format: edgelist, graph6, matrix (default: by extension)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML file with layout parameters")

	cmd.Flags().IntVarP(&opts.iterations, "iterations", "n", *defaults.NIter, "maximum number of iterations")
	cmd.Flags().BoolVar(&opts.linLog, "lin-log", *defaults.LinLog, "logarithmic attraction")
	cmd.Flags().Float64Var(&opts.kGravity, "k-gravity", *defaults.KGravity, "gravity constant")
	cmd.Flags().BoolVar(&opts.strongGravity, "strong-gravity", *defaults.StrongGravity, "gravity grows with distance")
	cmd.Flags().Float64Var(&opts.kRepulsive, "k-repulsive", *defaults.KRepulsive, "repulsion constant")
	cmd.Flags().Float64Var(&opts.exponent, "exponent", *defaults.Exponent, "edge weight exponent in the attraction (0 disables)")
	cmd.Flags().BoolVar(&opts.noHubs, "no-hubs", *defaults.NoHubs, "dampen attraction of high degree nodes")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "swing tolerance (default: by graph size)")
	cmd.Flags().Float64Var(&opts.kSpeed, "k-speed", *defaults.KSpeed, "speed constant")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed for the initial positions (default: random)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "goroutines per force sweep (default: GOMAXPROCS)")

	return cmd
}

// config layers the flags that were set explicitly over the config file.
func (o layoutOptions) config(cmd *cobra.Command) (graphlayout.Config, error) {
	var conf graphlayout.Config
	if o.configPath != "" {
		var err error
		if conf, err = loadConfigFile(o.configPath); err != nil {
			return conf, err
		}
	}

	flags := cmd.Flags()
	var over graphlayout.Config
	if flags.Changed("iterations") {
		over.NIter = graphlayout.Int(o.iterations)
	}
	if flags.Changed("lin-log") {
		over.LinLog = graphlayout.Bool(o.linLog)
	}
	if flags.Changed("k-gravity") {
		over.KGravity = graphlayout.Float(o.kGravity)
	}
	if flags.Changed("strong-gravity") {
		over.StrongGravity = graphlayout.Bool(o.strongGravity)
	}
	if flags.Changed("k-repulsive") {
		over.KRepulsive = graphlayout.Float(o.kRepulsive)
	}
	if flags.Changed("exponent") {
		over.Exponent = graphlayout.Float(o.exponent)
	}
	if flags.Changed("no-hubs") {
		over.NoHubs = graphlayout.Bool(o.noHubs)
	}
	if flags.Changed("tolerance") {
		over.Tolerance = graphlayout.Float(o.tolerance)
	}
	if flags.Changed("k-speed") {
		over.KSpeed = graphlayout.Float(o.kSpeed)
	}
	if flags.Changed("seed") {
		over.Seed = graphlayout.Int64(o.seed)
	}
	if flags.Changed("workers") {
		over.Workers = graphlayout.Int(o.workers)
	}

	conf = conf.Merge(&over)
	return conf, conf.Validate()
}

// runLayout loads the graph, computes the layout and writes the coordinates.
func (c *CLI) runLayout(ctx context.Context, input string, opts layoutOptions, conf graphlayout.Config, stdout io.Writer) error {
	format := graphio.FormatFromPath(input)
	if opts.inputFormat != "" {
		var err error
		if format, err = graphio.ParseFormat(opts.inputFormat); err != nil {
			return err
		}
	}
	outFormat, err := graphio.ParseOutputFormat(opts.outputFormat)
	if err != nil {
		return err
	}

	m, labels, err := graphio.ReadFile(input, format)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	n, _ := m.Dims()
	c.Logger.Debug("loaded graph", "path", input, "format", format, "nodes", n)

	engine := graphlayout.NewEngine(graphlayout.WithLogger(c.Logger))
	prog := newProgress(c.Logger)
	res, err := engine.Run(m, ctx.Done(), &conf)
	if errors.Is(err, graphlayout.ErrSimulationStopped) && ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Laid out %d nodes", res.Nodes()),
		"iterations", res.Iterations,
		"converged", res.Converged)

	if opts.output == "" || opts.output == "-" {
		return graphio.WritePositions(stdout, outFormat, labels, res.Positions)
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	if err := graphio.WritePositions(f, outFormat, labels, res.Positions); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", opts.output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write output %s: %w", opts.output, err)
	}
	c.Logger.Info("Wrote positions", "path", opts.output)
	return nil
}
