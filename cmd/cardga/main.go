package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	ga "nickandperla.net/card_ga"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configPath   string
	population   int
	seed         int64
	generations  int
	mutationRate float64
	quiet        bool
	history      bool
	logLevel     string
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		logrus.WithError(err).Fatal("cardga failed")
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cardga",
		Short: "Split the cards 1..10 into a product pile near 360 and a sum pile near 36",
		Long: `cardga evolves a population of five card product piles. The remaining
five cards form the sum pile. A run stops when an individual scores the win
score or when the generation cap is reached.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "TOML config file with run parameters")
	flags.IntVar(&opts.population, "population", ga.DefaultPopulationSize, "population size")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed (0 = random)")
	flags.IntVar(&opts.generations, "generations", ga.DefaultMaxGenerations, "maximum number of generations")
	flags.Float64Var(&opts.mutationRate, "mutation-rate", ga.DefaultMutationRate, "chance an offspring gets one gene mutated")
	flags.BoolVar(&opts.quiet, "quiet", false, "only print the final report")
	flags.BoolVar(&opts.history, "history", false, "print the generations where the best fitness improved")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	return cmd
}

func run(cmd *cobra.Command, opts *options, out io.Writer) error {
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	config, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	engineOpts := []ga.Option{ga.WithLogger(logger)}

	trace := ga.NewTraceObserver(out)
	if config.Trace {
		engineOpts = append(engineOpts, ga.WithObserver(trace))
	}

	var history *ga.History
	if config.History {
		if history, err = ga.NewHistory(logrus.NewEntry(logger)); err != nil {
			return err
		}
		defer history.Close()
		engineOpts = append(engineOpts, ga.WithObserver(history))
	}

	engine, err := ga.NewGenerationEngine(config, engineOpts...)
	if err != nil {
		return err
	}

	result, err := engine.Run()
	if err != nil {
		return err
	}

	if !config.Trace {
		trace.RunFinished(result)
	}

	if history != nil {
		if err := writeHistory(out, history, result.RunID); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig starts from the defaults, overlays the config file and then
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command, opts *options) (*ga.Config, error) {
	config := ga.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if config, err = ga.LoadConfig(opts.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("population") {
		config.PopulationSize = opts.population
	}
	if flags.Changed("seed") {
		config.Seed = opts.seed
	}
	if flags.Changed("generations") {
		config.MaxGenerations = opts.generations
	}
	if flags.Changed("mutation-rate") {
		config.MutationRate = opts.mutationRate
	}
	if flags.Changed("quiet") {
		config.Trace = !opts.quiet
	}
	if flags.Changed("history") {
		config.History = opts.history
	}

	return config, config.Validate()
}

func writeHistory(out io.Writer, history *ga.History, runID string) error {
	if err := history.Err(); err != nil {
		return err
	}
	gens, err := history.Improvements(runID)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nBest fitness by generation:")
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GEN\tBEST\tMEAN\tSTDDEV\tMUTATIONS")
	for _, g := range gens {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.2f\t%d\n", g.Generation, g.Best, g.Mean, g.StdDev, g.Mutations)
	}
	return tw.Flush()
}
