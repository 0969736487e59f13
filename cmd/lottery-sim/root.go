package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ArowuTest/lottery-odds/internal/loader"
	"github.com/ArowuTest/lottery-odds/internal/logger"
	"github.com/ArowuTest/lottery-odds/internal/models"
	"github.com/ArowuTest/lottery-odds/internal/report"
	"github.com/ArowuTest/lottery-odds/internal/rng"
	"github.com/ArowuTest/lottery-odds/internal/simulation"
)

const (
	defaultFile          = "entrants.csv"
	defaultIterations    = 10000
	defaultMainSpots     = 125
	defaultWaitlistSpots = 125
)

type rootFlags struct {
	file     string
	params   models.Params
	seed     int64
	logLevel string
}

// NewRootCmd builds the lottery-sim command. The table goes to the command's
// stdout; progress and errors go to its stderr.
func NewRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "lottery-sim",
		Short: "Estimate per-ticket-count odds of a weighted lottery by Monte Carlo simulation",
		Example: "  lottery-sim -f entrants.csv -i 50000 -m 100 -w 50\n" +
			"  lottery-sim --seed 42",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var seed *int64
			if cmd.Flags().Changed("seed") {
				seed = &f.seed
			}
			return run(cmd, f, seed)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.file, "file", "f", defaultFile, "CSV of name,tickets rows")
	flags.IntVarP(&f.params.Iterations, "iterations", "i", defaultIterations, "number of simulated lotteries")
	flags.IntVarP(&f.params.MainSpots, "main-spots", "m", defaultMainSpots, "spots on the main list")
	flags.IntVarP(&f.params.WaitlistSpots, "waitlist-spots", "w", defaultWaitlistSpots, "spots on the waitlist")
	flags.Int64VarP(&f.seed, "seed", "s", 0, "seed for a reproducible run (default: cryptographic randomness)")
	flags.StringVar(&f.logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}

func run(cmd *cobra.Command, f rootFlags, seed *int64) error {
	log := logger.NewConsole(cmd.ErrOrStderr(), logger.ParseLevel(f.logLevel))

	entrants, err := loader.LoadFile(f.file)
	if err != nil {
		log.Error().Err(err).Str("file", f.file).Msg("loading entrants failed")
		return err
	}
	log.Info().Int("entrants", len(entrants)).Str("file", f.file).Msg("entrants loaded")

	src, err := rng.NewSource(seed)
	if err != nil {
		log.Error().Err(err).Msg("random source unavailable")
		return err
	}
	if seed != nil {
		log.Debug().Int64("seed", *seed).Msg("using seeded source")
	}

	res, err := simulation.Run(entrants, f.params, src, simulation.WithProgress(func(done, total int) {
		log.Info().Int("done", done).Int("total", total).Msg("progress")
	}))
	if err != nil {
		log.Error().Err(err).Msg("simulation failed")
		return err
	}

	if err := report.WriteTable(cmd.OutOrStdout(), f.params, res.Report); err != nil {
		return eris.Wrap(err, "writing results")
	}
	return nil
}
