package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"heattreat/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool

	cfg *config.Config
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "heattreat",
		Short: "Heat treatment optimizer for steel discs",
		Long: "Predicts the final grain size required for a target yield strength (Hall-Petch)\n" +
			"and the annealing time needed to grow the initial grain to it.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if opts.Verbose {
				cfg.Log.Level = "debug"
			}
			if err := config.SetupLogger(cfg.Log); err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			log.SetOutput(cmd.ErrOrStderr())
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default $HT_CONFIG or "+config.DefaultPath+")")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewPredictCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}
