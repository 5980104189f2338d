package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/iamjwc/driving-without-turning/internal/logger"
	"github.com/iamjwc/driving-without-turning/pkg/config"
	"github.com/iamjwc/driving-without-turning/pkg/engine"
	"github.com/iamjwc/driving-without-turning/pkg/simulation"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

// options shared by every subcommand
type options struct {
	configPath string
	logLevel   string
	seed       uint64
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "cityscape",
		Short: "Drive down an endless city street without ever turning",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWindow(cmd, opts)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "cityscape.yaml", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "world seed override (0 keeps the configured seed)")

	rootCmd.AddCommand(runCmd(opts))
	rootCmd.AddCommand(simulateCmd(opts))
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the window and drive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWindow(cmd, opts)
		},
	}
}

func simulateCmd(opts *options) *cobra.Command {
	var ticks, every int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the street without a window and print readouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(opts)
			if err != nil {
				return err
			}
			defer log.Close()

			sim, err := simulation.New(cfg, log)
			if err != nil {
				return err
			}
			return sim.Run(ticks, every, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 600, "number of ticks to simulate")
	cmd.Flags().IntVar(&every, "every", 10, "print a readout every N ticks (0 for none)")
	return cmd
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Write the default configuration to a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "cityscape.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}

func runWindow(_ *cobra.Command, opts *options) error {
	cfg, log, err := setup(opts)
	if err != nil {
		return err
	}
	defer log.Close()

	sim, err := simulation.New(cfg, log)
	if err != nil {
		return err
	}

	eng, err := engine.NewEngine(cfg, sim, log.Named("engine"))
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	log.Info("engine initialized, starting main loop")
	eng.Run()
	return nil
}

// setup loads the configuration, applies flag overrides and builds the
// logger the configuration asks for.
func setup(opts *options) (*config.Config, *logger.Logger, error) {
	cfg, found, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.seed != 0 {
		cfg.Simulation.Seed = opts.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.NewFileLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		log.Warnf("config file %s not found, using defaults", opts.configPath)
	}
	return cfg, log, nil
}
