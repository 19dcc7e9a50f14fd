package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/roadrisk/app"
	"github.com/kilianp07/roadrisk/config"
	"github.com/kilianp07/roadrisk/infra/logger"
)

var cfgPath string

var serveFlags struct {
	addr    string
	dataset string
	k       int
}

var rootCmd = &cobra.Command{
	Use:   "roadrisk",
	Short: "Road deterioration prediction service",
	Long: `roadrisk predicts how fast a road deteriorates and how urgently it needs
repair by comparing it with its nearest neighbours in a reference dataset.

Without a subcommand it serves the prediction API:

  POST /api/predictions          assess a road from the form fields
  GET  /api/predictions/latest   most recent assessment
  GET  /api/predictions/stream   assessments as server-sent events
  GET  /api/predictions/logs     prediction history (bearer token)
  GET  /api/dataset              reference dataset summary

Settings come from the config file, when present, and K_ environment
variables (K_HTTP__ADDR=:9090 sets http.addr).`,
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file, optional unless set explicitly")
	rootCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "HTTP listen address, overrides http.addr")
	rootCmd.Flags().StringVar(&serveFlags.dataset, "dataset", "", "reference dataset file, overrides engine.dataset_path")
	rootCmd.Flags().IntVarP(&serveFlags.k, "neighbours", "k", 0, "number of neighbours, overrides engine.k")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// serviceConfig loads the configuration and applies the serve flags.
func serviceConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadOptionalConfig(cmd)
	if err != nil {
		return nil, err
	}
	if serveFlags.addr != "" {
		cfg.HTTP.Addr = serveFlags.addr
	}
	if serveFlags.dataset != "" {
		cfg.Engine.DatasetPath = serveFlags.dataset
	}
	if cmd.Flags().Changed("neighbours") {
		cfg.Engine.K = serveFlags.k
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := serviceConfig(cmd)
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
