// Package cmd holds the vaxremind command line.
package cmd

import (
	"vaxremind/config"
	"vaxremind/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configFile string

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vaxremind",
		Short: "Background worker for vaccination reminders.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file (default ./config.yaml or ./config/config.yaml)")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addServe(topLevel)
	addInstall(topLevel)
	addEvaluate(topLevel)
}

// setup loads the configuration and builds the process logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := utils.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
