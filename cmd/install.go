package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func addInstall(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Fetch the app shell manifest into the offline cache and exit.",
		Example: `
vaxremind install
CACHE_NAME=vaccination-reminder-v2 vaxremind install
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			v, err := a.installShell(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "installed %s (%d resources) as version %s\n", v.CacheName, len(v.Manifest), v.ID)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
