package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive board",
		Example: `
planboard ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			svc, cfg, err := loadService(ctx)
			if err != nil {
				return err
			}
			// Keep log lines off the alt screen.
			if !cmd.Flags().Changed("log-file") {
				if err := openLog(filepath.Join(cfg.BasePath(), "planboard.log")); err != nil {
					return err
				}
			}
			i := ui.UI{Service: svc, Fill: cfg.FillColor()}
			return i.Do(ctx)
		},
	}

	topLevel.AddCommand(cmd)
}
