package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/runner/gantt"
)

func addChart(topLevel *cobra.Command) {
	withKey := false

	cmd := &cobra.Command{
		Use:     "chart",
		Aliases: []string{"gantt"},
		Short:   "Print the gantt chart of every task.",
		Example: `
planboard chart
planboard chart --key
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			svc, cfg, err := loadService(ctx)
			if err != nil {
				return err
			}
			g := gantt.Gantt{Service: svc, Fill: cfg.FillColor(), Key: withKey}
			return g.Do(ctx)
		},
	}

	cmd.Flags().BoolVarP(&withKey, "key", "k", false, "Explain the chart symbols afterwards.")

	topLevel.AddCommand(cmd)
}
