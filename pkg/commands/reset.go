package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/commands/options"
	"tableflip.dev/planboard/pkg/runner/prompt"
	"tableflip.dev/planboard/pkg/runner/reset"
)

func addReset(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every task, increment and saved view state.",
		Example: `
planboard reset
planboard reset --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			svc, _, err := loadService(ctx)
			if err != nil {
				return err
			}
			r := reset.Reset{Service: svc}
			if !co.Yes {
				r.Confirm = prompt.Confirmer("Clear the whole board?",
					"Every task, increment and the saved scroll position will be removed.")
			}
			return r.Do(ctx)
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
