package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/runner/key"
	"tableflip.dev/planboard/pkg/store"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the chart symbols and what they mean",
		Example: `
planboard key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			k := key.Key{Fill: cfg.FillColor()}
			return k.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
