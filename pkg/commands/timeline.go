package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/commands/options"
	"tableflip.dev/planboard/pkg/runner/timeline"
)

func addTimeline(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	ido := &options.IDOptions{}
	markdown := false
	width := 0

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the increments as numbered phases with their goals.",
		Example: `
planboard timeline
planboard timeline --markdown
planboard timeline -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := oo.Validate(); err != nil {
				return err
			}
			ctx := context.Background()
			svc, _, err := loadService(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			t := timeline.Timeline{
				Service:  svc,
				ShowID:   ido.ShowID,
				Markdown: markdown,
				Width:    width,
				Format:   oo.Format,
			}
			return oo.HandleError(t.Do(ctx))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().BoolVarP(&markdown, "markdown", "m", false, "Render goals as markdown.")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap goals at this many columns (default 80).")

	topLevel.AddCommand(cmd)
}
