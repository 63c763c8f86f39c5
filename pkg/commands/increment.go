package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/commands/options"
	"tableflip.dev/planboard/pkg/increment"
	"tableflip.dev/planboard/pkg/runner/increments"
	"tableflip.dev/planboard/pkg/runner/prompt"
)

func addIncrement(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "increment",
		Aliases: []string{"inc", "increments"},
		Short:   "Manage the ordered project increments.",
		Example: `
planboard increment ls
planboard increment add --name "MVP" --start 2025-06-01 --end 2025-06-30 --goals "- login\n- search"
planboard increment down 2
`,
	}

	addIncrementList(cmd)
	addIncrementAdd(cmd)
	addIncrementEdit(cmd)
	addIncrementRemove(cmd)
	addIncrementMove(cmd, "up", true)
	addIncrementMove(cmd, "down", false)

	topLevel.AddCommand(cmd)
}

func addIncrementList(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	ido := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List increments in display order.",
		Example: `
planboard increment ls -k
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
			l := increments.List{Service: svc, ShowID: ido.ShowID, Format: oo.Format}
			return oo.HandleError(l.Do(ctx))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, ido)
	parent.AddCommand(cmd)
}

func addIncrementAdd(parent *cobra.Command) {
	ino := &options.IncrementOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an increment. Missing values are asked for.",
		Example: `
planboard increment add
planboard increment add --name "Beta" --start 2025-07-01 --end 2025-07-31 --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			svc, _, err := loadService(ctx)
			if err != nil {
				return err
			}
			a := increments.Add{Service: svc, Input: ino.Input()}
			if !co.Yes {
				a.Form = prompt.IncrementForm
			}
			if err := a.Do(ctx); err != nil && !errors.Is(err, prompt.ErrAborted) {
				return err
			}
			return nil
		},
	}

	options.AddIncrementArgs(cmd, ino)
	cmd.Flags().BoolVarP(&co.Yes, "yes", "y", false, "Never prompt, fail on missing values.")
	parent.AddCommand(cmd)
}

func addIncrementEdit(parent *cobra.Command) {
	ino := &options.IncrementOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change name, dates or goals of an increment.",
		Example: `
planboard increment edit 2 --end 2025-07-15
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: incrementIDCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			svc, _, err := loadService(ctx)
			if err != nil {
				return err
			}
			existing, ok := svc.Increment(id)
			if !ok {
				return fmt.Errorf("no increment with id %d", id)
			}
			ino.Merge(cmd, existing)
			e := increments.Edit{Service: svc, ID: id, Input: ino.Input()}
			return e.Do(ctx)
		},
	}

	options.AddIncrementArgs(cmd, ino)
	parent.AddCommand(cmd)
}

func addIncrementRemove(parent *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an increment.",
		Example: `
planboard increment rm 2
planboard increment rm 2 --yes
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: incrementIDCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			svc, _, err := loadService(ctx)
			if err != nil {
				return err
			}
			r := increments.Remove{Service: svc, ID: id}
			if !co.Yes {
				r.Confirm = func(inc increment.Increment) bool {
					return prompt.Confirmer("Delete increment?",
						fmt.Sprintf("%q (%s - %s) will be removed.", inc.Name, inc.Start.Display(), inc.End.Display()))()
				}
			}
			return r.Do(ctx)
		},
	}

	options.AddConfirmArgs(cmd, co)
	parent.AddCommand(cmd)
}

func addIncrementMove(parent *cobra.Command, use string, up bool) {
	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: fmt.Sprintf("Move an increment one place %s.", use),
		Example: fmt.Sprintf(`
planboard increment %s 2
`, use),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: incrementIDCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			svc, _, err := loadService(ctx)
			if err != nil {
				return err
			}
			m := increments.Move{Service: svc, ID: id, Up: up}
			return m.Do(ctx)
		},
	}

	parent.AddCommand(cmd)
}

func incrementIDCompletion(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc, _, err := loadService(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []int
	var names []string
	for _, inc := range svc.Increments() {
		ids = append(ids, inc.ID)
		names = append(names, inc.Name)
	}
	return idCompletions(ids, names), cobra.ShellCompDirectiveNoFileComp
}
