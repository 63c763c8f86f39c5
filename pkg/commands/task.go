package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/commands/options"
	"tableflip.dev/planboard/pkg/runner/tasks"
	"tableflip.dev/planboard/pkg/task"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Add, change, remove and list gantt tasks.",
		Example: `
planboard task ls
planboard task add --name "Design review" --start 2025-06-10 --end 2025-06-12
planboard task set 2 end 2025-06-20
planboard task rm 3
`,
	}

	addTaskList(cmd)
	addTaskAdd(cmd)
	addTaskSet(cmd)
	addTaskRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskList(parent *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks.",
		Example: `
planboard task ls
planboard task ls -o yaml
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
			l := tasks.List{Service: svc, Format: oo.Format}
			return oo.HandleError(l.Do(ctx))
		},
	}

	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addTaskAdd(parent *cobra.Command) {
	values := map[task.Field]*string{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task. It starts and ends today unless told otherwise.",
		Example: `
planboard task add
planboard task add --name "Write docs" --end 2025-06-30 --color "#7DB9DE"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			svc, _, err := loadService(ctx)
			if err != nil {
				return err
			}
			a := tasks.Add{Service: svc, Values: map[task.Field]string{}}
			for f, v := range values {
				if cmd.Flags().Changed(string(f)) {
					a.Values[f] = *v
				}
			}
			return a.Do(ctx)
		},
	}

	for _, f := range task.Fields() {
		v := new(string)
		values[f] = v
		cmd.Flags().StringVar(v, string(f), "", "Initial "+string(f)+" of the task.")
	}

	parent.AddCommand(cmd)
}

func addTaskSet(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set <id> <field> <value>",
		Short: "Change one field of a task.",
		Long: `Change one field of a task. Fields are name, start, end, memo and color.

Dates before today become today. A start after the end moves the end along,
an end before the start moves the start back.`,
		Example: `
planboard task set 1 name "Kickoff"
planboard task set 1 start 2025-06-09
`,
		Args: cobra.ExactArgs(3),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return taskIDCompletions(), cobra.ShellCompDirectiveNoFileComp
			case 1:
				return fieldCompletions(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return err
			}
			field, err := task.ParseField(args[1])
			if err != nil {
				return err
			}
			ctx := context.Background()
			svc, _, err := loadService(ctx)
			if err != nil {
				return err
			}
			s := tasks.Set{Service: svc, ID: id, Field: field, Value: args[2]}
			return s.Do(ctx)
		},
	}

	parent.AddCommand(cmd)
}

func addTaskRemove(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a task.",
		Example: `
planboard task rm 3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a task id")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return taskIDCompletions(), cobra.ShellCompDirectiveNoFileComp
		},
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
			r := tasks.Remove{Service: svc, ID: id}
			return r.Do(ctx)
		},
	}

	parent.AddCommand(cmd)
}

func taskIDCompletions() []string {
	svc, _, err := loadService(context.Background())
	if err != nil {
		return nil
	}
	var ids []int
	var names []string
	for _, t := range svc.Tasks() {
		ids = append(ids, t.ID)
		names = append(names, t.Name)
	}
	return idCompletions(ids, names)
}
