package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/task"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(planboard completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(planboard completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func fieldCompletions() []string {
	fs := task.Fields()
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, string(f))
	}
	return out
}

// idCompletions lists ids with their names as descriptions.
func idCompletions(ids []int, names []string) []string {
	out := make([]string, 0, len(ids))
	for i, id := range ids {
		out = append(out, fmt.Sprintf("%d\t%s", id, names[i]))
	}
	return out
}
