package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/increment"
)

// IncrementOptions
type IncrementOptions struct {
	Name  string
	Start string
	End   string
	Goals string
}

func AddIncrementArgs(cmd *cobra.Command, o *IncrementOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "",
		"Name of the increment.")
	cmd.Flags().StringVar(&o.Start, "start", "",
		`First day, example: --start="2025-06-01".`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`Last day, example: --end="2025-06-30".`)
	cmd.Flags().StringVar(&o.Goals, "goals", "",
		"Goals and deliverables, markdown is fine.")
}

func (o *IncrementOptions) Input() increment.Input {
	return increment.Input{Name: o.Name, Start: o.Start, End: o.End, Goals: o.Goals}
}

// Merge fills flags the user did not set from an existing increment.
func (o *IncrementOptions) Merge(cmd *cobra.Command, inc increment.Increment) {
	if !cmd.Flags().Changed("name") {
		o.Name = inc.Name
	}
	if !cmd.Flags().Changed("start") {
		o.Start = inc.Start.String()
	}
	if !cmd.Flags().Changed("end") {
		o.End = inc.End.String()
	}
	if !cmd.Flags().Changed("goals") {
		o.Goals = inc.Goals
	}
}
