package options

import (
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Level string
	File  string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().StringVar(&o.Level, "log-level", "warn",
		"Log level. One of 'debug', 'info', 'warn' or 'error'.")
	cmd.PersistentFlags().StringVar(&o.File, "log-file", "",
		"Write logs to this file instead of stderr.")
}
