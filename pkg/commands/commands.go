package commands

import (
	"context"
	"os"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/app"
	"tableflip.dev/planboard/pkg/commands/options"
	"tableflip.dev/planboard/pkg/logutils"
	"tableflip.dev/planboard/pkg/store"
)

var (
	lo       = &options.LogOptions{}
	to       = &options.TodayOptions{}
	closeLog = func() {}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "planboard",
		Short: base.Wrap80("Plan tasks on a gantt chart and order project increments from the terminal."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return openLog(lo.File)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			CloseLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, lo)
	options.AddTodayArg(cmd, to)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addTask(topLevel)
	addChart(topLevel)
	addIncrement(topLevel)
	addTimeline(topLevel)
	addReset(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// CloseLog closes the log file, if any, and points the global logger back at
// stderr. Cobra skips PersistentPostRun when a command fails, so main calls it
// after Execute as well. It is safe to call more than once.
func CloseLog() {
	closeLog()
	closeLog = func() {}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// openLog installs the global logger, replacing any earlier one.
func openLog(file string) error {
	logger, closer, err := logutils.New(lo.Level, file)
	if err != nil {
		return err
	}
	closeLog()
	log.Logger = logger
	closeLog = closer
	return nil
}

// loadService opens the configured store and loads the board from it.
func loadService(ctx context.Context) (*app.Service, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	today, err := to.GetToday(time.Now())
	if err != nil {
		return nil, nil, err
	}
	svc, err := app.New(ctx, app.Options{
		Persistence: p,
		Today:       today,
		Debounce:    cfg.Debounce(),
	})
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}
