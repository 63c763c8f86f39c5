package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planboard/pkg/calendar"
)

// TodayOptions pins the session day, mostly for demos and scripted runs.
type TodayOptions struct {
	TodayString string
}

func AddTodayArg(cmd *cobra.Command, o *TodayOptions) {
	cmd.PersistentFlags().StringVar(&o.TodayString, "today", "",
		`Pretend today is this date, example: --today="2025-06-01".`)
	_ = cmd.PersistentFlags().MarkHidden("today")
}

// GetToday returns the pinned day, or the calendar day of now.
func (o *TodayOptions) GetToday(now time.Time) (calendar.Date, error) {
	if o.TodayString == "" {
		return calendar.Today(now), nil
	}
	return calendar.Parse(o.TodayString)
}
