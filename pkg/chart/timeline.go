package chart

import (
	"fmt"

	"tableflip.dev/planboard/pkg/calendar"
	"tableflip.dev/planboard/pkg/increment"
)

// Phase is one entry of the increment timeline.
type Phase struct {
	Number int           `json:"number" yaml:"number"`
	ID     int           `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Start  calendar.Date `json:"start" yaml:"start"`
	End    calendar.Date `json:"end" yaml:"end"`
	Goals  string        `json:"goals" yaml:"goals"`
	Days   int           `json:"days" yaml:"days"`
}

// Label is the "Phase n" heading.
func (p Phase) Label() string {
	return fmt.Sprintf("Phase %d", p.Number)
}

// Period renders the range as "2025/6/4 - 2025/6/8".
func (p Phase) Period() string {
	return fmt.Sprintf("%s - %s", p.Start.Display(), p.End.Display())
}

// GoalsOrPlaceholder returns the goals, or increment.NoGoals when empty.
func (p Phase) GoalsOrPlaceholder() string {
	if p.Goals == "" {
		return increment.NoGoals
	}
	return p.Goals
}

// Timeline numbers increments that are already in display order.
func Timeline(ordered []increment.Increment) []Phase {
	phases := make([]Phase, 0, len(ordered))
	for i, inc := range ordered {
		phases = append(phases, Phase{
			Number: i + 1,
			ID:     inc.ID,
			Name:   inc.Name,
			Start:  inc.Start,
			End:    inc.End,
			Goals:  inc.Goals,
			Days:   calendar.DaysBetweenInclusive(inc.Start, inc.End),
		})
	}
	return phases
}
