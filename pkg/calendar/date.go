// Package calendar holds the local calendar-day helpers used by the board.
package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// LayoutISO is the persisted and user-facing date format.
	LayoutISO = "2006-01-02"
	// LayoutDisplay is the short display format used by the timeline.
	LayoutDisplay = "2006/1/2"
)

var weekdayShort = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// Date is a calendar day with no time-of-day component. It is always built
// from local calendar fields. The zero Date means "absent".
type Date struct {
	time.Time
}

// New returns the local calendar date y-m-d. Out of range days and months are
// normalized the way time.Date does it.
func New(y int, m time.Month, d int) Date {
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

// FromTime strips the time-of-day from t using its local calendar fields.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	l := t.Local()
	return New(l.Year(), l.Month(), l.Day())
}

// Today returns the calendar day of now.
func Today(now time.Time) Date {
	return FromTime(now)
}

// Parse reads a YYYY-MM-DD string as a local calendar date. An empty string
// yields the zero Date and no error.
func Parse(v string) (Date, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Date{}, nil
	}
	t, err := time.ParseInLocation(LayoutISO, v, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("calendar: parse %q: %w", v, err)
	}
	return New(t.Year(), t.Month(), t.Day()), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(v string) Date {
	d, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return d
}

// String renders the date as YYYY-MM-DD, or "" when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), int(d.Month()), d.Day())
}

// Display renders the date as 2006/1/2, or "" when absent.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(LayoutDisplay)
}

// WeekdayShort returns the single character weekday label.
func (d Date) WeekdayShort() string {
	return weekdayShort[d.Weekday()]
}

func (d Date) key() int {
	return d.Year()*10000 + int(d.Month())*100 + d.Day()
}

// Compare returns -1, 0 or +1 comparing calendar days only.
func (d Date) Compare(o Date) int {
	a, b := d.key(), o.key()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether d is an earlier calendar day than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is a later calendar day than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Equal reports whether both values are the same calendar day.
func (d Date) Equal(o Date) bool { return d.Compare(o) == 0 }

// AddDays moves the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return New(d.Year(), d.Month(), d.Day()+n)
}

// AddMonths moves the date by n months. Day overflow rolls into the next
// month (January 31 + 1 month is March 2 or 3).
func (d Date) AddMonths(n int) Date {
	return New(d.Year(), d.Month()+time.Month(n), d.Day())
}

// ISOWeek returns the ISO 8601 year and week number of d.
func (d Date) ISOWeek() (year, week int) {
	return d.Time.ISOWeek()
}

// MarshalJSON writes the date as "YYYY-MM-DD" ("" when absent).
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON reads "YYYY-MM-DD". Empty strings and null leave d absent.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := Parse(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML writes the date in the same form as JSON.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
