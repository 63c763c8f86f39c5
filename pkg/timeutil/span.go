// Package timeutil parses the compact spans used in configuration, such as
// "30d" for the legacy store expiry or "200ms" for the edit debounce.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var (
	spanPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units       = map[string]time.Duration{
		"ms":    time.Millisecond,
		"s":     time.Second,
		"sec":   time.Second,
		"secs":  time.Second,
		"m":     time.Minute,
		"min":   time.Minute,
		"mins":  time.Minute,
		"h":     time.Hour,
		"hr":    time.Hour,
		"hrs":   time.Hour,
		"d":     day,
		"day":   day,
		"days":  day,
		"w":     week,
		"wk":    week,
		"week":  week,
		"weeks": week,
	}
)

// ParseSpan parses spans like "30d", "1w2d" or "200ms". Empty input yields
// fallback. Spans must be positive.
func ParseSpan(input string, fallback time.Duration) (time.Duration, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return fallback, nil
	}

	total := time.Duration(0)
	for len(remaining) > 0 {
		m := spanPattern.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, fmt.Errorf("timeutil: invalid span segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("timeutil: invalid span value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, fmt.Errorf("timeutil: unsupported span unit %q", m[2])
		}
		total += time.Duration(n) * unit
		remaining = remaining[len(m[0]):]
	}

	if total <= 0 {
		return 0, fmt.Errorf("timeutil: span %q must be greater than zero", input)
	}
	return total, nil
}

// FormatSpan renders d with the largest units first, e.g. "4w2d" or "200ms".
func FormatSpan(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	order := []struct {
		label string
		value time.Duration
	}{
		{"w", week},
		{"d", day},
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
		{"ms", time.Millisecond},
	}

	var b strings.Builder
	remaining := d
	for _, u := range order {
		if remaining < u.value {
			continue
		}
		n := remaining / u.value
		remaining -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
