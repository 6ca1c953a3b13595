package availability

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ErrInvalidDuration is returned when a service duration or grid step is not positive.
var ErrInvalidDuration = errors.New("invalid_duration")

// FormatError reports a stored time string that is not HH:MM, or an
// interval whose end does not come after its start.
type FormatError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s (%q)", e.Field, e.Reason, e.Value)
}

func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// ToFractionalHours converts "HH:MM" to hour + minute/60.
func ToFractionalHours(hhmm string) (float64, error) {
	m, err := toMinutes("time", hhmm)
	if err != nil {
		return 0, err
	}
	return float64(m) / 60, nil
}

// Overlaps is the strict interval test: touching endpoints do not overlap.
func Overlaps[T int | float64](aStart, aEnd, bStart, bEnd T) bool {
	return aStart < bEnd && aEnd > bStart
}

// FormatFractionalHours renders fractional hours back to "HH:MM".
func FormatFractionalHours(h float64) string {
	return formatMinutes(int(math.Round(h * 60)))
}

// toMinutes parses "HH:MM" into minutes since midnight. The generator works
// in whole minutes so that durations like 20 or 50 minutes stay exact.
func toMinutes(field, hhmm string) (int, error) {
	parts := hhmmPattern.FindStringSubmatch(hhmm)
	if parts == nil {
		return 0, &FormatError{Field: field, Value: hhmm, Reason: "expected HH:MM"}
	}
	hour, _ := strconv.Atoi(parts[1])
	minute, _ := strconv.Atoi(parts[2])
	return hour*60 + minute, nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// window is a half-open [start, end) interval in minutes since midnight.
type window struct {
	start int
	end   int
}

func parseWindow(field, start, end string) (window, error) {
	s, err := toMinutes(field+".start_time", start)
	if err != nil {
		return window{}, err
	}
	e, err := toMinutes(field+".end_time", end)
	if err != nil {
		return window{}, err
	}
	if e <= s {
		return window{}, &FormatError{
			Field:  field,
			Value:  start + "-" + end,
			Reason: "end must be after start",
		}
	}
	return window{start: s, end: e}, nil
}

func (w window) overlaps(start, end int) bool {
	return Overlaps(start, end, w.start, w.end)
}
