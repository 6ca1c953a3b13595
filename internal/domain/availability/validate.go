package availability

import (
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ValidateWeekly is the write-path check for weekly records. It applies the
// same parsing rules as GenerateSlots, plus containment of breaks.
func ValidateWeekly(w *models.WeeklyAvailability) error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return &FormatError{Field: "day_of_week", Reason: "must be between 0 and 6"}
	}

	work, err := parseWindow("weekly", w.StartTime, w.EndTime)
	if err != nil {
		return err
	}

	breaks, err := parseBreaks(w.BreakTimes)
	if err != nil {
		return err
	}
	for i, b := range breaks {
		if b.start < work.start || b.end > work.end {
			return &FormatError{
				Field:  "weekly.break_times",
				Value:  w.BreakTimes[i].StartTime + "-" + w.BreakTimes[i].EndTime,
				Reason: "break must lie inside the working window",
			}
		}
	}

	return nil
}

func ValidateException(e *models.DateException) error {
	if e.Date.IsZero() {
		return &FormatError{Field: "date", Reason: "required"}
	}

	switch e.Type {
	case models.ExceptionUnavailable:
		if strings.TrimSpace(e.Reason) == "" {
			return &FormatError{Field: "reason", Reason: "required for unavailable days"}
		}
		return nil
	case models.ExceptionCustomHours:
		_, err := parseWindow("exception", e.StartTime, e.EndTime)
		return err
	default:
		return &FormatError{
			Field:  "type",
			Value:  string(e.Type),
			Reason: "must be unavailable or custom_hours",
		}
	}
}
