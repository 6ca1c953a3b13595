package availability

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// override is what a date exception means for the generation loop. It is
// resolved once per call so the loop never inspects the exception again.
type override interface {
	isOverride()
}

type noOverride struct{}

type fullDayBlocked struct {
	reason string
}

type customHours struct {
	window window
}

func (noOverride) isOverride()     {}
func (fullDayBlocked) isOverride() {}
func (customHours) isOverride()    {}

func resolveOverride(exc *models.DateException) (override, error) {
	if exc == nil {
		return noOverride{}, nil
	}

	switch exc.Type {
	case models.ExceptionUnavailable:
		return fullDayBlocked{reason: exc.Reason}, nil
	case models.ExceptionCustomHours:
		w, err := parseWindow("exception", exc.StartTime, exc.EndTime)
		if err != nil {
			return nil, err
		}
		return customHours{window: w}, nil
	default:
		return nil, &FormatError{
			Field:  "exception.type",
			Value:  string(exc.Type),
			Reason: "unknown exception type",
		}
	}
}
