package availability

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	DefaultStepMinutes = 30

	NoAvailabilityMessage = "No availability configured for this day"
)

type Reason string

const (
	ReasonNoAvailability Reason = "no_availability"
	ReasonUnavailable    Reason = "unavailable"
)

// BookedInterval is the part of an appointment the generator cares about.
type BookedInterval struct {
	Time      string
	Duration  int
	Cancelled bool
}

type Input struct {
	Date         time.Time
	Weekly       *models.WeeklyAvailability
	Exception    *models.DateException
	Appointments []BookedInterval

	ServiceDurationMinutes int
	StepMinutes            int
}

type Slot struct {
	Time        string `json:"time"`
	DisplayTime string `json:"displayTime"`
}

// Result carries the bookable slots. Reason and Message are set only when
// the day is closed outright; a fully booked day is an empty Slots with no Reason.
type Result struct {
	Slots   []Slot `json:"slots"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

func (r Result) Contains(hhmm string) bool {
	for _, s := range r.Slots {
		if s.Time == hhmm {
			return true
		}
	}
	return false
}

// GenerateSlots lists the start times on the step grid, anchored at the
// window start, where a service of the given duration fits the working
// window without touching a break or an active appointment.
func GenerateSlots(in Input) (Result, error) {
	step := in.StepMinutes
	if step == 0 {
		step = DefaultStepMinutes
	}
	if step < 0 || in.ServiceDurationMinutes <= 0 {
		return Result{}, ErrInvalidDuration
	}

	if in.Weekly == nil || !in.Weekly.IsActive || in.Weekly.DayOfWeek != int(in.Date.Weekday()) {
		return closed(ReasonNoAvailability, NoAvailabilityMessage), nil
	}

	exc := in.Exception
	if exc != nil && !SameDay(exc.Date, in.Date) {
		exc = nil
	}

	ov, err := resolveOverride(exc)
	if err != nil {
		return Result{}, err
	}

	var (
		work   window
		breaks []window
	)

	switch o := ov.(type) {
	case fullDayBlocked:
		return closed(ReasonUnavailable, o.reason), nil
	case customHours:
		work = o.window
	case noOverride:
		if work, err = parseWindow("weekly", in.Weekly.StartTime, in.Weekly.EndTime); err != nil {
			return Result{}, err
		}
		if breaks, err = parseBreaks(in.Weekly.BreakTimes); err != nil {
			return Result{}, err
		}
	}

	busy, err := parseBooked(in.Appointments)
	if err != nil {
		return Result{}, err
	}

	out := Result{Slots: []Slot{}}
	dur := in.ServiceDurationMinutes

	for t := work.start; t < work.end; t += step {
		end := t + dur
		if end > work.end {
			// later candidates only end later
			break
		}
		if anyOverlap(busy, t, end) || anyOverlap(breaks, t, end) {
			continue
		}
		hhmm := formatMinutes(t)
		out.Slots = append(out.Slots, Slot{Time: hhmm, DisplayTime: hhmm})
	}

	return out, nil
}

func closed(reason Reason, message string) Result {
	return Result{Slots: []Slot{}, Reason: reason, Message: message}
}

func parseBreaks(bs []models.BreakTime) ([]window, error) {
	out := make([]window, 0, len(bs))
	for _, b := range bs {
		w, err := parseWindow("weekly.break_times", b.StartTime, b.EndTime)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func parseBooked(aps []BookedInterval) ([]window, error) {
	out := make([]window, 0, len(aps))
	for _, ap := range aps {
		if ap.Cancelled {
			continue
		}
		start, err := toMinutes("appointment.time", ap.Time)
		if err != nil {
			return nil, err
		}
		if ap.Duration <= 0 {
			return nil, &FormatError{
				Field:  "appointment.duration",
				Value:  ap.Time,
				Reason: "end must be after start",
			}
		}
		out = append(out, window{start: start, end: start + ap.Duration})
	}
	return out, nil
}

func anyOverlap(ws []window, start, end int) bool {
	for _, w := range ws {
		if w.overlaps(start, end) {
			return true
		}
	}
	return false
}

// SameDay compares calendar fields only, so a DATE column read back in UTC
// still matches a clinic-local date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
