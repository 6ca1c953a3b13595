package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func mondayHours(start, end string, breaks ...models.BreakTime) *models.WeeklyAvailability {
	return &models.WeeklyAvailability{
		DayOfWeek:  int(time.Monday),
		StartTime:  start,
		EndTime:    end,
		IsActive:   true,
		BreakTimes: breaks,
	}
}

func times(r Result) []string {
	out := make([]string, 0, len(r.Slots))
	for _, s := range r.Slots {
		out = append(out, s.Time)
	}
	return out
}

func TestGenerateSlots_ScenarioA(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:                   monday,
		Weekly:                 mondayHours("09:00", "13:00"),
		ServiceDurationMinutes: 60,
		StepMinutes:            30,
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00"},
		times(res),
	)
	assert.Empty(t, res.Reason)
	assert.Empty(t, res.Message)
}

func TestGenerateSlots_ScenarioB_Break(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:                   monday,
		Weekly:                 mondayHours("09:00", "13:00", models.BreakTime{StartTime: "11:00", EndTime: "11:30"}),
		ServiceDurationMinutes: 60,
	})
	require.NoError(t, err)

	// 10:00 ends when the break starts and 11:30 starts when it ends.
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "11:30", "12:00"}, times(res))
}

func TestGenerateSlots_ScenarioC_ExistingAppointment(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:   monday,
		Weekly: mondayHours("09:00", "13:00"),
		Appointments: []BookedInterval{
			{Time: "10:00", Duration: 30},
		},
		ServiceDurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:30", "11:00", "11:30", "12:00"}, times(res))
	assert.NotContains(t, times(res), "10:00")
	assert.NotContains(t, times(res), "09:30")
}

func TestGenerateSlots_CancelledAppointmentDoesNotBlock(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:   monday,
		Weekly: mondayHours("09:00", "10:00"),
		Appointments: []BookedInterval{
			{Time: "09:00", Duration: 30, Cancelled: true},
		},
		ServiceDurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, times(res))
}

func TestGenerateSlots_BackToBackAllowed(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:   monday,
		Weekly: mondayHours("09:00", "11:00"),
		Appointments: []BookedInterval{
			{Time: "09:00", Duration: 30},
			{Time: "10:30", Duration: 30},
		},
		ServiceDurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30"}, times(res))
}

func TestGenerateSlots_LongServiceBlockedByShortConflict(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:   monday,
		Weekly: mondayHours("09:00", "12:00"),
		Appointments: []BookedInterval{
			{Time: "10:45", Duration: 15},
		},
		ServiceDurationMinutes: 120,
	})
	require.NoError(t, err)
	// 09:00-11:00 and 09:30-11:30 and 10:00-12:00 all contain 10:45.
	assert.Empty(t, res.Slots)
	assert.Empty(t, res.Reason, "fully booked is not a closed day")
}

func TestGenerateSlots_RejectsPastWindowEndByAnyAmount(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:                   monday,
		Weekly:                 mondayHours("09:00", "10:29"),
		ServiceDurationMinutes: 30,
	})
	require.NoError(t, err)
	// 09:30 + 30 = 10:00 fits, 10:00 + 30 = 10:30 > 10:29.
	assert.Equal(t, []string{"09:00", "09:30"}, times(res))
}

func TestGenerateSlots_NoWeeklyRecord(t *testing.T) {
	res, err := GenerateSlots(Input{Date: monday, ServiceDurationMinutes: 30})
	require.NoError(t, err)
	assert.Empty(t, res.Slots)
	assert.NotNil(t, res.Slots)
	assert.Equal(t, ReasonNoAvailability, res.Reason)
	assert.Equal(t, NoAvailabilityMessage, res.Message)
}

func TestGenerateSlots_InactiveOrOtherWeekday(t *testing.T) {
	inactive := mondayHours("09:00", "13:00")
	inactive.IsActive = false

	res, err := GenerateSlots(Input{Date: monday, Weekly: inactive, ServiceDurationMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, ReasonNoAvailability, res.Reason)

	tuesday := mondayHours("09:00", "13:00")
	tuesday.DayOfWeek = int(time.Tuesday)

	res, err = GenerateSlots(Input{Date: monday, Weekly: tuesday, ServiceDurationMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, ReasonNoAvailability, res.Reason)
}

func TestGenerateSlots_UnavailableException(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:   monday,
		Weekly: mondayHours("09:00", "13:00"),
		Exception: &models.DateException{
			Date:   monday,
			Type:   models.ExceptionUnavailable,
			Reason: "Public holiday",
		},
		ServiceDurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Slots)
	assert.Equal(t, ReasonUnavailable, res.Reason)
	assert.Equal(t, "Public holiday", res.Message)
}

func TestGenerateSlots_CustomHoursOverridesWindowAndBreaks(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:   monday,
		Weekly: mondayHours("09:00", "17:00", models.BreakTime{StartTime: "14:00", EndTime: "15:00"}),
		Exception: &models.DateException{
			Date:      monday,
			Type:      models.ExceptionCustomHours,
			StartTime: "13:00",
			EndTime:   "16:00",
		},
		ServiceDurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"13:00", "13:30", "14:00", "14:30", "15:00"},
		times(res),
		"weekly break is ignored while the exception is active",
	)
}

func TestGenerateSlots_CustomHoursStillRespectsAppointments(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:   monday,
		Weekly: mondayHours("09:00", "17:00"),
		Exception: &models.DateException{
			Date:      monday,
			Type:      models.ExceptionCustomHours,
			StartTime: "13:00",
			EndTime:   "15:00",
		},
		Appointments:           []BookedInterval{{Time: "14:00", Duration: 30}},
		ServiceDurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"13:00", "13:30", "14:30"}, times(res))
}

func TestGenerateSlots_ExceptionForAnotherDateIgnored(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:   monday,
		Weekly: mondayHours("09:00", "10:00"),
		Exception: &models.DateException{
			Date:   monday.AddDate(0, 0, 7),
			Type:   models.ExceptionUnavailable,
			Reason: "Next week",
		},
		ServiceDurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, times(res))
}

func TestGenerateSlots_OffGridCustomStartKeepsRealMinutes(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:   monday,
		Weekly: mondayHours("09:00", "13:00"),
		Exception: &models.DateException{
			Date:      monday,
			Type:      models.ExceptionCustomHours,
			StartTime: "09:15",
			EndTime:   "10:45",
		},
		ServiceDurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:15", "09:45", "10:15"}, times(res))
	assert.Equal(t, res.Slots[0].Time, res.Slots[0].DisplayTime)
}

func TestGenerateSlots_CustomStep(t *testing.T) {
	res, err := GenerateSlots(Input{
		Date:                   monday,
		Weekly:                 mondayHours("09:00", "10:00"),
		ServiceDurationMinutes: 20,
		StepMinutes:            20,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:20", "09:40"}, times(res))
}

func TestGenerateSlots_FormatErrors(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{
			name: "weekly window",
			in:   Input{Date: monday, Weekly: mondayHours("9:00", "13:00"), ServiceDurationMinutes: 30},
		},
		{
			name: "weekly end before start",
			in:   Input{Date: monday, Weekly: mondayHours("13:00", "09:00"), ServiceDurationMinutes: 30},
		},
		{
			name: "break",
			in: Input{
				Date:                   monday,
				Weekly:                 mondayHours("09:00", "13:00", models.BreakTime{StartTime: "12:00", EndTime: "11:00"}),
				ServiceDurationMinutes: 30,
			},
		},
		{
			name: "exception hours",
			in: Input{
				Date:   monday,
				Weekly: mondayHours("09:00", "13:00"),
				Exception: &models.DateException{
					Date: monday, Type: models.ExceptionCustomHours, StartTime: "10:00", EndTime: "25:00",
				},
				ServiceDurationMinutes: 30,
			},
		},
		{
			name: "appointment time",
			in: Input{
				Date:                   monday,
				Weekly:                 mondayHours("09:00", "13:00"),
				Appointments:           []BookedInterval{{Time: "10h00", Duration: 30}},
				ServiceDurationMinutes: 30,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateSlots(tc.in)
			require.Error(t, err)
			assert.True(t, IsFormatError(err), err.Error())
		})
	}
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	_, err := GenerateSlots(Input{Date: monday, Weekly: mondayHours("09:00", "13:00")})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = GenerateSlots(Input{Date: monday, Weekly: mondayHours("09:00", "13:00"), ServiceDurationMinutes: 30, StepMinutes: -5})
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestGenerateSlots_Properties(t *testing.T) {
	in := Input{
		Date: monday,
		Weekly: mondayHours("08:00", "18:00",
			models.BreakTime{StartTime: "12:00", EndTime: "13:00"},
			models.BreakTime{StartTime: "15:30", EndTime: "15:45"},
		),
		Appointments: []BookedInterval{
			{Time: "09:00", Duration: 45},
			{Time: "10:30", Duration: 90},
			{Time: "16:00", Duration: 30},
		},
		ServiceDurationMinutes: 50,
	}

	first, err := GenerateSlots(in)
	require.NoError(t, err)
	second, err := GenerateSlots(in)
	require.NoError(t, err)
	assert.Equal(t, first, second, "idempotent")
	require.NotEmpty(t, first.Slots)

	windowEnd, _ := ToFractionalHours("18:00")
	dur := 50.0 / 60

	busy := [][2]string{{"09:00", "09:45"}, {"10:30", "12:00"}, {"16:00", "16:30"}, {"12:00", "13:00"}, {"15:30", "15:45"}}

	prev := -1.0
	for _, s := range first.Slots {
		start, err := ToFractionalHours(s.Time)
		require.NoError(t, err)

		assert.Greater(t, start, prev, "strictly increasing")
		prev = start

		assert.LessOrEqual(t, start+dur, windowEnd+1e-9, s.Time)

		for _, b := range busy {
			bs, _ := ToFractionalHours(b[0])
			be, _ := ToFractionalHours(b[1])
			assert.False(t, Overlaps(start, start+dur, bs, be), "%s overlaps %v", s.Time, b)
		}
	}
}

func TestResult_Contains(t *testing.T) {
	r := Result{Slots: []Slot{{Time: "09:00", DisplayTime: "09:00"}}}
	assert.True(t, r.Contains("09:00"))
	assert.False(t, r.Contains("09:30"))
}
