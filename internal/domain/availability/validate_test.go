package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func TestValidateWeekly(t *testing.T) {
	ok := mondayHours("09:00", "18:00", models.BreakTime{StartTime: "12:00", EndTime: "13:00"})
	assert.NoError(t, ValidateWeekly(ok))

	badDay := mondayHours("09:00", "18:00")
	badDay.DayOfWeek = 7
	assert.True(t, IsFormatError(ValidateWeekly(badDay)))

	outside := mondayHours("09:00", "18:00", models.BreakTime{StartTime: "17:30", EndTime: "18:30"})
	assert.True(t, IsFormatError(ValidateWeekly(outside)))

	reversed := mondayHours("18:00", "09:00")
	assert.True(t, IsFormatError(ValidateWeekly(reversed)))
}

func TestValidateException(t *testing.T) {
	assert.NoError(t, ValidateException(&models.DateException{
		Date: monday, Type: models.ExceptionUnavailable, Reason: "Holiday",
	}))
	assert.NoError(t, ValidateException(&models.DateException{
		Date: monday, Type: models.ExceptionCustomHours, StartTime: "10:00", EndTime: "12:00",
	}))

	assert.True(t, IsFormatError(ValidateException(&models.DateException{
		Date: monday, Type: models.ExceptionUnavailable, Reason: "  ",
	})), "unavailable needs a reason")

	assert.True(t, IsFormatError(ValidateException(&models.DateException{
		Date: monday, Type: models.ExceptionCustomHours, StartTime: "12:00", EndTime: "10:00",
	})))

	assert.True(t, IsFormatError(ValidateException(&models.DateException{
		Date: monday, Type: "closed",
	})))

	assert.True(t, IsFormatError(ValidateException(&models.DateException{
		Type: models.ExceptionUnavailable, Reason: "x",
	})), "date is required")
}
