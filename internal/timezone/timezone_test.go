package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallback(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("UTC", "2026-10-19", "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC), got)

	_, err = ParseDateTime("UTC", "2026-10-19", "9h30")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 10, 19, 17, 45, 12, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), StartOfDay(in))
}

func TestDateOnly(t *testing.T) {
	sp := Location("America/Sao_Paulo")
	late := time.Date(2026, 10, 19, 23, 30, 0, 0, sp)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), DateOnly(late))
	assert.Equal(t, time.Monday, DateOnly(late).Weekday())
}
