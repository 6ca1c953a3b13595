package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFractionalHours(t *testing.T) {
	cases := map[string]float64{
		"00:00": 0,
		"09:00": 9,
		"09:30": 9.5,
		"09:15": 9.25,
		"23:59": 23 + 59.0/60,
	}
	for in, want := range cases {
		got, err := ToFractionalHours(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}
}

func TestToFractionalHours_RejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "9:00", "24:00", "12:60", "12-30", "12:3", "ab:cd", " 09:00"} {
		_, err := ToFractionalHours(in)
		require.Error(t, err, in)
		assert.True(t, IsFormatError(err), in)
	}
}

func TestOverlaps_Strict(t *testing.T) {
	assert.True(t, Overlaps(9.0, 10.0, 9.5, 10.5))
	assert.True(t, Overlaps(9.0, 12.0, 10.0, 10.5))
	assert.False(t, Overlaps(9.0, 10.0, 10.0, 11.0), "touching end/start is free")
	assert.False(t, Overlaps(10.0, 11.0, 9.0, 10.0), "touching start/end is free")
	assert.False(t, Overlaps(540, 570, 600, 630))
}

func TestFormatFractionalHours(t *testing.T) {
	assert.Equal(t, "09:00", FormatFractionalHours(9))
	assert.Equal(t, "09:30", FormatFractionalHours(9.5))
	assert.Equal(t, "09:15", FormatFractionalHours(9.25))
	assert.Equal(t, "00:00", FormatFractionalHours(0))
}

func TestParseWindow_EndMustExceedStart(t *testing.T) {
	_, err := parseWindow("weekly", "10:00", "10:00")
	require.Error(t, err)
	assert.True(t, IsFormatError(err))

	_, err = parseWindow("weekly", "11:00", "10:00")
	assert.True(t, IsFormatError(err))
}
