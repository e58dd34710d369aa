package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationSeconds(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"12:30", 750},
		{"00:45", 45},
		{" 3:05 ", 185},
		{"45", 2700},
		{"0", 0},
		{"", 1800},
		{"abc", 1800},
		{"1:2:3", 1800},
		{"-5", 1800},
		{"12.5", 1800},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseDurationSeconds(tc.raw), "raw=%q", tc.raw)
	}
}

func TestParseDurationSecondsOrUsesFallback(t *testing.T) {
	assert.Equal(t, 600, ParseDurationSecondsOr("garbage", 600))
	assert.Equal(t, DefaultDurationSeconds, ParseDurationSecondsOr("garbage", 0))
	assert.Equal(t, 60, ParseDurationSecondsOr("1", 600))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m", FormatDuration(0))
	assert.Equal(t, "12m", FormatDuration(750))
	assert.Equal(t, "1h 0m", FormatDuration(3600))
	assert.Equal(t, "2h 5m", FormatDuration(2*3600+5*60+59))
}
