package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDayAndMonth(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2026, time.March, 1, 1, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(ts))
}

func TestFakeClockAdvance(t *testing.T) {
	c := NewFakeClock(time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC))
	c.Advance(2 * time.Hour)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), Today(c))
}
