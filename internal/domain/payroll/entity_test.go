package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("june")
	require.NoError(t, err)
	assert.Equal(t, June, m)

	m, err = ParseMonth("  SEPTEMBER ")
	require.NoError(t, err)
	assert.Equal(t, September, m)

	for _, bad := range []string{"", "Jun", "13", "Juny"} {
		_, err := ParseMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidMonth, bad)
	}
}

func TestMonth_NumberAndValid(t *testing.T) {
	assert.Equal(t, time.January, January.Number())
	assert.Equal(t, time.December, December.Number())
	assert.Equal(t, time.Month(0), Month("june").Number())
	assert.False(t, Month("").Valid())
	assert.True(t, MonthOf(time.March).Valid())
	assert.Len(t, Months(), 12)
}

func TestPeriod_Days(t *testing.T) {
	tests := []struct {
		period Period
		want   int
	}{
		{Period{June, 2024}, 30},
		{Period{January, 2024}, 31},
		{Period{February, 2024}, 29},
		{Period{February, 2023}, 28},
		{Period{February, 2000}, 29},
		{Period{February, 1900}, 28},
		{Period{Month("Juno"), 2024}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.period.Days(), "%s %d", tt.period.Month, tt.period.Year)
	}
}

func TestPeriod_Bounds(t *testing.T) {
	p := Period{February, 2024}
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), p.End())
	assert.True(t, p.Contains(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
}
