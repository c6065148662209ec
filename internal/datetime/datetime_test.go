package datetime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_AddDaysAndDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		from string
		n    int
		want string
	}{
		{"forward within month", "2025-11-04", 7, "2025-11-11"},
		{"across month end", "2025-01-30", 3, "2025-02-02"},
		{"backward across year", "2025-01-01", -1, "2024-12-31"},
		{"leap day", "2024-02-28", 1, "2024-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := MustParseDate(tt.from)
			got := from.AddDays(tt.n)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.n, from.DaysUntil(got))
		})
	}
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-11-04"`), &d))
	assert.Equal(t, NewDate(2025, time.November, 4), d)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-11-04"`, string(b))

	require.Error(t, json.Unmarshal([]byte(`"2025-13-01"`), &d))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-11-04", d.String())

	require.NoError(t, d.Scan([]byte("2025-12-25T00:00:00Z")))
	assert.Equal(t, "2025-12-25", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	require.Error(t, d.Scan(42))
}

func TestTimeOfDay_ParseAndScan(t *testing.T) {
	tod, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, tod.Minutes())

	require.NoError(t, tod.Scan("14:05:00"))
	assert.Equal(t, "14:05", tod.String())

	_, err = ParseTimeOfDay("25:00")
	require.Error(t, err)
}

func TestLeapYearAndDaysInMonth(t *testing.T) {
	assert.True(t, IsLeapYear(2024))
	assert.False(t, IsLeapYear(2025))
	assert.False(t, IsLeapYear(1900))
	assert.True(t, IsLeapYear(2000))

	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 30, DaysInMonth(2025, time.November))
	assert.Equal(t, 31, DaysInMonth(2025, time.December))
}

func TestWeekDates(t *testing.T) {
	// 2025-11-12 is a Wednesday.
	days := WeekDates(MustParseDate("2025-11-12"), time.Sunday)
	require.Len(t, days, 7)
	assert.Equal(t, "2025-11-09", days[0].String())
	assert.Equal(t, "2025-11-15", days[6].String())

	days = WeekDates(MustParseDate("2025-11-12"), time.Monday)
	assert.Equal(t, "2025-11-10", days[0].String())
}

func TestMonthWeeks(t *testing.T) {
	// November 2025 starts on a Saturday.
	weeks := MonthWeeks(MustParseDate("2025-11-20"), time.Sunday)
	require.Len(t, weeks, 6)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 1}, weeks[0])
	assert.Equal(t, []int{30, 0, 0, 0, 0, 0, 0}, weeks[5])
	for _, w := range weeks {
		assert.Len(t, w, 7)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "November 2025", FormatMonth(MustParseDate("2025-11-20")))
	assert.Equal(t, "November 2025, week 2", FormatWeek(MustParseDate("2025-11-12"), time.Sunday))
	// Week of Sun 2025-11-30 has its Thursday in December.
	assert.Equal(t, "December 2025, week 1", FormatWeek(MustParseDate("2025-11-30"), time.Sunday))
}

func TestInSameWeekAndMonth(t *testing.T) {
	a := MustParseDate("2025-11-09")
	assert.True(t, InSameWeek(a, MustParseDate("2025-11-15"), time.Sunday))
	assert.False(t, InSameWeek(a, MustParseDate("2025-11-16"), time.Sunday))
	assert.True(t, InSameMonth(a, MustParseDate("2025-11-30")))
	assert.False(t, InSameMonth(a, MustParseDate("2024-11-09")))
}
