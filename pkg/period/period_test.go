package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestMonthKey_Bounds(t *testing.T) {
	start, end := NewMonthKey(2, 2024).Bounds()

	assert.Equal(t, date(2024, time.February, 1), start)
	assert.Equal(t, 2024, end.Year())
	assert.Equal(t, time.February, end.Month())
	assert.Equal(t, 29, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.Add(time.Nanosecond).Equal(date(2024, time.March, 1)))
}

func TestMonthKey_AddMonths(t *testing.T) {
	tests := []struct {
		name string
		key  MonthKey
		n    int
		want MonthKey
	}{
		{"same year", NewMonthKey(3, 2025), 2, NewMonthKey(5, 2025)},
		{"crosses year forward", NewMonthKey(11, 2025), 3, NewMonthKey(2, 2026)},
		{"crosses year backward", NewMonthKey(1, 2025), -1, NewMonthKey(12, 2024)},
		{"three months back", NewMonthKey(2, 2025), -3, NewMonthKey(11, 2024)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.key.AddMonths(tt.n))
		})
	}
}

func TestMonthKey_Ordering(t *testing.T) {
	a := NewMonthKey(12, 2024)
	b := NewMonthKey(1, 2025)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.After(b))
	assert.True(t, a.Equal(NewMonthKey(12, 2024)))
	assert.Equal(t, "2024-12", a.String())
}

func TestMonthKeyFromString(t *testing.T) {
	key, err := MonthKeyFromString("2025-03")
	require.NoError(t, err)
	assert.Equal(t, NewMonthKey(3, 2025), key)

	_, err = MonthKeyFromString("2025/03")
	assert.Error(t, err)
	_, err = MonthKeyFromString("abcd-03")
	assert.Error(t, err)
}

func TestIsActive(t *testing.T) {
	march := NewMonthKey(3, 2025)
	endFeb := date(2025, time.February, 28)
	endMarch := date(2025, time.March, 1)

	tests := []struct {
		name  string
		start time.Time
		end   *time.Time
		want  bool
	}{
		{"starts before, open ended", date(2024, time.June, 1), nil, true},
		{"starts on last day of month", date(2025, time.March, 31), nil, true},
		{"starts after month", date(2025, time.April, 1), nil, false},
		{"ended before month", date(2024, time.January, 1), &endFeb, false},
		{"ends on first day of month", date(2024, time.January, 1), &endMarch, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsActiveIn(tt.start, tt.end, march))
		})
	}
}

func TestIsActive_OpenEndedIsPermanent(t *testing.T) {
	start := date(2023, time.May, 17)
	startMonth := MonthKeyFromTime(start)

	for i := 0; i < 120; i++ {
		month := startMonth.AddMonths(i)
		assert.True(t, IsActiveIn(start, nil, month), "expected active in %s", month)
	}
	assert.False(t, IsActiveIn(start, nil, startMonth.Prev()))
}

func TestWholeMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"exact months", date(2025, time.January, 15), date(2025, time.April, 15), 3},
		{"partial month not counted", date(2025, time.January, 15), date(2025, time.April, 14), 2},
		{"across year", date(2024, time.November, 1), date(2025, time.February, 1), 3},
		{"same day", date(2025, time.January, 15), date(2025, time.January, 15), 0},
		{"past date floors to zero", date(2025, time.June, 1), date(2020, time.January, 1), 0},
		{"time of day is ignored", time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC), time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC), 3},
		{"late start on the last day", time.Date(2025, time.January, 15, 23, 59, 0, 0, time.UTC), time.Date(2025, time.April, 14, 23, 0, 0, 0, time.UTC), 2},
		{"same date later hour", time.Date(2025, time.January, 15, 8, 0, 0, 0, time.UTC), time.Date(2025, time.January, 15, 20, 0, 0, 0, time.UTC), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WholeMonthsBetween(tt.from, tt.to))
		})
	}
}
