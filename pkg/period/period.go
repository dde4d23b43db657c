package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthKey identifies one aggregation period.
type MonthKey struct {
	Month int
	Year  int
}

func NewMonthKey(month, year int) MonthKey {
	return MonthKey{Month: month, Year: year}
}

// MonthKeyFromTime returns the month containing t, evaluated in UTC.
func MonthKeyFromTime(t time.Time) MonthKey {
	utc := t.UTC()
	return MonthKey{Month: int(utc.Month()), Year: utc.Year()}
}

// MonthKeyFromString parses "2025-03".
func MonthKeyFromString(s string) (MonthKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return MonthKey{}, fmt.Errorf("invalid month format: %s", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid year: %w", err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month: %w", err)
	}
	return MonthKey{Month: month, Year: year}, nil
}

// Start returns the first instant of the month.
func (m MonthKey) Start() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last instant of the month.
func (m MonthKey) End() time.Time {
	return m.Start().AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func (m MonthKey) Bounds() (time.Time, time.Time) {
	return m.Start(), m.End()
}

// AddMonths shifts the key by n months, n may be negative.
func (m MonthKey) AddMonths(n int) MonthKey {
	return MonthKeyFromTime(m.Start().AddDate(0, n, 0))
}

func (m MonthKey) Prev() MonthKey {
	return m.AddMonths(-1)
}

func (m MonthKey) Next() MonthKey {
	return m.AddMonths(1)
}

// Contains reports whether t falls within [Start, End].
func (m MonthKey) Contains(t time.Time) bool {
	start, end := m.Bounds()
	return !t.Before(start) && !t.After(end)
}

func (m MonthKey) Equal(other MonthKey) bool {
	return m.Year == other.Year && m.Month == other.Month
}

func (m MonthKey) Before(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m MonthKey) After(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year > other.Year
	}
	return m.Month > other.Month
}

// String returns the "2025-03" form.
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// IsActive reports whether a commitment bounded by [start, end] overlaps the
// month [monthStart, monthEnd]. A nil end means the commitment never expires.
func IsActive(start time.Time, end *time.Time, monthStart, monthEnd time.Time) bool {
	if start.After(monthEnd) {
		return false
	}
	return end == nil || !end.Before(monthStart)
}

// IsActiveIn is IsActive evaluated against the bounds of month.
func IsActiveIn(start time.Time, end *time.Time, month MonthKey) bool {
	monthStart, monthEnd := month.Bounds()
	return IsActive(start, end, monthStart, monthEnd)
}

// WholeMonthsBetween counts complete calendar months from `from` to `to`.
// The count is date-granular: both instants are truncated to their UTC date.
// A partial trailing month is not counted and the result is never negative.
func WholeMonthsBetween(from, to time.Time) int {
	from, to = dateOf(from), dateOf(to)
	if !to.After(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
