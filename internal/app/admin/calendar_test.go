package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archatara/internal/domain/reservation"
)

func TestMonthCalendarGroupsByDay(t *testing.T) {
	items := []reservation.Reservation{
		{ID: "1", Date: "2026-09-04", UnitID: "G1", CustomerName: "Somchai P.", Status: reservation.StatusConfirmed},
		{ID: "2", Date: "2026-09-04", UnitID: "G2", CustomerName: "Anong K.", Status: reservation.StatusPending},
		{ID: "3", Date: "2026-09-04", UnitID: "B1", CustomerName: "Declined", Status: reservation.StatusRejected},
		{ID: "4", Date: "2026-10-01", UnitID: "C1", CustomerName: "Next Month", Status: reservation.StatusConfirmed},
	}

	view := MonthCalendar(2026, time.September, items)
	assert.Equal(t, 2026, view.Year)
	assert.Equal(t, time.September, view.Month)
	assert.Equal(t, time.Tuesday, view.FirstWeekday)
	require.Len(t, view.Days, 30)

	day4 := view.Days[3]
	assert.Equal(t, "2026-09-04", day4.Date)
	require.Len(t, day4.Entries, 2, "rejected bookings never appear")
	assert.Equal(t, "G1", day4.Entries[0].UnitID)
	assert.Equal(t, "G2", day4.Entries[1].UnitID)

	assert.Empty(t, view.Days[0].Entries)
}

func TestMonthCalendarLeapFebruary(t *testing.T) {
	view := MonthCalendar(2028, time.February, nil)
	assert.Len(t, view.Days, 29)
	view = MonthCalendar(2026, time.February, nil)
	assert.Len(t, view.Days, 28)
}

func TestMonthNavigationCrossesYears(t *testing.T) {
	view := MonthCalendar(2026, time.January, nil)
	year, month := view.Previous()
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.December, month)

	view = MonthCalendar(2026, time.December, nil)
	year, month = view.Next()
	assert.Equal(t, 2027, year)
	assert.Equal(t, time.January, month)
}
