package admin

import (
	"fmt"
	"time"

	"archatara/internal/domain/reservation"
)

// CalendarEntry is one occupant shown on a calendar day.
type CalendarEntry struct {
	UnitID       string             `json:"unit_id"`
	CustomerName string             `json:"customer_name"`
	Status       reservation.Status `json:"status"`
}

// CalendarDay is one day cell of the month view.
type CalendarDay struct {
	Date    string          `json:"date"`
	Day     int             `json:"day"`
	Entries []CalendarEntry `json:"entries,omitempty"`
}

// MonthView groups the non-rejected reservations of one calendar month.
// Month navigation is unbounded in either direction; callers move by
// whole-month increments via Previous and Next.
type MonthView struct {
	Year         int           `json:"year"`
	Month        time.Month    `json:"month"`
	FirstWeekday time.Weekday  `json:"first_weekday"`
	Days         []CalendarDay `json:"days"`
}

// Previous returns the year/month one step back.
func (v MonthView) Previous() (int, time.Month) {
	t := time.Date(v.Year, v.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

// Next returns the year/month one step forward.
func (v MonthView) Next() (int, time.Month) {
	t := time.Date(v.Year, v.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

// MonthCalendar builds the month view for the given reservations.
// Rejected reservations never appear. Date arithmetic is explicit
// calendar arithmetic on time.Date, never string slicing, so it is
// immune to timezone-sensitive constructors.
func MonthCalendar(year int, month time.Month, items []reservation.Reservation) MonthView {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	byDate := make(map[string][]CalendarEntry)
	for _, r := range items {
		if r.Status == reservation.StatusRejected {
			continue
		}
		byDate[r.Date] = append(byDate[r.Date], CalendarEntry{
			UnitID:       r.UnitID,
			CustomerName: r.CustomerName,
			Status:       r.Status,
		})
	}

	view := MonthView{
		Year:         first.Year(),
		Month:        first.Month(),
		FirstWeekday: first.Weekday(),
		Days:         make([]CalendarDay, 0, daysInMonth),
	}
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
		view.Days = append(view.Days, CalendarDay{
			Date:    date,
			Day:     day,
			Entries: byDate[date],
		})
	}
	return view
}
