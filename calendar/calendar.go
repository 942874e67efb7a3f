// Package calendar computes the per-day display price for a listing's
// month grid. Pure derivation; nothing here touches storage.
package calendar

import (
	"math"
	"time"
)

// Fri/Sat carry a flat 5% markup.
const weekendMarkup = 1.05

type Day struct {
	Date     string `json:"date"`
	Price    int    `json:"price"`
	Weekend  bool   `json:"weekend"`
	Disabled bool   `json:"disabled"`
}

func isWeekend(d time.Time) bool {
	switch d.Weekday() {
	case time.Friday, time.Saturday:
		return true
	}
	return false
}

// DatePrice returns the display price for one day: the base rate, or
// round(base * 1.05) on Fridays and Saturdays.
func DatePrice(base int, day time.Time) int {
	if isWeekend(day) {
		return int(math.Round(float64(base) * weekendMarkup))
	}
	return base
}

// MonthGrid builds the price grid for one month. Days before today or
// beyond twelve months from today are flagged disabled but stay in the
// grid so the view renders a full month.
func MonthGrid(year int, month time.Month, base int, today time.Time) []Day {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	horizon := start.AddDate(1, 0, 0)

	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	days := make([]Day, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			Date:     d.Format("2006-01-02"),
			Price:    DatePrice(base, d),
			Weekend:  isWeekend(d),
			Disabled: d.Before(start) || d.After(horizon),
		})
	}
	return days
}
