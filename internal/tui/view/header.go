package view

import "time"

// DayHeaders builds column labels for consecutive days and marks today's
// column. With withDate the day of month follows the weekday name.
func DayHeaders(days []time.Time, today time.Time, withDate bool) ([]string, []bool) {
	labels := make([]string, len(days))
	isToday := make([]bool, len(days))
	for i, d := range days {
		if withDate {
			labels[i] = d.Format("Mon 2")
		} else {
			labels[i] = d.Format("Mon")
		}
		isToday[i] = sameDay(d, today)
	}
	return labels, isToday
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.In(a.Location()).Date()
	return ya == yb && ma == mb && da == db
}
