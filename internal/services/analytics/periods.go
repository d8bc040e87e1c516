package analytics

import "time"

// Period identifies a calendar comparison window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Periods lists the comparison windows in reporting order.
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// WeekStart returns the Monday of today's ISO week. time.Weekday counts
// Sunday as 0, so the naive today-minus-weekday would put a Sunday one week
// early; the offset maps Sunday back six days instead.
func WeekStart(today time.Time) time.Time {
	offset := (int(today.Weekday()) + 6) % 7
	return truncateDay(today).AddDate(0, 0, -offset)
}

// MonthStart returns the first day of today's month.
func MonthStart(today time.Time) time.Time {
	return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
}

// YearStart returns January 1 of today's year.
func YearStart(today time.Time) time.Time {
	return time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
}

// PeriodWindow returns the current window for a period: its calendar start
// through today. No window looks past today.
func PeriodWindow(p Period, today time.Time) (start, end time.Time) {
	end = truncateDay(today)
	switch p {
	case PeriodWeek:
		start = WeekStart(today)
	case PeriodMonth:
		start = MonthStart(today)
	case PeriodYear:
		start = YearStart(today)
	default:
		start = end
	}
	return start, end
}

// PreviousWindow returns the full calendar period immediately before the
// current one: yesterday, last week Monday-Sunday, last calendar month, or
// last calendar year.
func PreviousWindow(p Period, today time.Time) (start, end time.Time) {
	switch p {
	case PeriodWeek:
		thisStart := WeekStart(today)
		return thisStart.AddDate(0, 0, -7), thisStart.AddDate(0, 0, -1)
	case PeriodMonth:
		thisStart := MonthStart(today)
		return thisStart.AddDate(0, -1, 0), thisStart.AddDate(0, 0, -1)
	case PeriodYear:
		thisStart := YearStart(today)
		return thisStart.AddDate(-1, 0, 0), thisStart.AddDate(0, 0, -1)
	default:
		yesterday := truncateDay(today).AddDate(0, 0, -1)
		return yesterday, yesterday
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
