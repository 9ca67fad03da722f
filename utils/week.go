package utils

import "time"

// WeekWindow returns the ISO week containing t in the given location: Monday
// 00:00:00 inclusive through the following Monday 00:00:00 exclusive.
func WeekWindow(t time.Time, loc *time.Location) (start, end time.Time) {
	t = t.In(loc)
	// time.Weekday puts Sunday at 0; shift so Monday is day 0.
	offset := (int(t.Weekday()) + 6) % 7
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 7)
	return start, end
}

// WeekWindowFrom returns the week starting at the given day: weekStart
// truncated to midnight in loc, through seven days later exclusive.
func WeekWindowFrom(weekStart time.Time, loc *time.Location) (start, end time.Time) {
	ws := weekStart.In(loc)
	start = time.Date(ws.Year(), ws.Month(), ws.Day(), 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, 7)
	return start, end
}

// ParseDate accepts either a bare date or a full RFC3339 timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}
