package face

import (
	"fmt"
	"time"
)

// ClockReading is the wall clock sampled for a single frame.
type ClockReading struct {
	Hour, Minute, Second int
	Year                 int
	Month                time.Month
	Day                  int
	Location             *time.Location
}

// ReadClock samples t in its own location.
func ReadClock(t time.Time) ClockReading {
	return ClockReading{
		Hour:     t.Hour(),
		Minute:   t.Minute(),
		Second:   t.Second(),
		Year:     t.Year(),
		Month:    t.Month(),
		Day:      t.Day(),
		Location: t.Location(),
	}
}

// TimeText formats the reading as H:MM.
func (c ClockReading) TimeText() string {
	return fmt.Sprintf("%d:%02d", c.Hour, c.Minute)
}

// DateText formats the reading as "Tue, Mar 05".
func (c ClockReading) DateText() string {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second, 0, loc).Format("Mon, Jan 02")
}
